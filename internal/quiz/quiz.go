// Package quiz models quizzes and runs timed quiz attempts.
package quiz

import (
	"time"

	"github.com/abhisek/examprep/internal/flashcard"
)

// QuestionType is the kind of question.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeTrueFalse      QuestionType = "true_false"
	TypeFillBlank      QuestionType = "fill_blank"
	TypeEssay          QuestionType = "essay"
)

// Difficulty labels a whole quiz. Mixed means questions vary.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyMixed  Difficulty = "mixed"
)

// Question is one quiz question.
type Question struct {
	ID            string               `json:"id" validate:"required"`
	QuizID        string               `json:"quiz_id,omitempty"`
	Type          QuestionType         `json:"type" validate:"oneof=multiple_choice true_false fill_blank essay"`
	Prompt        string               `json:"question" validate:"required"`
	Options       []string             `json:"options,omitempty"`
	CorrectAnswer Answer               `json:"correct_answer"`
	Explanation   string               `json:"explanation,omitempty"`
	ConceptID     string               `json:"concept_id"`
	Difficulty    flashcard.Difficulty `json:"difficulty,omitempty"`
}

// Quiz is a set of questions with an optional time limit in minutes.
// A zero TimeLimit means untimed.
type Quiz struct {
	ID          string     `json:"id" validate:"required"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions" validate:"dive"`
	TimeLimit   int        `json:"time_limit" validate:"gte=0"`
	Difficulty  Difficulty `json:"difficulty" validate:"omitempty,oneof=easy medium hard mixed"`
	ConceptIDs  []string   `json:"concept_ids"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Attempt is a finished (or in-progress) run of a quiz. TimeSpent is in seconds.
type Attempt struct {
	ID          string            `json:"id"`
	QuizID      string            `json:"quiz_id"`
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Answers     map[string]Answer `json:"answers"`
	Score       *int              `json:"score,omitempty"`
	TimeSpent   int               `json:"time_spent"`
	WeakAreas   []string          `json:"weak_areas"`
}
