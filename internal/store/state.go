package store

import (
	"github.com/abhisek/examprep/internal/achievement"
	"github.com/abhisek/examprep/internal/flashcard"
	"github.com/abhisek/examprep/internal/material"
	"github.com/abhisek/examprep/internal/plan"
	"github.com/abhisek/examprep/internal/progress"
	"github.com/abhisek/examprep/internal/quiz"
	"github.com/abhisek/examprep/internal/stats"
)

// StateData is the persisted study state. It is saved whole after every
// change. Stats is a cache of values derived from Progress.
type StateData struct {
	SchemaVersion string                    `json:"schema_version"`
	Materials     []material.Material       `json:"materials"`
	Concepts      []material.Concept        `json:"concepts"`
	Flashcards    []flashcard.Flashcard     `json:"flashcards"`
	Quizzes       []quiz.Quiz               `json:"quizzes"`
	QuizAttempts  []quiz.Attempt            `json:"quiz_attempts"`
	Sessions      []progress.StudySession   `json:"sessions"`
	Progress      progress.Progress         `json:"progress"`
	Achievements  []achievement.Achievement `json:"achievements"`
	Resources     []material.Resource       `json:"resources"`
	StudyPlans    []plan.StudyPlan          `json:"study_plans"`
	Stats         stats.Stats               `json:"stats"`
}

// NewStateData returns the state of a fresh install.
func NewStateData() StateData {
	d := StateData{
		SchemaVersion: SchemaVersion,
		Progress:      progress.New(),
		Achievements:  achievement.Defaults(),
		Stats:         stats.Defaults(),
	}
	d.Normalize()
	return d
}

// Normalize replaces nil collections with empty ones and adds any
// built-in achievement the document lacks.
func (d *StateData) Normalize() {
	if d.Materials == nil {
		d.Materials = []material.Material{}
	}
	if d.Concepts == nil {
		d.Concepts = []material.Concept{}
	}
	if d.Flashcards == nil {
		d.Flashcards = []flashcard.Flashcard{}
	}
	if d.Quizzes == nil {
		d.Quizzes = []quiz.Quiz{}
	}
	if d.QuizAttempts == nil {
		d.QuizAttempts = []quiz.Attempt{}
	}
	if d.Sessions == nil {
		d.Sessions = []progress.StudySession{}
	}
	if d.Resources == nil {
		d.Resources = []material.Resource{}
	}
	if d.StudyPlans == nil {
		d.StudyPlans = []plan.StudyPlan{}
	}
	d.Progress.Normalize()
	d.Achievements = achievement.Merge(d.Achievements)
}
