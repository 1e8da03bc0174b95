package flashcard

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownOutcome is returned when a review outcome cannot be parsed.
var ErrUnknownOutcome = errors.New("unknown review outcome")

// Difficulty is a card's static difficulty label.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps a label to a Difficulty. Empty input means medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DifficultyMedium, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Outcome is the self-graded result of reviewing one card.
type Outcome string

const (
	OutcomeHard   Outcome = "hard"
	OutcomeMedium Outcome = "medium"
	OutcomeEasy   Outcome = "easy"
)

// Correct reports whether the outcome counts as a correct recall.
// Only easy does.
func (o Outcome) Correct() bool {
	return o == OutcomeEasy
}

// Valid reports whether o is one of the three known outcomes.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeHard, OutcomeMedium, OutcomeEasy:
		return true
	}
	return false
}

// ParseOutcome maps a label to an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	if o := Outcome(strings.ToLower(strings.TrimSpace(s))); o.Valid() {
		return o, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOutcome, s)
}

// Flashcard is a two-sided card tied to a concept.
type Flashcard struct {
	ID            string     `json:"id"`
	ConceptID     string     `json:"concept_id"`
	Front         string     `json:"front"`
	Back          string     `json:"back"`
	Difficulty    Difficulty `json:"difficulty"`
	LastReviewed  *time.Time `json:"last_reviewed,omitempty"`
	NextReview    *time.Time `json:"next_review,omitempty"`
	ReviewCount   int        `json:"review_count"`
	CorrectStreak int        `json:"correct_streak"`
}

// IsDue reports whether the card should be reviewed at now.
// A card that has never been scheduled is always due.
func (c *Flashcard) IsDue(now time.Time) bool {
	if c.NextReview == nil {
		return true
	}
	return !c.NextReview.After(now)
}

// Due returns the due cards in their stored order.
func Due(cards []Flashcard, now time.Time) []Flashcard {
	var due []Flashcard
	for i := range cards {
		if cards[i].IsDue(now) {
			due = append(due, cards[i])
		}
	}
	return due
}

// Index returns the position of the card with the given id, or -1.
func Index(cards []Flashcard, id string) int {
	for i := range cards {
		if cards[i].ID == id {
			return i
		}
	}
	return -1
}
