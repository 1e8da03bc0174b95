package session

import (
	"context"
	"errors"

	"github.com/abhisek/examprep/internal/flashcard"
	"github.com/abhisek/examprep/internal/progress"
)

var (
	// ErrInvalidState is returned for an operation the current phase does
	// not allow, including an answer that races another answer.
	ErrInvalidState = errors.New("invalid session state")

	// ErrEmptyQueue is returned when a session is started with no due cards.
	ErrEmptyQueue = errors.New("no flashcards due")
)

// Phase is the lifecycle phase of a review session.
type Phase int

const (
	PhaseIdle     Phase = iota // No session running
	PhaseActive                // Cards remain to be answered
	PhaseComplete              // All cards answered; summary available
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseComplete:
		return "complete"
	}
	return "unknown"
}

// Result is the completion record handed to the Sink once per session.
type Result struct {
	// Reviewed is the number of cards answered.
	Reviewed int

	// Entry is the session-log entry for this session.
	Entry progress.StudySession
}

// Sink persists what a review session produces.
type Sink interface {
	// SaveCard stores a card after its schedule changed.
	SaveCard(ctx context.Context, card flashcard.Flashcard) error

	// CompleteSession records a finished session. Called exactly once per
	// completed session and never retried.
	CompleteSession(ctx context.Context, r Result) error
}
