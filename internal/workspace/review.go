package workspace

import (
	"context"
	"fmt"

	"github.com/abhisek/examprep/internal/flashcard"
	"github.com/abhisek/examprep/internal/session"
	"github.com/abhisek/examprep/internal/store"
)

var _ session.Sink = (*Workspace)(nil)

// SaveCard replaces a stored flashcard with card.
func (w *Workspace) SaveCard(ctx context.Context, card flashcard.Flashcard) error {
	return w.mutate(ctx, "save_card", func(d *store.StateData) (bool, error) {
		i := flashcard.Index(d.Flashcards, card.ID)
		if i < 0 {
			return false, fmt.Errorf("flashcard %s: %w", card.ID, ErrNotFound)
		}
		d.Flashcards[i] = card
		return false, nil
	})
}

// CompleteSession records a finished review session: the reviewed count,
// the session-log entry and the study streak.
func (w *Workspace) CompleteSession(ctx context.Context, r session.Result) error {
	return w.mutate(ctx, "complete_review", func(d *store.StateData) (bool, error) {
		d.Progress.RecordFlashcards(r.Reviewed)
		d.Sessions = d.Progress.AppendSession(d.Sessions, r.Entry)
		d.Progress.TouchStudyDay(r.Entry.Date)
		return true, nil
	})
}

// AddFlashcard stores a new card.
func (w *Workspace) AddFlashcard(ctx context.Context, card flashcard.Flashcard) error {
	return w.mutate(ctx, "add_flashcard", func(d *store.StateData) (bool, error) {
		if card.ID == "" {
			card.ID = w.newID()
		}
		if flashcard.Index(d.Flashcards, card.ID) >= 0 {
			return false, fmt.Errorf("flashcard %s already exists", card.ID)
		}
		if card.Difficulty == "" {
			card.Difficulty = flashcard.DifficultyMedium
		}
		d.Flashcards = append(d.Flashcards, card)
		return false, nil
	})
}

// Flashcards returns all cards in stored order.
func (w *Workspace) Flashcards() []flashcard.Flashcard {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]flashcard.Flashcard{}, w.data.Flashcards...)
}

// DueFlashcards returns the cards due now, in stored order.
func (w *Workspace) DueFlashcards() []flashcard.Flashcard {
	w.mu.Lock()
	defer w.mu.Unlock()
	return flashcard.Due(w.data.Flashcards, w.clock.Now())
}

// StartReview begins a review session over the cards due now. The
// session saves through this workspace.
func (w *Workspace) StartReview() (*session.Review, error) {
	r := session.New(w, w.clock)
	if err := r.Start(w.DueFlashcards()); err != nil {
		return nil, err
	}
	return r, nil
}
