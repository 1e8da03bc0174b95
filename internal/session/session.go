// Package session runs flashcard review sessions.
package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/examprep/internal/clock"
	"github.com/abhisek/examprep/internal/flashcard"
	"github.com/abhisek/examprep/internal/progress"
	"github.com/abhisek/examprep/internal/spacedrep"
)

// Review is a flashcard review session. It moves Idle -> Active ->
// Complete and back to Idle on Reset. Only one Answer may run at a time;
// a second concurrent call fails with ErrInvalidState.
type Review struct {
	sink  Sink
	clock clock.Clock

	answering atomic.Bool

	mu        sync.Mutex
	phase     Phase
	queue     []flashcard.Flashcard
	cursor    int
	correct   int
	incorrect int
	startedAt time.Time
	summary   *Summary
}

// New creates an idle review session.
func New(sink Sink, clk clock.Clock) *Review {
	if clk == nil {
		clk = clock.System{}
	}
	return &Review{sink: sink, clock: clk}
}

// Start begins a session over a snapshot of the due cards. Cards that
// become due later are not added.
func (r *Review) Start(due []flashcard.Flashcard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseIdle {
		return fmt.Errorf("start in %s phase: %w", r.phase, ErrInvalidState)
	}
	if len(due) == 0 {
		return ErrEmptyQueue
	}

	r.queue = append([]flashcard.Flashcard(nil), due...)
	r.cursor = 0
	r.correct = 0
	r.incorrect = 0
	r.summary = nil
	r.startedAt = r.clock.Now()
	r.phase = PhaseActive
	return nil
}

// Answer grades the current card, persists its new schedule and advances.
// After the last card the session completes and the Sink receives the
// completion record. It returns the rescheduled card. An unknown outcome
// fails with flashcard.ErrUnknownOutcome and leaves the session untouched.
func (r *Review) Answer(ctx context.Context, outcome flashcard.Outcome) (flashcard.Flashcard, error) {
	if !r.answering.CompareAndSwap(false, true) {
		return flashcard.Flashcard{}, fmt.Errorf("answer already in progress: %w", ErrInvalidState)
	}
	defer r.answering.Store(false)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseActive || r.cursor >= len(r.queue) {
		return flashcard.Flashcard{}, fmt.Errorf("answer in %s phase: %w", r.phase, ErrInvalidState)
	}
	if !outcome.Valid() {
		return flashcard.Flashcard{}, fmt.Errorf("%w: %q", flashcard.ErrUnknownOutcome, outcome)
	}

	now := r.clock.Now()
	updated := spacedrep.Apply(r.queue[r.cursor], outcome, now)
	if err := r.sink.SaveCard(ctx, updated); err != nil {
		return flashcard.Flashcard{}, fmt.Errorf("save card %s: %w", updated.ID, err)
	}

	r.queue[r.cursor] = updated
	if outcome.Correct() {
		r.correct++
	} else {
		r.incorrect++
	}
	r.cursor++

	if r.cursor < len(r.queue) {
		return updated, nil
	}

	minutes := int(now.Sub(r.startedAt) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	sum := BuildSummary(r.correct, r.incorrect, minutes)
	r.summary = &sum
	r.phase = PhaseComplete

	conceptIDs := make([]string, 0, len(r.queue))
	for _, c := range r.queue {
		conceptIDs = append(conceptIDs, c.ConceptID)
	}
	result := Result{
		Reviewed: sum.Total(),
		Entry: progress.StudySession{
			ID:           uuid.NewString(),
			Date:         now,
			Duration:     minutes,
			ActivityType: progress.ActivityFlashcard,
			ConceptIDs:   conceptIDs,
			Performance:  sum.AccuracyPercent,
		},
	}
	if err := r.sink.CompleteSession(ctx, result); err != nil {
		return updated, fmt.Errorf("complete session: %w", err)
	}
	return updated, nil
}

// Reset abandons the session from any phase. Card schedules already
// saved are kept.
func (r *Review) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.phase = PhaseIdle
	r.queue = nil
	r.cursor = 0
	r.correct = 0
	r.incorrect = 0
	r.startedAt = time.Time{}
	r.summary = nil
}

// Phase returns the current phase.
func (r *Review) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Current returns the card awaiting an answer.
func (r *Review) Current() (flashcard.Flashcard, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseActive || r.cursor >= len(r.queue) {
		return flashcard.Flashcard{}, false
	}
	return r.queue[r.cursor], true
}

// Position returns the zero-based cursor and the queue length.
func (r *Review) Position() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cursor, len(r.queue)
}

// Tally returns the running correct and incorrect counts.
func (r *Review) Tally() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.correct, r.incorrect
}

// Summary returns the summary of a completed session.
func (r *Review) Summary() (Summary, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.summary == nil {
		return Summary{}, false
	}
	return *r.summary, true
}
