package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examprep/internal/clock"
	"github.com/abhisek/examprep/internal/flashcard"
	"github.com/abhisek/examprep/internal/progress"
)

type fakeSink struct {
	mu          sync.Mutex
	saved       []flashcard.Flashcard
	results     []Result
	saveErr     error
	completeErr error

	// block, when set, holds SaveCard until released.
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeSink) SaveCard(_ context.Context, c flashcard.Flashcard) error {
	if f.block != nil {
		f.entered <- struct{}{}
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, c)
	return nil
}

func (f *fakeSink) CompleteSession(_ context.Context, r Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, r)
	return f.completeErr
}

var start = time.Date(2025, 4, 2, 18, 0, 0, 0, time.UTC)

func threeCards() []flashcard.Flashcard {
	return []flashcard.Flashcard{
		{ID: "f1", ConceptID: "c1", Front: "1", Back: "one"},
		{ID: "f2", ConceptID: "c2", Front: "2", Back: "two"},
		{ID: "f3", ConceptID: "c1", Front: "3", Back: "three"},
	}
}

func TestReview_FullSession(t *testing.T) {
	sink := &fakeSink{}
	clk := clock.NewManual(start)
	r := New(sink, clk)
	ctx := context.Background()

	require.NoError(t, r.Start(threeCards()))
	assert.Equal(t, PhaseActive, r.Phase())

	cur, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, "f1", cur.ID)

	_, err := r.Answer(ctx, flashcard.OutcomeEasy)
	require.NoError(t, err)
	clk.Advance(2 * time.Minute)
	_, err = r.Answer(ctx, flashcard.OutcomeHard)
	require.NoError(t, err)
	clk.Advance(5*time.Minute + 59*time.Second)
	updated, err := r.Answer(ctx, flashcard.OutcomeEasy)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.ReviewCount)

	assert.Equal(t, PhaseComplete, r.Phase())
	sum, ok := r.Summary()
	require.True(t, ok)
	assert.Equal(t, Summary{CorrectCount: 2, IncorrectCount: 1, DurationMinutes: 7, AccuracyPercent: 67}, sum)

	require.Len(t, sink.saved, 3)
	require.Len(t, sink.results, 1)
	res := sink.results[0]
	assert.Equal(t, 3, res.Reviewed)
	assert.Equal(t, progress.ActivityFlashcard, res.Entry.ActivityType)
	assert.Equal(t, 7, res.Entry.Duration)
	assert.Equal(t, 67, res.Entry.Performance)
	assert.Equal(t, []string{"c1", "c2", "c1"}, res.Entry.ConceptIDs)
	assert.NotEmpty(t, res.Entry.ID)

	_, ok = r.Current()
	assert.False(t, ok)
}

func TestReview_SingleCardCompletes(t *testing.T) {
	sink := &fakeSink{}
	r := New(sink, clock.NewManual(start))

	require.NoError(t, r.Start(threeCards()[:1]))
	_, err := r.Answer(context.Background(), flashcard.OutcomeMedium)
	require.NoError(t, err)

	sum, ok := r.Summary()
	require.True(t, ok)
	assert.Equal(t, 0, sum.CorrectCount)
	assert.Equal(t, 1, sum.IncorrectCount)
	assert.Equal(t, 0, sum.AccuracyPercent)
	assert.Equal(t, 0, sum.DurationMinutes)
}

func TestReview_StartRules(t *testing.T) {
	r := New(&fakeSink{}, clock.NewManual(start))

	assert.ErrorIs(t, r.Start(nil), ErrEmptyQueue)
	assert.Equal(t, PhaseIdle, r.Phase())

	require.NoError(t, r.Start(threeCards()))
	assert.ErrorIs(t, r.Start(threeCards()), ErrInvalidState)
}

func TestReview_QueueIsSnapshot(t *testing.T) {
	sink := &fakeSink{}
	r := New(sink, clock.NewManual(start))
	cards := threeCards()
	require.NoError(t, r.Start(cards))

	cards[0].Front = "mutated"
	cur, _ := r.Current()
	assert.Equal(t, "1", cur.Front)
}

func TestReview_AnswerOutsideActive(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{}
	r := New(sink, clock.NewManual(start))

	_, err := r.Answer(ctx, flashcard.OutcomeEasy)
	assert.ErrorIs(t, err, ErrInvalidState)

	require.NoError(t, r.Start(threeCards()[:1]))
	_, err = r.Answer(ctx, flashcard.OutcomeEasy)
	require.NoError(t, err)

	sum, ok := r.Summary()
	require.True(t, ok)

	// Further answers on a complete session change nothing.
	for range 2 {
		_, err = r.Answer(ctx, flashcard.OutcomeEasy)
		assert.ErrorIs(t, err, ErrInvalidState)
	}
	assert.Equal(t, PhaseComplete, r.Phase())
	after, _ := r.Summary()
	assert.Equal(t, sum, after)
	assert.Len(t, sink.saved, 1)
	assert.Len(t, sink.results, 1)
}

func TestReview_UnknownOutcomeRejected(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{}
	r := New(sink, clock.NewManual(start))
	require.NoError(t, r.Start(threeCards()[:1]))

	_, err := r.Answer(ctx, flashcard.Outcome("bogus"))
	assert.ErrorIs(t, err, flashcard.ErrUnknownOutcome)

	assert.Equal(t, PhaseActive, r.Phase())
	pos, _ := r.Position()
	assert.Equal(t, 0, pos)
	c, i := r.Tally()
	assert.Zero(t, c+i)
	assert.Empty(t, sink.saved)
	cur, ok := r.Current()
	require.True(t, ok)
	assert.Zero(t, cur.ReviewCount)
}

func TestReview_Reset(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{}
	r := New(sink, clock.NewManual(start))

	require.NoError(t, r.Start(threeCards()))
	_, err := r.Answer(ctx, flashcard.OutcomeEasy)
	require.NoError(t, err)

	r.Reset()
	assert.Equal(t, PhaseIdle, r.Phase())
	c, i := r.Tally()
	assert.Zero(t, c)
	assert.Zero(t, i)
	_, ok := r.Summary()
	assert.False(t, ok)

	// The saved schedule stands and no completion was recorded.
	assert.Len(t, sink.saved, 1)
	assert.Empty(t, sink.results)

	require.NoError(t, r.Start(threeCards()))
}

func TestReview_SaveFailureDoesNotAdvance(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{saveErr: errors.New("disk full")}
	r := New(sink, clock.NewManual(start))
	require.NoError(t, r.Start(threeCards()))

	_, err := r.Answer(ctx, flashcard.OutcomeEasy)
	require.Error(t, err)

	pos, total := r.Position()
	assert.Equal(t, 0, pos)
	assert.Equal(t, 3, total)
	c, i := r.Tally()
	assert.Zero(t, c+i)

	sink.saveErr = nil
	_, err = r.Answer(ctx, flashcard.OutcomeEasy)
	require.NoError(t, err)
	pos, _ = r.Position()
	assert.Equal(t, 1, pos)
}

func TestReview_CompletionFailureKeepsSummary(t *testing.T) {
	sink := &fakeSink{completeErr: errors.New("write failed")}
	r := New(sink, clock.NewManual(start))
	require.NoError(t, r.Start(threeCards()[:1]))

	_, err := r.Answer(context.Background(), flashcard.OutcomeEasy)
	require.Error(t, err)
	assert.Equal(t, PhaseComplete, r.Phase())
	_, ok := r.Summary()
	assert.True(t, ok)
	assert.Len(t, sink.results, 1)
}

func TestReview_ConcurrentAnswerRejected(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{block: make(chan struct{}), entered: make(chan struct{}, 1)}
	r := New(sink, clock.NewManual(start))
	require.NoError(t, r.Start(threeCards()))

	done := make(chan error, 1)
	go func() {
		_, err := r.Answer(ctx, flashcard.OutcomeEasy)
		done <- err
	}()
	<-sink.entered

	_, err := r.Answer(ctx, flashcard.OutcomeEasy)
	assert.ErrorIs(t, err, ErrInvalidState)

	close(sink.block)
	require.NoError(t, <-done)

	pos, _ := r.Position()
	assert.Equal(t, 1, pos)
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 0, Accuracy(0, 0))
	assert.Equal(t, 100, Accuracy(4, 4))
	assert.Equal(t, 33, Accuracy(1, 3))
	assert.Equal(t, 67, Accuracy(2, 3))
	assert.Equal(t, 70, Accuracy(7, 10))
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "complete", PhaseComplete.String())
}
