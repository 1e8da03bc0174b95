package workspace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examprep/internal/achievement"
	"github.com/abhisek/examprep/internal/clock"
	"github.com/abhisek/examprep/internal/flashcard"
	"github.com/abhisek/examprep/internal/material"
	"github.com/abhisek/examprep/internal/plan"
	"github.com/abhisek/examprep/internal/progress"
	"github.com/abhisek/examprep/internal/quiz"
	"github.com/abhisek/examprep/internal/session"
	"github.com/abhisek/examprep/internal/stats"
	"github.com/abhisek/examprep/internal/store"
)

var t0 = time.Date(2025, 11, 3, 19, 0, 0, 0, time.UTC)

type fixture struct {
	ws    *Workspace
	repo  store.SnapshotRepo
	clock *clock.Manual
	opts  Options
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s, err := store.Open(fmt.Sprintf("file:ws_%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	n := 0
	clk := clock.NewManual(t0)
	opts := Options{
		Clock:         clk,
		NewID:         func() string { n++; return fmt.Sprintf("id-%d", n) },
		KeepSnapshots: 5,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	repo := s.SnapshotRepo()
	ws, err := Open(context.Background(), repo, opts)
	require.NoError(t, err)
	return &fixture{ws: ws, repo: repo, clock: clk, opts: opts}
}

func (f *fixture) reopen(t *testing.T) *Workspace {
	t.Helper()
	ws, err := Open(context.Background(), f.repo, f.opts)
	require.NoError(t, err)
	return ws
}

const deckSrc = `# Go

Q: Who designed Go?
A: Griesemer, Pike and Thompson

Q: What keyword starts a goroutine?
A: go

# Channels

Typed conduits between goroutines.
`

func importDeck(t *testing.T, f *fixture) ImportResult {
	t.Helper()
	deck, err := material.ParseDeck("go.md", []byte(deckSrc), f.opts.NewID, f.clock.Now())
	require.NoError(t, err)
	res, err := f.ws.ImportDeck(context.Background(), deck)
	require.NoError(t, err)
	return res
}

func TestOpen_Fresh(t *testing.T) {
	f := newFixture(t)
	// Stats are recomputed from the empty aggregate on load.
	assert.Equal(t, stats.Compute(progress.New()), f.ws.Stats())
	assert.Len(t, f.ws.Achievements(), 6)

	n, err := f.repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestImportDeck(t *testing.T) {
	f := newFixture(t)
	res := importDeck(t, f)
	assert.Equal(t, 3, res.Cards)
	assert.Equal(t, 2, res.Concepts)
	assert.Zero(t, res.Skipped)

	var first achievement.Achievement
	for _, a := range f.ws.Achievements() {
		if a.ID == achievement.FirstUpload {
			first = a
		}
	}
	assert.True(t, first.Unlocked())

	// Re-importing keeps one copy of each card and concept.
	res = importDeck(t, f)
	assert.Zero(t, res.Cards)
	assert.Zero(t, res.Concepts)
	assert.Equal(t, 2, res.Reused)
	assert.Equal(t, 3, res.Skipped)
	assert.Len(t, f.ws.Flashcards(), 3)
	assert.Len(t, f.ws.Concepts(), 2)
	assert.Len(t, f.ws.Materials(), 1)
}

func TestImportDeck_ReusesConceptsByTitle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	importDeck(t, f)

	var goID string
	for _, c := range f.ws.Concepts() {
		if c.Title == "Go" {
			goID = c.ID
		}
	}
	require.NotEmpty(t, goID)

	src := "# go\n\nQ: Who maintains Go?\nA: The Go team\n\n# Select\n\nQ: What does select wait on?\nA: Channel operations\n"
	deck, err := material.ParseDeck("more.md", []byte(src), f.opts.NewID, f.clock.Now())
	require.NoError(t, err)
	res, err := f.ws.ImportDeck(ctx, deck)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Concepts)
	assert.Equal(t, 1, res.Reused)
	assert.Equal(t, 2, res.Cards)

	assert.Len(t, f.ws.Concepts(), 3)
	materials := f.ws.Materials()
	require.Len(t, materials, 2)
	assert.Len(t, materials[1].ConceptIDs, 1)

	byFront := map[string]string{}
	for _, c := range f.ws.Flashcards() {
		byFront[c.Front] = c.ConceptID
	}
	assert.Equal(t, goID, byFront["Who maintains Go?"])

	// Dropping the second material leaves the first deck intact.
	require.NoError(t, f.ws.RemoveMaterial(ctx, materials[1].ID))
	assert.Len(t, f.ws.Concepts(), 2)
	assert.Len(t, f.ws.Flashcards(), 4)
}

func TestReviewSession_EndToEnd(t *testing.T) {
	f := newFixture(t)
	importDeck(t, f)
	ctx := context.Background()

	r, err := f.ws.StartReview()
	require.NoError(t, err)
	_, total := r.Position()
	require.Equal(t, 3, total)

	for i := 0; i < total; i++ {
		f.clock.Advance(40 * time.Second)
		_, err := r.Answer(ctx, flashcard.OutcomeEasy)
		require.NoError(t, err)
	}
	sum, ok := r.Summary()
	require.True(t, ok)
	assert.Equal(t, 3, sum.CorrectCount)
	assert.Equal(t, 2, sum.DurationMinutes)
	assert.Equal(t, 100, sum.AccuracyPercent)

	p := f.ws.Progress()
	assert.Equal(t, 3, p.FlashcardsReviewed)
	assert.Equal(t, 1, p.SessionsCompleted)
	assert.Equal(t, 2, p.TotalStudyTime)
	assert.Equal(t, 1, p.StreakDays)

	// confidence 30+2, readiness 30, consistency 10+2
	assert.Equal(t, stats.Stats{ConfidenceScore: 32, ReadinessScore: 30, ConsistencyScore: 12, OverallProgress: 25}, f.ws.Stats())

	assert.Empty(t, f.ws.DueFlashcards())
	_, err = f.ws.StartReview()
	assert.ErrorIs(t, err, session.ErrEmptyQueue)

	sessions := f.ws.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, progress.ActivityFlashcard, sessions[0].ActivityType)
	assert.Len(t, sessions[0].ConceptIDs, 3)

	// Cards come back a day later; the state survived a reload.
	f.clock.Advance(24 * time.Hour)
	reloaded := f.reopen(t)
	assert.Len(t, reloaded.DueFlashcards(), 3)
	assert.Equal(t, 3, reloaded.Progress().FlashcardsReviewed)
	for _, c := range reloaded.Flashcards() {
		assert.Equal(t, 1, c.ReviewCount)
		assert.Equal(t, 1, c.CorrectStreak)
	}
}

func TestReviewSession_ResetKeepsSchedules(t *testing.T) {
	f := newFixture(t)
	importDeck(t, f)

	r, err := f.ws.StartReview()
	require.NoError(t, err)
	_, err = r.Answer(context.Background(), flashcard.OutcomeHard)
	require.NoError(t, err)
	r.Reset()

	assert.Len(t, f.ws.DueFlashcards(), 2)
	assert.Zero(t, f.ws.Progress().FlashcardsReviewed)
	assert.Empty(t, f.ws.Sessions())
}

var errDiskFull = errors.New("disk full")

// failingRepo fails every save once armed, after letting pass saves
// through first.
type failingRepo struct {
	store.SnapshotRepo
	armed bool
	pass  int
}

func (r *failingRepo) Save(ctx context.Context, snap *store.Snapshot) error {
	if r.armed {
		if r.pass == 0 {
			return errDiskFull
		}
		r.pass--
	}
	return r.SnapshotRepo.Save(ctx, snap)
}

func TestMutate_FailedSaveRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	importDeck(t, f)

	repo := &failingRepo{SnapshotRepo: f.repo}
	ws, err := Open(ctx, repo, f.opts)
	require.NoError(t, err)

	r, err := ws.StartReview()
	require.NoError(t, err)
	for range 2 {
		_, err := r.Answer(ctx, flashcard.OutcomeEasy)
		require.NoError(t, err)
	}

	// The last card's schedule saves; the completion record does not.
	repo.armed, repo.pass = true, 1
	_, err = r.Answer(ctx, flashcard.OutcomeEasy)
	require.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, session.PhaseComplete, r.Phase())

	assert.Zero(t, ws.Progress().FlashcardsReviewed)
	assert.Empty(t, ws.Sessions())
	assert.Zero(t, ws.Progress().StreakDays)

	before := ws.Flashcards()
	changed := before[0]
	changed.Front = "edited"
	assert.ErrorIs(t, ws.SaveCard(ctx, changed), errDiskFull)
	assert.Equal(t, before, ws.Flashcards())

	// A later unrelated save does not carry the failed changes.
	repo.armed = false
	require.NoError(t, ws.ClearWeakAreas(ctx))
	reloaded := f.reopen(t)
	assert.Zero(t, reloaded.Progress().FlashcardsReviewed)
	assert.Empty(t, reloaded.Sessions())
	for _, c := range reloaded.Flashcards() {
		assert.Equal(t, 1, c.ReviewCount)
		assert.NotEqual(t, "edited", c.Front)
	}
}

func TestSaveCard_Unknown(t *testing.T) {
	f := newFixture(t)
	err := f.ws.SaveCard(context.Background(), flashcard.Flashcard{ID: "nope"})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestQuizFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.ws.AddQuiz(ctx, quiz.Quiz{
		ID:        "q1",
		Title:     "Go basics",
		TimeLimit: 5,
		Questions: []quiz.Question{
			{ID: "a", Type: quiz.TypeFillBlank, Prompt: "keyword", CorrectAnswer: quiz.Single("go"), ConceptID: "c-go"},
			{ID: "b", Type: quiz.TypeTrueFalse, Prompt: "GC?", CorrectAnswer: quiz.Single("True"), ConceptID: "c-gc"},
		},
	}))
	_, err := f.ws.StartQuiz("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	run, err := f.ws.StartQuiz("q1")
	require.NoError(t, err)
	require.NoError(t, run.Answer(quiz.Single("go")))
	_, err = run.Next()
	require.NoError(t, err)
	require.NoError(t, run.Answer(quiz.Single("False")))
	_, err = run.Tick(2 * time.Minute)
	require.NoError(t, err)
	res, err := run.Next()
	require.NoError(t, err)
	require.NotNil(t, res)

	require.NoError(t, f.ws.RecordQuizResult(ctx, *res))
	p := f.ws.Progress()
	assert.Equal(t, 1, p.QuizzesTaken)
	assert.Equal(t, 50, p.AverageScore)
	assert.Equal(t, []string{"c-gc"}, p.WeakAreas)
	assert.Equal(t, []string{"c-go"}, p.StrongAreas)
	assert.Equal(t, 2, p.TotalStudyTime)
	require.Len(t, f.ws.Attempts(), 1)

	// The weak concept is asked first next time.
	run, err = f.ws.StartQuiz("q1")
	require.NoError(t, err)
	q, _ := run.Current()
	assert.Equal(t, "b", q.ID)

	require.NoError(t, f.ws.ClearWeakAreas(ctx))
	assert.Empty(t, f.ws.Progress().WeakAreas)
}

func TestConceptMasteryAndRemoveMaterial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := importDeck(t, f)

	concepts := f.ws.Concepts()
	require.Len(t, concepts, 2)
	require.NoError(t, f.ws.UpdateConceptMastery(ctx, concepts[0].ID, 90))
	require.NoError(t, f.ws.UpdateConceptMastery(ctx, concepts[1].ID, 120))
	assert.Equal(t, 100, f.ws.Progress().ConceptMastery[concepts[1].ID])
	assert.Equal(t, 100, f.ws.Stats().ReadinessScore)

	assert.ErrorIs(t, f.ws.UpdateConceptMastery(ctx, "ghost", 10), ErrNotFound)

	require.NoError(t, f.ws.RemoveMaterial(ctx, res.Material.ID))
	assert.Empty(t, f.ws.Concepts())
	assert.Empty(t, f.ws.Flashcards())
	assert.Empty(t, f.ws.Progress().ConceptMastery)
	assert.Equal(t, 30, f.ws.Stats().ReadinessScore)

	assert.ErrorIs(t, f.ws.RemoveMaterial(ctx, res.Material.ID), ErrNotFound)
}

func TestStudyPlans(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.ws.CreateStudyPlan(ctx, "Finals", "", t0.AddDate(0, 0, 14), 0)
	require.NoError(t, err)
	assert.Equal(t, plan.DefaultEstimatedHours, p.EstimatedHours)

	task, err := f.ws.AddPlanTask(ctx, p.ID, t0, plan.Task{Title: "Review cards", Type: plan.TaskFlashcardReview})
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)

	require.NoError(t, f.ws.SetTaskCompleted(ctx, p.ID, task.ID, true))
	plans := f.ws.StudyPlans()
	require.Len(t, plans, 1)
	assert.Equal(t, 100, plans[0].OverallProgress())

	_, err = f.ws.AddPlanTask(ctx, "nope", t0, plan.Task{Title: "x", Type: plan.TaskQuizPractice})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddSession_StreakAndAchievements(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for day := 0; day < 7; day++ {
		require.NoError(t, f.ws.AddSession(ctx, progress.StudySession{
			Date:         t0.AddDate(0, 0, day),
			Duration:     30,
			ActivityType: progress.ActivityConceptReview,
		}))
	}
	f.clock.Set(t0.AddDate(0, 0, 6))
	assert.Equal(t, 7, f.ws.Progress().StreakDays)

	var streak achievement.Achievement
	for _, a := range f.ws.Achievements() {
		if a.ID == achievement.StreakKeeper {
			streak = a
		}
	}
	assert.True(t, streak.Unlocked())

	assert.Error(t, f.ws.AddSession(ctx, progress.StudySession{ActivityType: "nap"}))

	// Three idle days later the streak has lapsed.
	f.clock.Set(t0.AddDate(0, 0, 9))
	assert.Zero(t, f.reopen(t).Progress().StreakDays)
}

func TestResetAndRestore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	importDeck(t, f)

	exported := f.ws.Snapshot()
	require.Len(t, exported.Flashcards, 3)

	require.NoError(t, f.ws.Reset(ctx))
	assert.Empty(t, f.ws.Flashcards())
	n, err := f.repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, f.ws.Restore(ctx, exported))
	assert.Len(t, f.ws.Flashcards(), 3)
	assert.Len(t, f.reopen(t).Flashcards(), 3)
}

func TestAddResource_Validates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.ws.AddResource(ctx, material.Resource{Title: "Tour", URL: "not a url", Type: material.ResourceCourse})
	assert.Error(t, err)

	require.NoError(t, f.ws.AddResource(ctx, material.Resource{
		Title: "A Tour of Go", URL: "https://go.dev/tour", Type: material.ResourceCourse, Rating: 4.8,
	}))
	assert.Len(t, f.ws.Resources(), 1)
}

func TestSnapshotsPruned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 8; i++ {
		require.NoError(t, f.ws.AddFlashcard(ctx, flashcard.Flashcard{Front: "f", Back: "b"}))
	}
	n, err := f.repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}
