package quiz

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/examprep/internal/clock"
	"github.com/abhisek/examprep/internal/progress"
)

// ErrFinished is returned by operations on a run that already finished.
var ErrFinished = errors.New("quiz already finished")

// Result is what a finished run produces.
type Result struct {
	Attempt Attempt
	Grade   Grade
	Entry   progress.StudySession
}

// Run is one in-progress attempt at a quiz. Not safe for concurrent use;
// the TUI drives it from a single goroutine.
type Run struct {
	quiz      Quiz
	clock     clock.Clock
	startedAt time.Time
	index     int
	answers   map[string]Answer
	remaining int // seconds
	result    *Result
}

// Start begins a run. Questions on weak concepts are moved to the front,
// otherwise question order is preserved.
func Start(q Quiz, weakAreas []string, clk clock.Clock) *Run {
	if clk == nil {
		clk = clock.System{}
	}
	weak := make(map[string]bool, len(weakAreas))
	for _, id := range weakAreas {
		weak[id] = true
	}

	ordered := append([]Question(nil), q.Questions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return weak[ordered[i].ConceptID] && !weak[ordered[j].ConceptID]
	})
	q.Questions = ordered

	return &Run{
		quiz:      q,
		clock:     clk,
		startedAt: clk.Now(),
		answers:   make(map[string]Answer),
		remaining: q.TimeLimit * 60,
	}
}

// Quiz returns the quiz with questions in run order.
func (r *Run) Quiz() Quiz { return r.quiz }

// Index returns the zero-based current question index.
func (r *Run) Index() int { return r.index }

// Len returns the number of questions.
func (r *Run) Len() int { return len(r.quiz.Questions) }

// Current returns the question being asked.
func (r *Run) Current() (Question, bool) {
	if r.result != nil || r.index >= len(r.quiz.Questions) {
		return Question{}, false
	}
	return r.quiz.Questions[r.index], true
}

// AnswerFor returns the answer recorded for a question, if any.
func (r *Run) AnswerFor(questionID string) (Answer, bool) {
	a, ok := r.answers[questionID]
	return a, ok
}

// Timed reports whether the quiz has a countdown.
func (r *Run) Timed() bool { return r.quiz.TimeLimit > 0 }

// Remaining returns the time left on the countdown.
func (r *Run) Remaining() time.Duration {
	return time.Duration(r.remaining) * time.Second
}

// Finished reports whether the run has produced its result.
func (r *Run) Finished() bool { return r.result != nil }

// Result returns the result of a finished run.
func (r *Run) Result() (Result, bool) {
	if r.result == nil {
		return Result{}, false
	}
	return *r.result, true
}

// Answer records an answer for the current question, replacing any
// earlier one.
func (r *Run) Answer(a Answer) error {
	q, ok := r.Current()
	if !ok {
		return ErrFinished
	}
	r.answers[q.ID] = a
	return nil
}

// Next moves to the following question. Moving past the last question
// finishes the run and returns its result.
func (r *Run) Next() (*Result, error) {
	if r.result != nil {
		return nil, ErrFinished
	}
	if r.index < len(r.quiz.Questions)-1 {
		r.index++
		return nil, nil
	}
	return r.Finish()
}

// Tick counts the countdown down by d. Reaching zero finishes the run.
// Untimed runs ignore ticks.
func (r *Run) Tick(d time.Duration) (*Result, error) {
	if r.result != nil {
		return nil, ErrFinished
	}
	if !r.Timed() {
		return nil, nil
	}
	r.remaining -= int(d / time.Second)
	if r.remaining > 0 {
		return nil, nil
	}
	r.remaining = 0
	return r.Finish()
}

// Finish grades the run. Every way of ending a run comes through here,
// and it succeeds only once.
func (r *Run) Finish() (*Result, error) {
	if r.result != nil {
		return nil, fmt.Errorf("finish %s: %w", r.quiz.ID, ErrFinished)
	}

	now := r.clock.Now()
	spent := int(now.Sub(r.startedAt) / time.Second)
	if r.Timed() {
		spent = r.quiz.TimeLimit*60 - r.remaining
	}
	if spent < 0 {
		spent = 0
	}

	g := GradeAnswers(r.quiz.Questions, r.answers)
	score := g.Score
	completed := now

	answers := make(map[string]Answer, len(r.answers))
	for k, v := range r.answers {
		answers[k] = v
	}

	conceptIDs := make([]string, 0, len(r.quiz.Questions))
	for _, q := range r.quiz.Questions {
		conceptIDs = append(conceptIDs, q.ConceptID)
	}

	r.result = &Result{
		Attempt: Attempt{
			ID:          uuid.NewString(),
			QuizID:      r.quiz.ID,
			StartedAt:   r.startedAt,
			CompletedAt: &completed,
			Answers:     answers,
			Score:       &score,
			TimeSpent:   spent,
			WeakAreas:   g.Weak,
		},
		Grade: g,
		Entry: progress.StudySession{
			ID:           uuid.NewString(),
			Date:         now,
			Duration:     spent / 60,
			ActivityType: progress.ActivityQuiz,
			ConceptIDs:   conceptIDs,
			Performance:  score,
		},
	}
	res := *r.result
	return &res, nil
}
