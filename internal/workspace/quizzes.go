package workspace

import (
	"context"
	"fmt"
	"slices"

	"github.com/abhisek/examprep/internal/quiz"
	"github.com/abhisek/examprep/internal/store"
)

// AddQuiz stores a quiz definition.
func (w *Workspace) AddQuiz(ctx context.Context, q quiz.Quiz) error {
	return w.mutate(ctx, "add_quiz", func(d *store.StateData) (bool, error) {
		if q.ID == "" {
			q.ID = w.newID()
		}
		if slices.ContainsFunc(d.Quizzes, func(x quiz.Quiz) bool { return x.ID == q.ID }) {
			return false, fmt.Errorf("quiz %s already exists", q.ID)
		}
		if q.CreatedAt.IsZero() {
			q.CreatedAt = w.clock.Now()
		}
		d.Quizzes = append(d.Quizzes, q)
		return false, nil
	})
}

// Quizzes returns all quiz definitions.
func (w *Workspace) Quizzes() []quiz.Quiz {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]quiz.Quiz{}, w.data.Quizzes...)
}

// Attempts returns every recorded quiz attempt.
func (w *Workspace) Attempts() []quiz.Attempt {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]quiz.Attempt{}, w.data.QuizAttempts...)
}

// StartQuiz begins a run of the quiz with the given id, asking questions
// on current weak areas first.
func (w *Workspace) StartQuiz(id string) (*quiz.Run, error) {
	w.mu.Lock()
	i := slices.IndexFunc(w.data.Quizzes, func(q quiz.Quiz) bool { return q.ID == id })
	if i < 0 {
		w.mu.Unlock()
		return nil, fmt.Errorf("quiz %s: %w", id, ErrNotFound)
	}
	q := w.data.Quizzes[i]
	weak := append([]string{}, w.data.Progress.WeakAreas...)
	w.mu.Unlock()

	return quiz.Start(q, weak, w.clock), nil
}

// RecordQuizResult stores a finished attempt and folds it into progress:
// the running score average, weak and strong areas, the session log and
// the study streak.
func (w *Workspace) RecordQuizResult(ctx context.Context, r quiz.Result) error {
	return w.mutate(ctx, "record_quiz", func(d *store.StateData) (bool, error) {
		d.QuizAttempts = append(d.QuizAttempts, r.Attempt)
		d.Progress.RecordQuizScore(r.Grade.Score)
		d.Progress.AddWeakAreas(r.Grade.Weak...)
		d.Progress.AddStrongAreas(r.Grade.Strong...)
		d.Sessions = d.Progress.AppendSession(d.Sessions, r.Entry)
		d.Progress.TouchStudyDay(r.Entry.Date)
		return true, nil
	})
}
