package workspace

import (
	"context"
	"fmt"

	"github.com/abhisek/examprep/internal/achievement"
	"github.com/abhisek/examprep/internal/progress"
	"github.com/abhisek/examprep/internal/store"
)

// AddSession appends a session-log entry and updates the study streak.
func (w *Workspace) AddSession(ctx context.Context, entry progress.StudySession) error {
	if !entry.ActivityType.Valid() {
		return fmt.Errorf("unknown activity type %q", entry.ActivityType)
	}
	return w.mutate(ctx, "add_session", func(d *store.StateData) (bool, error) {
		if entry.ID == "" {
			entry.ID = w.newID()
		}
		if entry.Date.IsZero() {
			entry.Date = w.clock.Now()
		}
		d.Sessions = d.Progress.AppendSession(d.Sessions, entry)
		d.Progress.TouchStudyDay(entry.Date)
		return true, nil
	})
}

// Sessions returns the session log.
func (w *Workspace) Sessions() []progress.StudySession {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]progress.StudySession{}, w.data.Sessions...)
}

// UpdateProgress applies fn to the progress aggregate. Session totals
// are recomputed from the log afterwards, so fn cannot change them.
func (w *Workspace) UpdateProgress(ctx context.Context, fn func(p *progress.Progress)) error {
	return w.mutate(ctx, "update_progress", func(d *store.StateData) (bool, error) {
		fn(&d.Progress)
		d.Progress.Recompute(d.Sessions)
		return true, nil
	})
}

// ClearWeakAreas empties the weak-area set.
func (w *Workspace) ClearWeakAreas(ctx context.Context) error {
	return w.UpdateProgress(ctx, func(p *progress.Progress) { p.ClearWeakAreas() })
}

// UnlockAchievement unlocks an achievement by id.
func (w *Workspace) UnlockAchievement(ctx context.Context, id string) error {
	return w.mutate(ctx, "unlock_achievement", func(d *store.StateData) (bool, error) {
		if !achievement.Unlock(d.Achievements, id, w.clock.Now()) {
			return false, fmt.Errorf("achievement %s: %w", id, ErrNotFound)
		}
		return false, nil
	})
}

// Achievements returns all achievements.
func (w *Workspace) Achievements() []achievement.Achievement {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]achievement.Achievement{}, w.data.Achievements...)
}

// Restore replaces the whole state with d, typically from an export.
func (w *Workspace) Restore(ctx context.Context, d store.StateData) error {
	if err := store.Migrate(&d); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	prev := w.data
	w.data = d
	w.refresh()
	if err := w.save(ctx); err != nil {
		w.data = prev
		return err
	}
	w.log.Info("state restored", "flashcards", len(d.Flashcards), "sessions", len(d.Sessions))
	return nil
}

// Reset discards all snapshots and starts from a fresh state.
func (w *Workspace) Reset(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.repo.Clear(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	w.seq = 0
	w.data = store.NewStateData()
	if err := w.save(ctx); err != nil {
		return err
	}
	w.log.Info("state reset")
	return nil
}
