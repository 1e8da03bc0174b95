// Package workspace owns the study state. Every change goes through a
// Workspace method, which recomputes derived stats when progress moved,
// re-evaluates achievements and saves a snapshot.
package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/examprep/internal/achievement"
	"github.com/abhisek/examprep/internal/clock"
	"github.com/abhisek/examprep/internal/progress"
	"github.com/abhisek/examprep/internal/stats"
	"github.com/abhisek/examprep/internal/store"
)

// ErrNotFound is returned when an id does not match any stored entity.
var ErrNotFound = errors.New("not found")

// DefaultKeepSnapshots is how many snapshots are retained after each save.
const DefaultKeepSnapshots = 20

// Options configures a Workspace. Zero values select defaults.
type Options struct {
	Clock         clock.Clock
	NewID         func() string
	KeepSnapshots int
	Logger        *slog.Logger
}

// Workspace is the single writer of the study state.
type Workspace struct {
	repo  store.SnapshotRepo
	clock clock.Clock
	newID func() string
	keep  int
	log   *slog.Logger

	mu   sync.Mutex
	seq  int64
	data store.StateData
}

// Open loads the latest snapshot from repo, or starts a fresh state.
func Open(ctx context.Context, repo store.SnapshotRepo, opts Options) (*Workspace, error) {
	w := &Workspace{
		repo:  repo,
		clock: opts.Clock,
		newID: opts.NewID,
		keep:  opts.KeepSnapshots,
		log:   opts.Logger,
	}
	if w.clock == nil {
		w.clock = clock.System{}
	}
	if w.newID == nil {
		w.newID = uuid.NewString
	}
	if w.keep <= 0 {
		w.keep = DefaultKeepSnapshots
	}
	if w.log == nil {
		w.log = slog.Default()
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	fresh := snap == nil
	if fresh {
		w.data = store.NewStateData()
	} else {
		w.data = snap.Data
		w.seq = snap.Sequence
	}

	changed := w.refresh()
	w.log.Info("workspace loaded",
		"fresh", fresh,
		"sequence", w.seq,
		"flashcards", len(w.data.Flashcards),
		"sessions", len(w.data.Sessions))

	if fresh || changed {
		if err := w.save(ctx); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// refresh brings derived values up to date after a load or restore.
// Reports whether anything besides the stats cache changed.
func (w *Workspace) refresh() bool {
	d := &w.data
	now := w.clock.Now()
	changed := false

	// Documents written before streak upkeep carry a zero streak; rebuild
	// it from the session log.
	if d.Progress.StreakDays == 0 && len(d.Sessions) > 0 {
		if n := progress.StreakFromLog(d.Sessions, now); n > 0 {
			d.Progress.StreakDays = n
			changed = true
		}
	}
	if d.Progress.ExpireStreak(now) {
		w.log.Info("study streak expired")
		changed = true
	}
	d.Progress.Recompute(d.Sessions)
	d.Stats = stats.Compute(d.Progress)

	if len(w.evaluate()) > 0 {
		changed = true
	}
	return changed
}

// mutate applies fn under the lock and saves. fn reports whether it
// changed the progress aggregate. If fn or the save fails the state is
// left as it was before the call.
func (w *Workspace) mutate(ctx context.Context, op string, fn func(d *store.StateData) (bool, error)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	prev := cloneState(w.data)
	progressChanged, err := fn(&w.data)
	if err != nil {
		w.data = prev
		return err
	}
	if progressChanged {
		w.data.Stats = stats.Compute(w.data.Progress)
	}
	w.evaluate()

	if err := w.save(ctx); err != nil {
		w.data = prev
		w.log.Error("save failed", "op", op, "err", err)
		return err
	}
	w.log.Debug("state saved", "op", op, "sequence", w.seq)
	return nil
}

func (w *Workspace) evaluate() []string {
	d := &w.data
	champions := 0
	for _, a := range d.QuizAttempts {
		if a.Score != nil && *a.Score >= achievement.ChampionScore {
			champions++
		}
	}
	unlocked := achievement.Evaluate(d.Achievements, achievement.Facts{
		Materials:          len(d.Materials),
		FlashcardsReviewed: d.Progress.FlashcardsReviewed,
		ChampionQuizzes:    champions,
		StreakDays:         d.Progress.StreakDays,
		MasteredConcepts:   d.Progress.MasteredCount(achievement.MasteredLevel),
		StudyMinutes:       d.Progress.TotalStudyTime,
	}, w.clock.Now())
	for _, id := range unlocked {
		w.log.Info("achievement unlocked", "id", id)
	}
	return unlocked
}

func (w *Workspace) save(ctx context.Context) error {
	w.seq++
	snap := &store.Snapshot{
		Sequence:  w.seq,
		Timestamp: w.clock.Now(),
		Data:      w.data,
	}
	if err := w.repo.Save(ctx, snap); err != nil {
		w.seq--
		return fmt.Errorf("save state: %w", err)
	}
	if err := w.repo.Prune(ctx, w.keep); err != nil {
		w.log.Warn("prune snapshots", "err", err)
	}
	return nil
}

// Snapshot returns a deep copy of the current state.
func (w *Workspace) Snapshot() store.StateData {
	w.mu.Lock()
	defer w.mu.Unlock()
	return cloneState(w.data)
}

func cloneState(d store.StateData) store.StateData {
	b, err := json.Marshal(d)
	if err != nil {
		panic(fmt.Sprintf("clone state: %v", err))
	}
	var out store.StateData
	if err := json.Unmarshal(b, &out); err != nil {
		panic(fmt.Sprintf("clone state: %v", err))
	}
	return out
}

// Stats returns the current derived scores.
func (w *Workspace) Stats() stats.Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.data.Stats
}

// Progress returns a copy of the progress aggregate.
func (w *Workspace) Progress() progress.Progress {
	w.mu.Lock()
	defer w.mu.Unlock()
	p := w.data.Progress
	p.ConceptMastery = make(map[string]int, len(w.data.Progress.ConceptMastery))
	for k, v := range w.data.Progress.ConceptMastery {
		p.ConceptMastery[k] = v
	}
	p.WeakAreas = append([]string{}, w.data.Progress.WeakAreas...)
	p.StrongAreas = append([]string{}, w.data.Progress.StrongAreas...)
	return p
}

// Now returns the workspace clock's current time.
func (w *Workspace) Now() time.Time {
	return w.clock.Now()
}
