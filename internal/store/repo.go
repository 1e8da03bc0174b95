package store

import (
	"context"
	"time"
)

// Snapshot is a point-in-time copy of the whole study state.
type Snapshot struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	Data      StateData
}

// SnapshotRepo manages state snapshots. The newest snapshot is the
// current state; older ones are history until pruned.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error

	// Count returns the number of stored snapshots.
	Count(ctx context.Context) (int, error)

	// Clear deletes every snapshot.
	Clear(ctx context.Context) error
}
