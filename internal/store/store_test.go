package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examprep/internal/flashcard"
	"github.com/abhisek/examprep/internal/progress"
	"github.com/abhisek/examprep/internal/schema"
	"github.com/abhisek/examprep/internal/stats"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	// A unique shared-cache name per test keeps parallel packages isolated.
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is covered by the file-based test below.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}
	for _, tt := range tests {
		var got string
		require.NoError(t, db.QueryRow("PRAGMA "+tt.pragma).Scan(&got))
		assert.Equal(t, tt.want, got, tt.pragma)
	}
}

func TestFileStore_WAL(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	repo := openTestStore(t).SnapshotRepo()
	ctx := context.Background()

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)

	now := time.Now().UTC().Truncate(time.Second)
	next := now.AddDate(0, 0, 3)
	data := NewStateData()
	data.Flashcards = append(data.Flashcards, flashcard.Flashcard{
		ID: "f1", Front: "front", Back: "back", NextReview: &next, ReviewCount: 2, CorrectStreak: 1,
	})
	data.Progress.FlashcardsReviewed = 9
	data.Stats = stats.Stats{ConfidenceScore: 1, ReadinessScore: 2, ConsistencyScore: 3, OverallProgress: 2}

	require.NoError(t, repo.Save(ctx, &Snapshot{Sequence: 1, Timestamp: now, Data: data}))
	data.Progress.FlashcardsReviewed = 10
	second := &Snapshot{Sequence: 2, Timestamp: now, Data: data}
	require.NoError(t, repo.Save(ctx, second))
	assert.NotZero(t, second.ID)

	snap, err = repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, int64(2), snap.Sequence)
	assert.True(t, now.Equal(snap.Timestamp))
	assert.Equal(t, 10, snap.Data.Progress.FlashcardsReviewed)
	require.Len(t, snap.Data.Flashcards, 1)
	require.NotNil(t, snap.Data.Flashcards[0].NextReview)
	assert.True(t, next.Equal(*snap.Data.Flashcards[0].NextReview))
	assert.Nil(t, snap.Data.Flashcards[0].LastReviewed)
	assert.Equal(t, SchemaVersion, snap.Data.SchemaVersion)
}

func TestSnapshotPruneAndClear(t *testing.T) {
	repo := openTestStore(t).SnapshotRepo()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Save(ctx, &Snapshot{Sequence: int64(i), Timestamp: time.Now(), Data: NewStateData()}))
	}
	require.NoError(t, repo.Prune(ctx, 2))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), snap.Sequence)

	require.NoError(t, repo.Clear(ctx))
	snap, err = repo.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestNewStateData_Defaults(t *testing.T) {
	d := NewStateData()
	assert.Equal(t, stats.Defaults(), d.Stats)
	assert.Len(t, d.Achievements, 6)
	assert.NotNil(t, d.Flashcards)
	assert.NotNil(t, d.Progress.ConceptMastery)
}

func TestDecodeState_MissingKeys(t *testing.T) {
	d, err := DecodeState([]byte(`{"progress":{"flashcards_reviewed":3}}`))
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, d.SchemaVersion)
	assert.Equal(t, 3, d.Progress.FlashcardsReviewed)
	assert.NotNil(t, d.Sessions)
	assert.Len(t, d.Achievements, 6)
}

func TestMigrate(t *testing.T) {
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.AddDate(0, 0, 2)

	d := StateData{
		SchemaVersion: "v1.0.0",
		Sessions: []progress.StudySession{
			{Date: newer, ActivityType: progress.ActivityQuiz},
			{Date: older, ActivityType: progress.ActivityFlashcard},
		},
	}
	require.NoError(t, Migrate(&d))
	assert.Equal(t, SchemaVersion, d.SchemaVersion)
	require.NotNil(t, d.Progress.LastStudyDate)
	assert.True(t, newer.Equal(*d.Progress.LastStudyDate))

	tests := []struct {
		version string
		wantErr bool
	}{
		{"", false},
		{"v1.1.7", false},
		{"v1.2.0", true},
		{"v2.0.0", true},
		{"banana", true},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			d := StateData{SchemaVersion: tt.version}
			err := Migrate(&d)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnsupportedVersion))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestExportImportState(t *testing.T) {
	d := NewStateData()
	d.Progress.SetConceptMastery("c1", 85)
	d.Flashcards = append(d.Flashcards, flashcard.Flashcard{ID: "f1", Front: "a", Back: "b"})

	raw, err := ExportState(d)
	require.NoError(t, err)

	got, err := ImportState(raw)
	require.NoError(t, err)
	assert.Equal(t, 85, got.Progress.ConceptMastery["c1"])
	require.Len(t, got.Flashcards, 1)
}

func TestImportState_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad mastery":    `{"progress":{"concept_mastery":{"c1":140}}}`,
		"card no id":     `{"flashcards":[{"front":"a","back":"b"}]}`,
		"negative count": `{"flashcards":[{"id":"x","front":"a","back":"b","review_count":-1}]}`,
		"bad activity":   `{"sessions":[{"date":"2025-01-01T00:00:00Z","activity_type":"nap"}]}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ImportState([]byte(raw))
			var inv *schema.ErrInvalidDocument
			assert.True(t, errors.As(err, &inv), "got %v", err)
		})
	}
}
