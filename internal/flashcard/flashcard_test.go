package flashcard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(t time.Time) *time.Time { return &t }

func TestIsDue(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		next *time.Time
		want bool
	}{
		{"never scheduled", nil, true},
		{"exactly now", ptr(now), true},
		{"in the past", ptr(now.Add(-time.Minute)), true},
		{"in the future", ptr(now.Add(time.Second)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Flashcard{NextReview: tt.next}
			assert.Equal(t, tt.want, c.IsDue(now))
		})
	}
}

func TestDue_KeepsStoredOrder(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	cards := []Flashcard{
		{ID: "c"},
		{ID: "b", NextReview: ptr(now.AddDate(0, 0, 2))},
		{ID: "a", NextReview: ptr(now.AddDate(0, 0, -1))},
		{ID: "d", NextReview: ptr(now)},
	}

	due := Due(cards, now)
	require.Len(t, due, 3)
	assert.Equal(t, "c", due[0].ID)
	assert.Equal(t, "a", due[1].ID)
	assert.Equal(t, "d", due[2].ID)
}

func TestDue_NoneDue(t *testing.T) {
	now := time.Now()
	cards := []Flashcard{{ID: "x", NextReview: ptr(now.Add(time.Hour))}}
	assert.Empty(t, Due(cards, now))
}

func TestParseOutcome(t *testing.T) {
	o, err := ParseOutcome(" Easy ")
	require.NoError(t, err)
	assert.Equal(t, OutcomeEasy, o)
	assert.True(t, o.Correct())
	assert.False(t, OutcomeMedium.Correct())
	assert.False(t, OutcomeHard.Correct())

	_, err = ParseOutcome("perfect")
	assert.True(t, errors.Is(err, ErrUnknownOutcome))

	assert.True(t, OutcomeHard.Valid())
	assert.False(t, Outcome("bogus").Valid())
	assert.False(t, Outcome("").Valid())
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyMedium, d)

	d, err = ParseDifficulty("HARD")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, d)

	_, err = ParseDifficulty("brutal")
	assert.Error(t, err)
}

func TestIndex(t *testing.T) {
	cards := []Flashcard{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, 1, Index(cards, "b"))
	assert.Equal(t, -1, Index(cards, "z"))
}
