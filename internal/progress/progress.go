// Package progress holds the aggregate record of a learner's study history.
//
// Session totals are always derived from the full session log, never
// incremented in place, so replaying the log reproduces them.
package progress

import (
	"math"
	"time"
)

// Progress is the aggregate study record.
type Progress struct {
	TotalStudyTime     int            `json:"total_study_time"`
	SessionsCompleted  int            `json:"sessions_completed"`
	FlashcardsReviewed int            `json:"flashcards_reviewed"`
	QuizzesTaken       int            `json:"quizzes_taken"`
	AverageScore       int            `json:"average_score"`
	StreakDays         int            `json:"streak_days"`
	LastStudyDate      *time.Time     `json:"last_study_date,omitempty"`
	ConceptMastery     map[string]int `json:"concept_mastery"`
	WeakAreas          []string       `json:"weak_areas"`
	StrongAreas        []string       `json:"strong_areas"`
}

// New returns an empty aggregate.
func New() Progress {
	return Progress{
		ConceptMastery: make(map[string]int),
		WeakAreas:      []string{},
		StrongAreas:    []string{},
	}
}

// Normalize fills nil collections left by older documents.
func (p *Progress) Normalize() {
	if p.ConceptMastery == nil {
		p.ConceptMastery = make(map[string]int)
	}
	if p.WeakAreas == nil {
		p.WeakAreas = []string{}
	}
	if p.StrongAreas == nil {
		p.StrongAreas = []string{}
	}
}

// AppendSession appends entry to log and recomputes the session totals
// from the result.
func (p *Progress) AppendSession(log []StudySession, entry StudySession) []StudySession {
	log = append(log, entry)
	p.Recompute(log)
	return log
}

// Recompute derives TotalStudyTime and SessionsCompleted from log.
func (p *Progress) Recompute(log []StudySession) {
	total := 0
	for _, s := range log {
		total += s.Duration
	}
	p.TotalStudyTime = total
	p.SessionsCompleted = len(log)
}

// RecordFlashcards adds n reviewed cards.
func (p *Progress) RecordFlashcards(n int) {
	if n > 0 {
		p.FlashcardsReviewed += n
	}
}

// RecordQuizScore folds score into the running average. The average is
// rounded after every quiz, so it can drift from the exact mean.
func (p *Progress) RecordQuizScore(score int) {
	n := p.QuizzesTaken
	p.AverageScore = int(math.Round(float64(p.AverageScore*n+score) / float64(n+1)))
	p.QuizzesTaken = n + 1
}

// SetConceptMastery records a mastery level, clamped to 0-100.
func (p *Progress) SetConceptMastery(conceptID string, level int) {
	if p.ConceptMastery == nil {
		p.ConceptMastery = make(map[string]int)
	}
	p.ConceptMastery[conceptID] = clamp(level)
}

// RemoveConcept drops a concept's mastery entry.
func (p *Progress) RemoveConcept(conceptID string) {
	delete(p.ConceptMastery, conceptID)
}

// AddWeakAreas unions ids into WeakAreas.
func (p *Progress) AddWeakAreas(ids ...string) {
	p.WeakAreas = union(p.WeakAreas, ids)
}

// AddStrongAreas unions ids into StrongAreas.
func (p *Progress) AddStrongAreas(ids ...string) {
	p.StrongAreas = union(p.StrongAreas, ids)
}

// ClearWeakAreas empties the weak-area list.
func (p *Progress) ClearWeakAreas() { p.WeakAreas = []string{} }

// ClearStrongAreas empties the strong-area list.
func (p *Progress) ClearStrongAreas() { p.StrongAreas = []string{} }

// IsWeak reports whether conceptID is a weak area.
func (p *Progress) IsWeak(conceptID string) bool {
	for _, id := range p.WeakAreas {
		if id == conceptID {
			return true
		}
	}
	return false
}

// MasteredCount returns the number of concepts at or above threshold.
func (p *Progress) MasteredCount(threshold int) int {
	n := 0
	for _, lvl := range p.ConceptMastery {
		if lvl >= threshold {
			n++
		}
	}
	return n
}

func union(set, ids []string) []string {
	seen := make(map[string]struct{}, len(set)+len(ids))
	out := make([]string, 0, len(set)+len(ids))
	for _, id := range set {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
