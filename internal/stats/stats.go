// Package stats reduces a progress aggregate to the four dashboard scores.
package stats

import (
	"math"

	"github.com/abhisek/examprep/internal/progress"
)

// MasteredThreshold is the mastery level at which a concept counts as mastered.
const MasteredThreshold = 80

// EmptyReadiness is the readiness reported before any concept is tracked.
const EmptyReadiness = 30

// Stats holds derived scores, each in [0, 100].
type Stats struct {
	ConfidenceScore  int `json:"confidence_score"`
	ReadinessScore   int `json:"readiness_score"`
	ConsistencyScore int `json:"consistency_score"`
	OverallProgress  int `json:"overall_progress"`
}

// Defaults returns the scores shown before the first computation.
func Defaults() Stats {
	return Stats{
		ConfidenceScore:  50,
		ReadinessScore:   30,
		ConsistencyScore: 50,
		OverallProgress:  0,
	}
}

// Compute derives Stats from p. It reads nothing else.
func Compute(p progress.Progress) Stats {
	s := Stats{
		ConfidenceScore:  Confidence(p),
		ReadinessScore:   Readiness(p),
		ConsistencyScore: Consistency(p),
	}
	s.OverallProgress = clamp(round(float64(s.ConfidenceScore+s.ReadinessScore+s.ConsistencyScore) / 3))
	return s
}

// Confidence blends quiz average, any flashcard practice and the streak.
func Confidence(p progress.Progress) int {
	v := float64(p.AverageScore) * 0.4
	if p.FlashcardsReviewed > 0 {
		v += 30
	}
	v += float64(p.StreakDays * 2)
	return clamp(round(v))
}

// Readiness is the share of tracked concepts at or above MasteredThreshold.
func Readiness(p progress.Progress) int {
	if len(p.ConceptMastery) == 0 {
		return EmptyReadiness
	}
	mastered := p.MasteredCount(MasteredThreshold)
	return clamp(round(float64(mastered) / float64(len(p.ConceptMastery)) * 100))
}

// Consistency rewards streak days and completed sessions.
func Consistency(p progress.Progress) int {
	return clamp(round(float64(p.StreakDays*10 + p.SessionsCompleted*2)))
}

func round(v float64) int {
	return int(math.Round(v))
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
