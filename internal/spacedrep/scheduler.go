// Package spacedrep computes the next review instant for a flashcard.
package spacedrep

import (
	"time"

	"github.com/abhisek/examprep/internal/flashcard"
)

// Next is the scheduling result of one review.
type Next struct {
	NextReview    time.Time
	ReviewCount   int
	CorrectStreak int
}

// ComputeNext schedules a card given its counters before the review.
// The interval is keyed by the review count after this review, so a
// card's first easy review lands one day out.
func ComputeNext(reviewCount, correctStreak int, outcome flashcard.Outcome, now time.Time) Next {
	count := reviewCount + 1
	correct := outcome.Correct()

	streak := 0
	if correct {
		streak = correctStreak + 1
	}

	return Next{
		NextReview:    now.AddDate(0, 0, IntervalDays(count, correct)),
		ReviewCount:   count,
		CorrectStreak: streak,
	}
}

// Apply returns a copy of card updated for a review at now.
func Apply(card flashcard.Flashcard, outcome flashcard.Outcome, now time.Time) flashcard.Flashcard {
	n := ComputeNext(card.ReviewCount, card.CorrectStreak, outcome, now)
	reviewed := now
	next := n.NextReview
	card.LastReviewed = &reviewed
	card.NextReview = &next
	card.ReviewCount = n.ReviewCount
	card.CorrectStreak = n.CorrectStreak
	return card
}
