package spacedrep

// BaseIntervals defines the expanding interval schedule in days for
// consecutive easy reviews. Index 0 applies to the first review.
var BaseIntervals = []int{1, 3, 7, 14, 30}

// RetryIntervalDays is the interval after any non-easy outcome.
const RetryIntervalDays = 1

// IntervalDays returns the interval for a review that brings the card's
// review count to reviewCount. Counts past the table use the last entry.
func IntervalDays(reviewCount int, correct bool) int {
	if !correct {
		return RetryIntervalDays
	}
	if reviewCount < 1 {
		return BaseIntervals[0]
	}
	if reviewCount > len(BaseIntervals) {
		return BaseIntervals[len(BaseIntervals)-1]
	}
	return BaseIntervals[reviewCount-1]
}
