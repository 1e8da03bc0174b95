package session

import "math"

// Summary is the outcome of a completed review session.
type Summary struct {
	CorrectCount    int `json:"correct_count"`
	IncorrectCount  int `json:"incorrect_count"`
	DurationMinutes int `json:"duration_minutes"`
	AccuracyPercent int `json:"accuracy_percent"`
}

// Total returns the number of cards answered.
func (s Summary) Total() int {
	return s.CorrectCount + s.IncorrectCount
}

// BuildSummary creates a Summary from a tally.
func BuildSummary(correct, incorrect, minutes int) Summary {
	return Summary{
		CorrectCount:    correct,
		IncorrectCount:  incorrect,
		DurationMinutes: minutes,
		AccuracyPercent: Accuracy(correct, correct+incorrect),
	}
}

// Accuracy returns round(correct/total*100), or 0 when total is 0.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
