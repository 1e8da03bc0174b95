package progress

import "time"

// ActivityType classifies a study-session log entry.
type ActivityType string

const (
	ActivityFlashcard      ActivityType = "flashcard"
	ActivityQuiz           ActivityType = "quiz"
	ActivityConceptReview  ActivityType = "concept_review"
	ActivityMaterialUpload ActivityType = "material_upload"
)

// Valid reports whether a is a known activity type.
func (a ActivityType) Valid() bool {
	switch a {
	case ActivityFlashcard, ActivityQuiz, ActivityConceptReview, ActivityMaterialUpload:
		return true
	}
	return false
}

// StudySession is one entry in the session log. Duration is in whole
// minutes and Performance is 0-100.
type StudySession struct {
	ID           string       `json:"id"`
	Date         time.Time    `json:"date"`
	Duration     int          `json:"duration"`
	ActivityType ActivityType `json:"activity_type"`
	ConceptIDs   []string     `json:"concept_ids"`
	Performance  int          `json:"performance"`
}
