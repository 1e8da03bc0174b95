// Package achievement tracks milestone badges.
package achievement

import "time"

// Built-in achievement ids.
const (
	FirstUpload      = "first_upload"
	FlashcardMaster  = "flashcard_master"
	QuizChampion     = "quiz_champion"
	StreakKeeper     = "streak_keeper"
	ConceptExplorer  = "concept_explorer"
	DedicatedLearner = "dedicated_learner"
)

// ChampionScore is the quiz score that counts toward QuizChampion.
const ChampionScore = 90

// MasteredLevel is the concept mastery that counts toward ConceptExplorer.
const MasteredLevel = 80

// Achievement is a milestone with a progress counter.
type Achievement struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
	Requirement int        `json:"requirement"`
	Current     int        `json:"current"`
}

// Unlocked reports whether the achievement has been earned.
func (a Achievement) Unlocked() bool { return a.UnlockedAt != nil }

// Defaults returns the built-in achievements, all locked.
func Defaults() []Achievement {
	return []Achievement{
		{ID: FirstUpload, Title: "First Steps", Description: "Upload your first study material", Icon: "upload", Requirement: 1},
		{ID: FlashcardMaster, Title: "Flashcard Master", Description: "Review 100 flashcards", Icon: "layers", Requirement: 100},
		{ID: QuizChampion, Title: "Quiz Champion", Description: "Score 90% or higher on 5 quizzes", Icon: "trophy", Requirement: 5},
		{ID: StreakKeeper, Title: "Streak Keeper", Description: "Study for 7 consecutive days", Icon: "flame", Requirement: 7},
		{ID: ConceptExplorer, Title: "Concept Explorer", Description: "Master 20 concepts", Icon: "lightbulb", Requirement: 20},
		{ID: DedicatedLearner, Title: "Dedicated Learner", Description: "Study for 50 total hours", Icon: "clock", Requirement: 50},
	}
}

// Merge adds any built-in achievement missing from list, keeping the
// stored ones as they are.
func Merge(list []Achievement) []Achievement {
	have := make(map[string]bool, len(list))
	for _, a := range list {
		have[a.ID] = true
	}
	for _, d := range Defaults() {
		if !have[d.ID] {
			list = append(list, d)
		}
	}
	return list
}

// Unlock marks id unlocked at now if it is not already, and bumps its
// counter. It reports whether id exists.
func Unlock(list []Achievement, id string, now time.Time) bool {
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if list[i].UnlockedAt == nil {
			t := now
			list[i].UnlockedAt = &t
		}
		list[i].Current++
		return true
	}
	return false
}

// Facts are the counters achievements are measured against.
type Facts struct {
	Materials          int
	FlashcardsReviewed int
	ChampionQuizzes    int
	StreakDays         int
	MasteredConcepts   int
	StudyMinutes       int
}

func (f Facts) valueFor(id string) (int, bool) {
	switch id {
	case FirstUpload:
		return f.Materials, true
	case FlashcardMaster:
		return f.FlashcardsReviewed, true
	case QuizChampion:
		return f.ChampionQuizzes, true
	case StreakKeeper:
		return f.StreakDays, true
	case ConceptExplorer:
		return f.MasteredConcepts, true
	case DedicatedLearner:
		return f.StudyMinutes / 60, true
	}
	return 0, false
}

// Evaluate refreshes counters from f and unlocks achievements whose
// requirement is met. Unlocked achievements never relock. Returns the
// ids unlocked by this call.
func Evaluate(list []Achievement, f Facts, now time.Time) []string {
	var unlocked []string
	for i := range list {
		v, ok := f.valueFor(list[i].ID)
		if !ok {
			continue
		}
		if list[i].Unlocked() && v < list[i].Current {
			continue
		}
		list[i].Current = v
		if !list[i].Unlocked() && v >= list[i].Requirement {
			t := now
			list[i].UnlockedAt = &t
			unlocked = append(unlocked, list[i].ID)
		}
	}
	return unlocked
}
