// Package plan manages exam study plans made of dated daily goals.
package plan

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultEstimatedHours is used when a plan is created without an estimate.
const DefaultEstimatedHours = 100

// ErrTaskNotFound is returned when a task id does not exist in a plan.
var ErrTaskNotFound = errors.New("task not found")

var validate = validator.New(validator.WithRequiredStructEnabled())

// TaskType classifies a planned task.
type TaskType string

const (
	TaskFlashcardReview TaskType = "flashcard_review"
	TaskQuizPractice    TaskType = "quiz_practice"
	TaskConceptStudy    TaskType = "concept_study"
	TaskMaterialReading TaskType = "material_reading"
)

// Task is one planned activity. EstimatedTime is in minutes.
type Task struct {
	ID            string   `json:"id" validate:"required"`
	Title         string   `json:"title" validate:"required"`
	Type          TaskType `json:"type" validate:"oneof=flashcard_review quiz_practice concept_study material_reading"`
	ConceptIDs    []string `json:"concept_ids"`
	EstimatedTime int      `json:"estimated_time" validate:"gte=0"`
	Completed     bool     `json:"completed"`
}

// DailyGoal groups the tasks planned for one calendar day.
type DailyGoal struct {
	Date      time.Time `json:"date"`
	Tasks     []Task    `json:"tasks"`
	Completed bool      `json:"completed"`
}

// StudyPlan is a plan leading up to an exam.
type StudyPlan struct {
	ID             string      `json:"id" validate:"required"`
	Title          string      `json:"title" validate:"required"`
	Description    string      `json:"description"`
	StartDate      time.Time   `json:"start_date"`
	EndDate        time.Time   `json:"end_date"`
	ExamDate       *time.Time  `json:"exam_date,omitempty" validate:"required"`
	DailyGoals     []DailyGoal `json:"daily_goals"`
	Topics         []string    `json:"topics"`
	EstimatedHours int         `json:"estimated_hours" validate:"gt=0"`
}

// New creates a plan starting at now and ending on the exam date.
// A non-positive hours estimate becomes DefaultEstimatedHours.
func New(id, title, description string, examDate time.Time, hours int, now time.Time) (StudyPlan, error) {
	if hours <= 0 {
		hours = DefaultEstimatedHours
	}
	var exam *time.Time
	if !examDate.IsZero() {
		exam = &examDate
	}
	p := StudyPlan{
		ID:             id,
		Title:          title,
		Description:    description,
		StartDate:      now,
		EndDate:        examDate,
		ExamDate:       exam,
		DailyGoals:     []DailyGoal{},
		Topics:         []string{},
		EstimatedHours: hours,
	}
	if err := validate.Struct(p); err != nil {
		return StudyPlan{}, fmt.Errorf("validate plan: %w", err)
	}
	return p, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// GoalOn returns the daily goal for date's calendar day.
func (p *StudyPlan) GoalOn(date time.Time) (*DailyGoal, bool) {
	for i := range p.DailyGoals {
		if sameDay(date, p.DailyGoals[i].Date) {
			return &p.DailyGoals[i], true
		}
	}
	return nil, false
}

// AddTask appends task to date's goal, creating the goal if needed.
func (p *StudyPlan) AddTask(date time.Time, task Task) error {
	if err := validate.Struct(task); err != nil {
		return fmt.Errorf("validate task: %w", err)
	}
	g, ok := p.GoalOn(date)
	if !ok {
		p.DailyGoals = append(p.DailyGoals, DailyGoal{Date: date})
		g = &p.DailyGoals[len(p.DailyGoals)-1]
	}
	g.Tasks = append(g.Tasks, task)
	g.Completed = allDone(g.Tasks)
	return nil
}

// SetTaskCompleted marks a task done or not done and refreshes its
// goal's Completed flag.
func (p *StudyPlan) SetTaskCompleted(taskID string, done bool) error {
	for gi := range p.DailyGoals {
		g := &p.DailyGoals[gi]
		for ti := range g.Tasks {
			if g.Tasks[ti].ID != taskID {
				continue
			}
			g.Tasks[ti].Completed = done
			g.Completed = allDone(g.Tasks)
			return nil
		}
	}
	return fmt.Errorf("%s: %w", taskID, ErrTaskNotFound)
}

func allDone(tasks []Task) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

// DayProgress returns the percentage of tasks completed, 0 for none.
func DayProgress(tasks []Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(tasks)) * 100))
}

// OverallProgress returns the percentage of all plan tasks completed.
func (p *StudyPlan) OverallProgress() int {
	var all []Task
	for _, g := range p.DailyGoals {
		all = append(all, g.Tasks...)
	}
	return DayProgress(all)
}

// DaysLeft returns the whole days until the exam, rounded up. The second
// result is false when the plan has no exam date.
func (p *StudyPlan) DaysLeft(now time.Time) (int, bool) {
	if p.ExamDate == nil {
		return 0, false
	}
	days := p.ExamDate.Sub(now).Hours() / 24
	return int(math.Ceil(days)), true
}
