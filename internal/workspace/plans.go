package workspace

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/abhisek/examprep/internal/plan"
	"github.com/abhisek/examprep/internal/store"
)

// CreateStudyPlan builds and stores a new plan for an exam.
func (w *Workspace) CreateStudyPlan(ctx context.Context, title, description string, examDate time.Time, hours int) (plan.StudyPlan, error) {
	p, err := plan.New(w.newID(), title, description, examDate, hours, w.clock.Now())
	if err != nil {
		return plan.StudyPlan{}, err
	}
	err = w.mutate(ctx, "add_plan", func(d *store.StateData) (bool, error) {
		d.StudyPlans = append(d.StudyPlans, p)
		return false, nil
	})
	return p, err
}

// StudyPlans returns all plans.
func (w *Workspace) StudyPlans() []plan.StudyPlan {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]plan.StudyPlan{}, w.data.StudyPlans...)
}

func findPlan(d *store.StateData, id string) (*plan.StudyPlan, error) {
	i := slices.IndexFunc(d.StudyPlans, func(p plan.StudyPlan) bool { return p.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("study plan %s: %w", id, ErrNotFound)
	}
	return &d.StudyPlans[i], nil
}

// AddPlanTask schedules a task on a plan day. A missing task id is generated.
func (w *Workspace) AddPlanTask(ctx context.Context, planID string, date time.Time, task plan.Task) (plan.Task, error) {
	if task.ID == "" {
		task.ID = w.newID()
	}
	err := w.mutate(ctx, "add_task", func(d *store.StateData) (bool, error) {
		p, err := findPlan(d, planID)
		if err != nil {
			return false, err
		}
		return false, p.AddTask(date, task)
	})
	return task, err
}

// SetTaskCompleted marks a plan task done or not done.
func (w *Workspace) SetTaskCompleted(ctx context.Context, planID, taskID string, done bool) error {
	return w.mutate(ctx, "complete_task", func(d *store.StateData) (bool, error) {
		p, err := findPlan(d, planID)
		if err != nil {
			return false, err
		}
		return false, p.SetTaskCompleted(taskID, done)
	})
}
