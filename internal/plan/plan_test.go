package plan

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	exam := now.AddDate(0, 0, 30)
	p, err := New("p1", "Finals", "all subjects", exam, 0, now)
	require.NoError(t, err)
	assert.Equal(t, DefaultEstimatedHours, p.EstimatedHours)
	assert.Equal(t, now, p.StartDate)
	assert.Equal(t, exam, p.EndDate)
	require.NotNil(t, p.ExamDate)
	assert.Empty(t, p.DailyGoals)

	_, err = New("p2", "", "", exam, 10, now)
	assert.Error(t, err, "title is required")

	_, err = New("p3", "No exam", "", time.Time{}, 10, now)
	assert.Error(t, err, "exam date is required")
}

func TestAddTaskAndProgress(t *testing.T) {
	p, err := New("p1", "Finals", "", now.AddDate(0, 0, 10), 40, now)
	require.NoError(t, err)

	day1 := now
	day2 := now.AddDate(0, 0, 1)
	require.NoError(t, p.AddTask(day1, Task{ID: "t1", Title: "Cards", Type: TaskFlashcardReview, EstimatedTime: 30}))
	require.NoError(t, p.AddTask(day1.Add(3*time.Hour), Task{ID: "t2", Title: "Quiz", Type: TaskQuizPractice}))
	require.NoError(t, p.AddTask(day2, Task{ID: "t3", Title: "Read", Type: TaskMaterialReading}))
	require.Len(t, p.DailyGoals, 2)

	err = p.AddTask(day2, Task{ID: "t4", Title: "Bad", Type: "nap"})
	assert.Error(t, err)

	require.NoError(t, p.SetTaskCompleted("t1", true))
	g, ok := p.GoalOn(day1)
	require.True(t, ok)
	assert.Equal(t, 50, DayProgress(g.Tasks))
	assert.False(t, g.Completed)
	assert.Equal(t, 33, p.OverallProgress())

	require.NoError(t, p.SetTaskCompleted("t2", true))
	g, _ = p.GoalOn(day1)
	assert.True(t, g.Completed)

	require.NoError(t, p.SetTaskCompleted("t2", false))
	g, _ = p.GoalOn(day1)
	assert.False(t, g.Completed)

	err = p.SetTaskCompleted("missing", true)
	assert.True(t, errors.Is(err, ErrTaskNotFound))
}

func TestDayProgress_Empty(t *testing.T) {
	assert.Equal(t, 0, DayProgress(nil))
	var p StudyPlan
	assert.Equal(t, 0, p.OverallProgress())
}

func TestDaysLeft(t *testing.T) {
	tests := []struct {
		name string
		exam time.Time
		want int
	}{
		{"exact days", now.AddDate(0, 0, 5), 5},
		{"partial day rounds up", now.Add(30 * time.Hour), 2},
		{"passed", now.Add(-36 * time.Hour), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exam := tt.exam
			p := StudyPlan{ExamDate: &exam}
			got, ok := p.DaysLeft(now)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	var none StudyPlan
	_, ok := none.DaysLeft(now)
	assert.False(t, ok)
}
