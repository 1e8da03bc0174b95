// Package quiz holds the quiz picker and the quiz runner screens.
package quiz

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/examprep/internal/quiz"
	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/screen"
	"github.com/abhisek/examprep/internal/ui/components"
	"github.com/abhisek/examprep/internal/ui/layout"
	"github.com/abhisek/examprep/internal/ui/theme"
)

// Source lists quizzes, starts runs and records finished ones.
type Source interface {
	Quizzes() []qz.Quiz
	Attempts() []qz.Attempt
	StartQuiz(id string) (*qz.Run, error)
	RecordQuizResult(ctx context.Context, r qz.Result) error
}

// ListScreen lets the learner pick a quiz.
type ListScreen struct {
	src     Source
	quizzes []qz.Quiz
	menu    components.Menu
	errMsg  string
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)
var _ screen.Resumer = (*ListScreen)(nil)

// NewList creates the quiz picker.
func NewList(src Source) *ListScreen {
	s := &ListScreen{src: src}
	s.reload()
	return s
}

// Resume refreshes best scores after a quiz run.
func (s *ListScreen) Resume() tea.Cmd {
	selected := s.menu.Selected
	s.reload()
	if selected >= 0 && selected < len(s.menu.Items) {
		s.menu.Selected = selected
	}
	return nil
}

func (s *ListScreen) reload() {
	s.quizzes = s.src.Quizzes()
	s.errMsg = ""
	best := bestScores(s.src.Attempts())

	items := make([]components.MenuItem, 0, len(s.quizzes))
	for _, q := range s.quizzes {
		id := q.ID
		items = append(items, components.MenuItem{
			Label:  q.Title,
			Detail: describe(q, best[q.ID]),
			Action: func() tea.Cmd {
				return s.start(id)
			},
		})
	}
	s.menu = components.NewMenu(items)
}

func (s *ListScreen) start(id string) tea.Cmd {
	run, err := s.src.StartQuiz(id)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return router.PushScreen(NewRunner(s.src, run))
}

func bestScores(attempts []qz.Attempt) map[string]int {
	best := make(map[string]int)
	for _, a := range attempts {
		if a.Score == nil {
			continue
		}
		if cur, ok := best[a.QuizID]; !ok || *a.Score > cur {
			best[a.QuizID] = *a.Score
		}
	}
	return best
}

func describe(q qz.Quiz, best int) string {
	parts := []string{fmt.Sprintf("%d questions", len(q.Questions))}
	if q.TimeLimit > 0 {
		parts = append(parts, fmt.Sprintf("%d min", q.TimeLimit))
	} else {
		parts = append(parts, "untimed")
	}
	if best > 0 {
		parts = append(parts, fmt.Sprintf("best %d%%", best))
	}
	return strings.Join(parts, " · ")
}

func (s *ListScreen) Init() tea.Cmd {
	return nil
}

func (s *ListScreen) Title() string {
	return "Quizzes"
}

func (s *ListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ListScreen) View(width, height int) string {
	if len(s.quizzes) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Import one with `examprep quiz import <file>`.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.menu.View())
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  " + s.errMsg))
	}
	return b.String()
}
