// Package progress shows derived scores, study totals and achievements.
package progress

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/achievement"
	prog "github.com/abhisek/examprep/internal/progress"
	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/screen"
	"github.com/abhisek/examprep/internal/stats"
	"github.com/abhisek/examprep/internal/ui/components"
	"github.com/abhisek/examprep/internal/ui/layout"
	"github.com/abhisek/examprep/internal/ui/theme"
)

// Source provides the progress view's data.
type Source interface {
	Stats() stats.Stats
	Progress() prog.Progress
	Achievements() []achievement.Achievement
}

// ProgressScreen is a read-only dashboard.
type ProgressScreen struct {
	src Source
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates a new ProgressScreen.
func New(src Source) *ProgressScreen {
	return &ProgressScreen{src: src}
}

func (s *ProgressScreen) Init() tea.Cmd {
	return nil
}

func (s *ProgressScreen) Title() string {
	return "Progress"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "q" {
		return s, router.Pop()
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	st := s.src.Stats()
	p := s.src.Progress()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(section("Scores", cw))
	for _, row := range []struct {
		label string
		value int
	}{
		{"Confidence ", st.ConfidenceScore},
		{"Readiness  ", st.ReadinessScore},
		{"Consistency", st.ConsistencyScore},
		{"Overall    ", st.OverallProgress},
	} {
		bar := components.NewScoreBar(row.label, row.value, cw)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(section("Study", cw))
	totals := fmt.Sprintf("%d min studied · %d sessions · %d cards · %d quizzes · avg %d%% · ★ %d",
		p.TotalStudyTime, p.SessionsCompleted, p.FlashcardsReviewed, p.QuizzesTaken, p.AverageScore, p.StreakDays)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Render(totals)))
	b.WriteString("\n")
	if len(p.WeakAreas) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).Render("Weak: "+strings.Join(p.WeakAreas, ", "))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(section("Achievements", cw))
	for _, a := range s.src.Achievements() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderAchievement(a, cw)))
		b.WriteString("\n")
	}
	return b.String()
}

func section(title string, cw int) string {
	head := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render(title)
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(cw-lipgloss.Width(title)-1, 0)))
	return lipgloss.NewStyle().Width(cw).Render(head+" "+rule) + "\n"
}

func renderAchievement(a achievement.Achievement, cw int) string {
	if a.Unlocked() {
		line := fmt.Sprintf("✓ %-18s %s", a.Title, a.Description)
		return lipgloss.NewStyle().Width(cw).Foreground(theme.Success).Render(line)
	}
	line := fmt.Sprintf("· %-18s %s (%d/%d)", a.Title, a.Description, min(a.Current, a.Requirement), a.Requirement)
	return lipgloss.NewStyle().Width(cw).Foreground(theme.TextDim).Render(line)
}
