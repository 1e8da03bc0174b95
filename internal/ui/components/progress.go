package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/ui/theme"
)

// ScoreBar draws a 0-100 score as a horizontal bar. The fill turns amber
// below 70 and red below 40.
type ScoreBar struct {
	Label string
	Score int
	Width int
}

func NewScoreBar(label string, score, width int) ScoreBar {
	return ScoreBar{Label: label, Score: min(max(score, 0), 100), Width: width}
}

func scoreColor(score int) color.Color {
	switch {
	case score < 40:
		return theme.Error
	case score < 70:
		return theme.Accent
	}
	return theme.Success
}

func (p ScoreBar) View() string {
	label := ""
	if p.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	pct := fmt.Sprintf("  %3d%%", p.Score)

	bar := max(p.Width-lipgloss.Width(label)-len(pct), 4)
	filled := bar * p.Score / 100

	return label +
		lipgloss.NewStyle().Background(scoreColor(p.Score)).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", bar-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(pct)
}
