package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/ui/theme"
)

func (s *RunnerScreen) View(width, height int) string {
	if s.result != nil {
		return s.renderResult(width)
	}
	if s.confirmFinish {
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(1, 3).
			Render("Finish the quiz now?\n\nUnanswered questions count as wrong.\n\n[Y] Finish   [N] Keep going")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
	}
	return s.renderQuestion(width)
}

func (s *RunnerScreen) renderQuestion(width int) string {
	q, ok := s.run.Current()
	if !ok {
		return ""
	}

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d/%d", s.run.Index()+1, s.run.Len()))

	timer := "untimed"
	if s.run.Timed() {
		remaining := s.run.Remaining()
		timer = fmt.Sprintf("%d:%02d", int(remaining.Minutes()), int(remaining.Seconds())%60)
	}
	infoRight := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		lipgloss.NewStyle().Foreground(theme.Accent).Render("T") + " " + timer)

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt))
	b.WriteString("\n\n")

	if s.mcActive {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
		hint := "Select (1-9) or use arrows + Enter"
		if s.mc.Multi {
			hint = "Toggle with space or 1-9, then Enter"
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(hint)))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Answer: "+s.input.View()))
	}
	return b.String()
}

func (s *RunnerScreen) renderResult(width int) string {
	res := s.result
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("Score: %d%%", res.Grade.Score)))
	b.WriteString("\n\n")

	spent := res.Attempt.TimeSpent
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d of %d correct in %d:%02d", res.Grade.Correct, res.Grade.Total, spent/60, spent%60)))
	b.WriteString("\n\n")

	for _, q := range s.run.Quiz().Questions {
		given := res.Attempt.Answers[q.ID]
		mark := theme.Correct.Render("✓")
		if !q.CorrectAnswer.Matches(given) {
			mark = theme.Incorrect.Render("✗")
		}
		line := fmt.Sprintf("%s %s", mark, q.Prompt)
		b.WriteString("  " + line + "\n")
		if !q.CorrectAnswer.Matches(given) {
			b.WriteString(theme.Hint.Render(fmt.Sprintf("      answer: %s", q.CorrectAnswer.String())) + "\n")
			if q.Explanation != "" {
				b.WriteString(theme.Hint.Render("      "+q.Explanation) + "\n")
			}
		}
	}

	if len(res.Grade.Weak) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(
			"  Focus next on: " + strings.Join(res.Grade.Weak, ", ")))
		b.WriteString("\n")
	}

	if s.saveErr != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(
			"  Result could not be saved: " + s.saveErr.Error()))
	}
	return b.String()
}
