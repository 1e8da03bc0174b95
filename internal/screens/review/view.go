package review

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/ui/theme"
)

func (s *ReviewScreen) renderCard(width int) string {
	card, ok := s.review.Current()
	if !ok {
		return ""
	}
	pos, total := s.review.Position()
	correct, incorrect := s.review.Tally()

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Card %d/%d", pos+1, total))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d  %s %d",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			correct,
			lipgloss.NewStyle().Foreground(theme.Error).Render("✗"),
			incorrect,
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	cardWidth := min(width-8, 70)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.CardFront.Width(cardWidth).Render(card.Front)))
	b.WriteString("\n")

	if s.flipped {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.CardBack.Width(cardWidth).Render(card.Back)))
		b.WriteString("\n\n")
		grades := fmt.Sprintf("%s   %s   %s",
			theme.Incorrect.Render("1 Hard"),
			theme.Medium.Render("2 Medium"),
			theme.Correct.Render("3 Easy"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, grades))
	} else {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("Press space to show the answer")))
	}

	if card.Difficulty != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Concept.Render(string(card.Difficulty))))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render("Could not save: "+s.errMsg)))
	}
	return b.String()
}

func renderMessage(width int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Italic(true).
		Render("\n\n" + msg)
}

func renderError(width int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("\n\nError: " + msg + "\n\nPress Esc to go back.")
}

func renderQuitConfirm(width, height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 3).
		Render("End this review session?\n\nCards you already graded keep their schedule.\n\n[Y] End   [N] Keep going")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
