// Package layout draws the chrome around the active screen: a header with
// the navigation trail and study counters, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/ui/theme"
)

const (
	MinWidth  = 72
	MinHeight = 20
)

// KeyHint is a key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Window is %d×%d.\nExamprep needs at least %d×%d.",
			width, height, MinWidth, MinHeight))
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// spread lays out left, middle and right across width, keeping the middle
// centred when there is room.
func spread(width int, left, middle, right string) string {
	lw, mw, rw := lipgloss.Width(left), lipgloss.Width(middle), lipgloss.Width(right)
	gapL := max((width-mw)/2-lw, 1)
	gapR := max(width-lw-gapL-mw-rw, 1)
	return left + strings.Repeat(" ", gapL) + middle + strings.Repeat(" ", gapR) + right
}

// RenderHeader shows the trail of open screens, the number of cards due
// and the study streak.
func RenderHeader(trail []string, due, streak, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" Examprep")

	crumbs := make([]string, len(trail))
	for i, t := range trail {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == len(trail)-1 {
			style = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
		}
		crumbs[i] = style.Render(t)
	}
	middle := strings.Join(crumbs, lipgloss.NewStyle().Foreground(theme.Border).Render(" › "))

	counters := lipgloss.NewStyle().Foreground(theme.Accent)
	right := counters.Render(fmt.Sprintf("▤ %d due", due)) + "   " +
		counters.Render("★ "+pluralDays(streak)) + " "

	return bar.Width(width).Render(spread(max(width-4, 0), brand, middle, right))
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// RenderFooter lists key hints on one line.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar.Width(width).Render(" " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer, giving the content
// whatever height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	body := lipgloss.NewStyle().
		Width(width).
		Height(ContentHeight(header, footer, height)).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// ContentHeight is the height left for the active screen.
func ContentHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}
