// Package theme holds the palette and the few shared styles of the TUI.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette. Screens pick colors by role, never by hex value.
var (
	Primary   = lipgloss.Color("#6366F1") // indigo: focus, titles
	Secondary = lipgloss.Color("#0EA5E9") // sky: answers, concepts
	Accent    = lipgloss.Color("#F59E0B") // amber: due counts, streak
	Success   = lipgloss.Color("#10B981")
	Error     = lipgloss.Color("#EF4444")
	Text      = lipgloss.Color("#E5E7EB")
	TextDim   = lipgloss.Color("#9CA3AF")
	BgDark    = lipgloss.Color("#111827")
	BgCard    = lipgloss.Color("#1F2937")
	Border    = lipgloss.Color("#374151")
)

var Hint = lipgloss.NewStyle().
	Foreground(TextDim).
	Italic(true)

// Grade styles, one per review outcome.
var (
	Correct   = gradeStyle(Success)
	Medium    = gradeStyle(Accent)
	Incorrect = gradeStyle(Error)
)

func gradeStyle(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

// Flashcard faces. The front is the question, the back the answer.
var (
	CardFront = cardFace(Primary).Bold(true)
	CardBack  = cardFace(Secondary)

	Concept = lipgloss.NewStyle().
		Foreground(Secondary).
		Italic(true)
)

func cardFace(border color.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Foreground(Text).
		Padding(1, 3).
		Align(lipgloss.Center)
}
