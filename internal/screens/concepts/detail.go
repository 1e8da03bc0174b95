package concepts

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/material"
	"github.com/abhisek/examprep/internal/screen"
	"github.com/abhisek/examprep/internal/ui/layout"
	"github.com/abhisek/examprep/internal/ui/theme"
)

// DetailScreen shows one concept.
type DetailScreen struct {
	concept material.Concept
	titles  map[string]string
	cards   int
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

func newDetail(c material.Concept, titles map[string]string, cards int) *DetailScreen {
	return &DetailScreen{concept: c, titles: titles, cards: cards}
}

func (d *DetailScreen) Init() tea.Cmd { return nil }
func (d *DetailScreen) Title() string { return d.concept.Title }

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return d, nil
}

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DetailScreen) View(width, height int) string {
	c := d.concept
	contentWidth := min(width-8, 70)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  " + c.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %s · mastery %d%% · %d cards", c.Difficulty, c.MasteryLevel, d.cards)))
	b.WriteString("\n\n")

	if c.Description != "" {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Text).
			Width(contentWidth).
			PaddingLeft(2).
			Render(c.Description))
		b.WriteString("\n\n")
	}

	if len(c.RelatedConcepts) > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  Related"))
		b.WriteString("\n")
		for _, id := range c.RelatedConcepts {
			title := d.titles[id]
			if title == "" {
				title = id
			}
			b.WriteString("    · " + title + "\n")
		}
	}
	return b.String()
}
