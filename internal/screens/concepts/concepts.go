// Package concepts lists concepts grouped by the material they came from
// and lets the learner rate their mastery.
package concepts

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/flashcard"
	"github.com/abhisek/examprep/internal/material"
	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/screen"
	"github.com/abhisek/examprep/internal/ui/layout"
	"github.com/abhisek/examprep/internal/ui/theme"
)

// MasteryStep is how much one +/- press moves a mastery level.
const MasteryStep = 10

// Source provides concepts and records mastery changes.
type Source interface {
	Materials() []material.Material
	Concepts() []material.Concept
	Flashcards() []flashcard.Flashcard
	UpdateConceptMastery(ctx context.Context, id string, level int) error
}

type rowKind int

const (
	rowMaterialHeader rowKind = iota
	rowConcept
)

type row struct {
	kind     rowKind
	material string
	concept  *material.Concept
}

// ConceptsScreen displays concepts organized by material.
type ConceptsScreen struct {
	src          Source
	rows         []row
	cursor       int
	scrollOffset int
	errMsg       string
}

var _ screen.Screen = (*ConceptsScreen)(nil)
var _ screen.KeyHintProvider = (*ConceptsScreen)(nil)

// New creates a new ConceptsScreen.
func New(src Source) *ConceptsScreen {
	s := &ConceptsScreen{src: src}
	s.load()
	for i, r := range s.rows {
		if r.kind == rowConcept {
			s.cursor = i
			break
		}
	}
	return s
}

// load rebuilds rows from the source, keeping material order.
func (s *ConceptsScreen) load() {
	byMaterial := make(map[string][]material.Concept)
	for _, c := range s.src.Concepts() {
		byMaterial[c.MaterialID] = append(byMaterial[c.MaterialID], c)
	}

	var rows []row
	add := func(name string, concepts []material.Concept) {
		if len(concepts) == 0 {
			return
		}
		rows = append(rows, row{kind: rowMaterialHeader, material: name})
		for i := range concepts {
			rows = append(rows, row{kind: rowConcept, material: name, concept: &concepts[i]})
		}
	}
	for _, m := range s.src.Materials() {
		add(m.Name, byMaterial[m.ID])
		delete(byMaterial, m.ID)
	}
	var orphans []material.Concept
	for _, cs := range byMaterial {
		orphans = append(orphans, cs...)
	}
	add("Other", orphans)
	s.rows = rows
}

func (s *ConceptsScreen) Init() tea.Cmd {
	return nil
}

func (s *ConceptsScreen) Title() string {
	return "Concepts"
}

// KeyHints returns the key binding hints for the footer.
func (s *ConceptsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Material"},
		{Key: "+/-", Description: "Mastery"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ConceptsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "tab":
			s.nextMaterial()
		case "+", "=", "right", "l":
			s.adjustMastery(MasteryStep)
		case "-", "left", "h":
			s.adjustMastery(-MasteryStep)
		case "enter":
			return s, s.selectConcept()
		case "q":
			return s, router.Pop()
		}
	}
	return s, nil
}

func (s *ConceptsScreen) current() *material.Concept {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return nil
	}
	return s.rows[s.cursor].concept
}

// moveCursor moves the cursor by delta, skipping material headers.
func (s *ConceptsScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowConcept {
			s.cursor = next
			return
		}
		next += delta
	}
}

// nextMaterial jumps to the first concept of the next material, wrapping.
func (s *ConceptsScreen) nextMaterial() {
	if len(s.rows) == 0 {
		return
	}
	cur := s.rows[s.cursor].material
	for i := s.cursor + 1; i < len(s.rows); i++ {
		if s.rows[i].kind == rowConcept && s.rows[i].material != cur {
			s.cursor = i
			return
		}
	}
	for i, r := range s.rows {
		if r.kind == rowConcept {
			s.cursor = i
			return
		}
	}
}

func (s *ConceptsScreen) adjustMastery(delta int) {
	c := s.current()
	if c == nil {
		return
	}
	level := min(max(c.MasteryLevel+delta, 0), 100)
	if err := s.src.UpdateConceptMastery(context.Background(), c.ID, level); err != nil {
		s.errMsg = err.Error()
		return
	}
	s.errMsg = ""
	c.MasteryLevel = level
}

func (s *ConceptsScreen) selectConcept() tea.Cmd {
	c := s.current()
	if c == nil {
		return nil
	}
	titles := make(map[string]string)
	for _, r := range s.rows {
		if r.concept != nil {
			titles[r.concept.ID] = r.concept.Title
		}
	}
	cards := 0
	for _, f := range s.src.Flashcards() {
		if f.ConceptID == c.ID {
			cards++
		}
	}
	return router.PushScreen(newDetail(*c, titles, cards))
}

// adjustScroll ensures the cursor is visible within the viewport.
func (s *ConceptsScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowMaterialHeader {
		headerRow--
	}
	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *ConceptsScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No concepts yet. Import a deck with `examprep import <path>`.")
	}

	listHeight := height
	if s.errMsg != "" {
		listHeight--
	}
	s.adjustScroll(listHeight)

	var lines []string
	for i, r := range s.rows {
		if i < s.scrollOffset {
			continue
		}
		if len(lines) >= listHeight {
			break
		}
		switch r.kind {
		case rowMaterialHeader:
			lines = append(lines, renderMaterialHeader(r.material, width))
		case rowConcept:
			lines = append(lines, renderConceptRow(*r.concept, i == s.cursor, width))
		}
	}
	if s.errMsg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Error).Render("  "+s.errMsg))
	}
	return strings.Join(lines, "\n")
}

func renderMaterialHeader(name string, width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(0, 0, 0, 2).
		Render(strings.ToUpper(name))
}

// renderConceptRow renders a concept with a ten-cell mastery gauge.
func renderConceptRow(c material.Concept, selected bool, width int) string {
	gauge := strings.Repeat("█", c.MasteryLevel/10) + strings.Repeat("░", 10-c.MasteryLevel/10)

	nameWidth := max(width-4-2-10-6-10, 10)
	name := c.Title
	if len([]rune(name)) > nameWidth {
		name = string([]rune(name)[:nameWidth-1]) + "…"
	}

	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	gaugeStyle := lipgloss.NewStyle().Foreground(theme.Secondary)
	switch {
	case selected:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		gaugeStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	case c.MasteryLevel >= 80:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Success)
		gaugeStyle = lipgloss.NewStyle().Foreground(theme.Success)
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}
	return fmt.Sprintf("  %s%s  %s %4d%%",
		cursor,
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		gaugeStyle.Render(gauge),
		c.MasteryLevel,
	)
}
