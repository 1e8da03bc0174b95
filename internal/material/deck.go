package material

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/abhisek/examprep/internal/flashcard"
)

const (
	questionPrefix   = "Q:"
	answerPrefix     = "A:"
	difficultyPrefix = "D:"
)

// preambleLevel ranks cards before the first heading below every heading,
// so no heading treats the preamble concept as its parent.
const preambleLevel = 7

var md = goldmark.New()

type field int

const (
	seeking field = iota
	readingQuestion
	readingAnswer
)

type pendingCard struct {
	front      []string
	back       []string
	difficulty flashcard.Difficulty
}

type pendingConcept struct {
	concept Concept
	level   int
	parent  int
	cards   []flashcard.Flashcard
}

// deckBuilder collects concepts and cards while walking the document.
type deckBuilder struct {
	newID    func() string
	material *Material
	concepts []*pendingConcept
	card     *pendingCard
	state    field
	err      error
}

// ParseDeck parses a markdown study deck.
//
// Each heading opens a concept; a deeper heading is related to the
// nearest shallower one. The first plain paragraph under a heading is the
// concept description. Lines starting with Q: and A: form flashcards and
// an optional D: line sets the card difficulty. An answer runs until the
// next question or heading. Cards before any heading belong to a concept
// named after the material. A concept with a description and no cards
// gets a generated "What is <title>?" card.
func ParseDeck(name string, src []byte, newID func() string, now time.Time) (Deck, error) {
	m := Material{
		ID:         newID(),
		Name:       name,
		Type:       TypeText,
		Content:    string(src),
		UploadedAt: now,
		Size:       int64(len(src)),
		ConceptIDs: []string{},
	}
	b := &deckBuilder{newID: newID, material: &m}

	doc := md.Parser().Parse(text.NewReader(src))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			b.finishCard()
			b.openConcept(linesOf(node, src)[0], node.Level)
		case *ast.Paragraph:
			b.paragraph(linesOf(node, src))
		case *ast.ThematicBreak:
			b.finishCard()
		}
		if b.err != nil {
			return Deck{}, b.err
		}
	}
	b.finishCard()
	if b.err != nil {
		return Deck{}, b.err
	}

	return b.deck(), nil
}

func linesOf(n ast.Node, src []byte) []string {
	segs := n.Lines()
	out := make([]string, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		out = append(out, string(bytes.TrimRight(seg.Value(src), "\r\n")))
	}
	if len(out) == 0 {
		out = append(out, "")
	}
	return out
}

func (b *deckBuilder) openConcept(title string, level int) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = b.material.Name
	}
	parent := -1
	for i := len(b.concepts) - 1; i >= 0; i-- {
		if b.concepts[i].level < level {
			parent = i
			break
		}
	}
	b.concepts = append(b.concepts, &pendingConcept{
		concept: Concept{
			ID:              b.newID(),
			MaterialID:      b.material.ID,
			Title:           title,
			Difficulty:      flashcard.DifficultyMedium,
			RelatedConcepts: []string{},
		},
		level:  level,
		parent: parent,
	})
	b.state = seeking
}

func (b *deckBuilder) current() *pendingConcept {
	if len(b.concepts) == 0 {
		b.openConcept(b.material.Name, preambleLevel)
	}
	return b.concepts[len(b.concepts)-1]
}

func (b *deckBuilder) paragraph(lines []string) {
	first := strings.TrimSpace(lines[0])
	isCardLine := strings.HasPrefix(first, questionPrefix) ||
		strings.HasPrefix(first, answerPrefix) ||
		strings.HasPrefix(first, difficultyPrefix)

	if !isCardLine && b.state == seeking {
		c := b.current()
		if c.concept.Description == "" && len(c.cards) == 0 {
			c.concept.Description = strings.TrimSpace(strings.Join(lines, "\n"))
		}
		return
	}

	if !isCardLine && b.card != nil {
		// A blank line inside a card keeps the paragraph break.
		b.appendLine("")
	}
	for _, line := range lines {
		b.line(line)
		if b.err != nil {
			return
		}
	}
}

func trimPrefix(line, prefix string) string {
	return strings.TrimPrefix(strings.TrimPrefix(line, prefix), " ")
}

func (b *deckBuilder) line(line string) {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, questionPrefix):
		b.finishCard()
		b.card = &pendingCard{front: []string{trimPrefix(trimmed, questionPrefix)}}
		b.state = readingQuestion
	case strings.HasPrefix(trimmed, answerPrefix) && b.card != nil:
		b.card.back = append(b.card.back, trimPrefix(trimmed, answerPrefix))
		b.state = readingAnswer
	case strings.HasPrefix(trimmed, difficultyPrefix) && b.card != nil:
		d, err := flashcard.ParseDifficulty(trimPrefix(trimmed, difficultyPrefix))
		if err != nil {
			b.err = fmt.Errorf("card %q: %w", strings.Join(b.card.front, " "), err)
			return
		}
		b.card.difficulty = d
	default:
		b.appendLine(line)
	}
}

func (b *deckBuilder) appendLine(line string) {
	if b.card == nil {
		return
	}
	switch b.state {
	case readingQuestion:
		b.card.front = append(b.card.front, line)
	case readingAnswer:
		b.card.back = append(b.card.back, line)
	}
}

func (b *deckBuilder) finishCard() {
	defer func() {
		b.card = nil
		b.state = seeking
	}()
	if b.card == nil {
		return
	}
	front := strings.TrimSpace(strings.Join(b.card.front, "\n"))
	back := strings.TrimSpace(strings.Join(b.card.back, "\n"))
	if front == "" || back == "" {
		return
	}
	diff := b.card.difficulty
	if diff == "" {
		diff = flashcard.DifficultyMedium
	}
	c := b.current()
	c.cards = append(c.cards, flashcard.Flashcard{
		ID:         CardID(front, back, c.concept.Title),
		ConceptID:  c.concept.ID,
		Front:      front,
		Back:       back,
		Difficulty: diff,
	})
}

var difficultyRank = map[flashcard.Difficulty]int{
	flashcard.DifficultyEasy:   0,
	flashcard.DifficultyMedium: 1,
	flashcard.DifficultyHard:   2,
}

func (b *deckBuilder) deck() Deck {
	d := Deck{Material: *b.material}

	kept := make([]bool, len(b.concepts))
	for i, pc := range b.concepts {
		if len(pc.cards) == 0 && pc.concept.Description != "" {
			front := fmt.Sprintf("What is %s?", pc.concept.Title)
			pc.cards = append(pc.cards, flashcard.Flashcard{
				ID:         CardID(front, pc.concept.Description, pc.concept.Title),
				ConceptID:  pc.concept.ID,
				Front:      front,
				Back:       pc.concept.Description,
				Difficulty: flashcard.DifficultyMedium,
			})
		}
		kept[i] = len(pc.cards) > 0
	}

	for i, pc := range b.concepts {
		if !kept[i] || pc.parent < 0 || !kept[pc.parent] {
			continue
		}
		parent := b.concepts[pc.parent]
		parent.concept.RelatedConcepts = append(parent.concept.RelatedConcepts, pc.concept.ID)
		pc.concept.RelatedConcepts = append(pc.concept.RelatedConcepts, parent.concept.ID)
	}

	for i, pc := range b.concepts {
		if !kept[i] {
			continue
		}
		hardest := flashcard.DifficultyEasy
		for _, c := range pc.cards {
			if difficultyRank[c.Difficulty] > difficultyRank[hardest] {
				hardest = c.Difficulty
			}
		}
		pc.concept.Difficulty = hardest

		d.Concepts = append(d.Concepts, pc.concept)
		d.Cards = append(d.Cards, pc.cards...)
		d.Material.ConceptIDs = append(d.Material.ConceptIDs, pc.concept.ID)
	}
	return d
}
