// Package review is the flashcard review screen.
package review

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examprep/internal/flashcard"
	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/screen"
	"github.com/abhisek/examprep/internal/screens/summary"
	"github.com/abhisek/examprep/internal/session"
	"github.com/abhisek/examprep/internal/ui/layout"
)

// Source starts review sessions over the cards due now.
type Source interface {
	StartReview() (*session.Review, error)
}

type reviewStartedMsg struct {
	Review *session.Review
	Err    error
}

// ReviewScreen walks through due cards: flip, then grade.
type ReviewScreen struct {
	src         Source
	review      *session.Review
	flipped     bool
	confirmQuit bool
	empty       bool
	errMsg      string
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)
var _ screen.EscapeHandler = (*ReviewScreen)(nil)

// New creates a review screen. The session starts on Init.
func New(src Source) *ReviewScreen {
	return &ReviewScreen{src: src}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return func() tea.Msg {
		r, err := s.src.StartReview()
		return reviewStartedMsg{Review: r, Err: err}
	}
}

func (s *ReviewScreen) Title() string {
	return "Review"
}

func (s *ReviewScreen) HandlesEscape() bool {
	return s.active()
}

func (s *ReviewScreen) active() bool {
	return s.review != nil && s.review.Phase() == session.PhaseActive
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	switch {
	case !s.active():
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case s.flipped:
		return []layout.KeyHint{
			{Key: "1", Description: "Hard"},
			{Key: "2", Description: "Medium"},
			{Key: "3", Description: "Easy"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Flip"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reviewStartedMsg:
		switch {
		case errors.Is(msg.Err, session.ErrEmptyQueue):
			s.empty = true
		case msg.Err != nil:
			s.errMsg = msg.Err.Error()
		default:
			s.review = msg.Review
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ReviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if !s.active() {
		switch key {
		case "esc", "enter", "q":
			return s, router.Pop()
		}
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			// Cards already graded keep their new schedule.
			s.review.Reset()
			return s, router.Pop()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "space", "enter":
		s.flipped = !s.flipped
		return s, nil
	}

	if !s.flipped {
		return s, nil
	}
	switch key {
	case "1":
		return s.grade(flashcard.OutcomeHard)
	case "2":
		return s.grade(flashcard.OutcomeMedium)
	case "3":
		return s.grade(flashcard.OutcomeEasy)
	}
	return s, nil
}

func (s *ReviewScreen) grade(outcome flashcard.Outcome) (screen.Screen, tea.Cmd) {
	_, err := s.review.Answer(context.Background(), outcome)
	if err != nil {
		s.errMsg = err.Error()
	} else {
		s.errMsg = ""
	}

	if s.review.Phase() == session.PhaseComplete {
		sum, _ := s.review.Summary()
		return s, router.ReplaceScreen(summary.New(sum, err))
	}
	if err == nil {
		s.flipped = false
	}
	return s, nil
}

func (s *ReviewScreen) View(width, height int) string {
	switch {
	case s.empty:
		return renderMessage(width, "No cards are due right now. Come back later!")
	case s.review == nil && s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.review == nil:
		return renderMessage(width, "Loading cards...")
	case s.confirmQuit:
		return renderQuitConfirm(width, height)
	}
	return s.renderCard(width)
}
