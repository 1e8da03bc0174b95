package quiz

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	qz "github.com/abhisek/examprep/internal/quiz"
	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/screen"
	"github.com/abhisek/examprep/internal/ui/components"
	"github.com/abhisek/examprep/internal/ui/layout"
)

// timerTickMsg is sent every second while a timed quiz runs.
type timerTickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

// RunnerScreen asks the questions of one quiz run and shows the result.
type RunnerScreen struct {
	src           Source
	run           *qz.Run
	mc            components.MultiChoice
	mcActive      bool
	input         components.TextInput
	confirmFinish bool
	result        *qz.Result
	saveErr       error
}

var _ screen.Screen = (*RunnerScreen)(nil)
var _ screen.KeyHintProvider = (*RunnerScreen)(nil)
var _ screen.EscapeHandler = (*RunnerScreen)(nil)

// NewRunner creates a runner over a started run.
func NewRunner(src Source, run *qz.Run) *RunnerScreen {
	s := &RunnerScreen{src: src, run: run}
	s.setupQuestion()
	return s
}

func (s *RunnerScreen) Init() tea.Cmd {
	if s.run.Timed() {
		return tea.Batch(tickCmd(), s.input.Init())
	}
	return s.input.Init()
}

func (s *RunnerScreen) Title() string {
	return s.run.Quiz().Title
}

func (s *RunnerScreen) HandlesEscape() bool {
	return s.result == nil
}

func (s *RunnerScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.result != nil:
		return []layout.KeyHint{{Key: "Enter", Description: "Done"}}
	case s.confirmFinish:
		return []layout.KeyHint{
			{Key: "Y", Description: "Finish now"},
			{Key: "N", Description: "Keep going"},
		}
	case s.mcActive && s.mc.Multi:
		return []layout.KeyHint{
			{Key: "Space", Description: "Toggle"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Finish"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Finish"},
	}
}

// setupQuestion prepares the input widget for the current question.
func (s *RunnerScreen) setupQuestion() {
	q, ok := s.run.Current()
	if !ok {
		return
	}
	switch q.Type {
	case qz.TypeMultipleChoice:
		s.mcActive = true
		s.mc = components.NewMultiChoice(q.Options, q.CorrectAnswer.IsMulti())
	case qz.TypeTrueFalse:
		s.mcActive = true
		s.mc = components.NewMultiChoice([]string{"True", "False"}, false)
	default:
		s.mcActive = false
		s.input = components.NewTextInput("Type your answer...", 200)
	}
}

func (s *RunnerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if s.result != nil {
			return s, nil
		}
		res, err := s.run.Tick(time.Second)
		if err != nil {
			return s, nil
		}
		if res != nil {
			s.finish(res)
			return s, nil
		}
		return s, tickCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.result == nil && !s.mcActive {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *RunnerScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.result != nil {
		switch key {
		case "enter", "esc":
			return s, router.Pop()
		}
		return s, nil
	}

	if s.confirmFinish {
		switch key {
		case "y", "Y":
			s.confirmFinish = false
			if res, err := s.run.Finish(); err == nil {
				s.finish(res)
			}
		case "n", "N", "esc":
			s.confirmFinish = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmFinish = true
		return s, nil
	case "enter":
		return s.submit()
	}

	var cmd tea.Cmd
	if s.mcActive {
		s.mc, cmd = s.mc.Update(msg)
	} else {
		s.input, cmd = s.input.Update(msg)
	}
	return s, cmd
}

// submit records the current answer and moves on. Blank answers are
// left unanswered.
func (s *RunnerScreen) submit() (screen.Screen, tea.Cmd) {
	var a qz.Answer
	if s.mcActive {
		chosen := s.mc.Chosen()
		if s.mc.Multi {
			a = qz.Multi(chosen...)
		} else if len(chosen) == 1 {
			a = qz.Single(chosen[0])
		}
	} else if v := s.input.Value(); v != "" {
		a = qz.Single(v)
	}
	if !a.IsZero() {
		if err := s.run.Answer(a); err != nil {
			return s, nil
		}
	}

	res, err := s.run.Next()
	if err != nil {
		return s, nil
	}
	if res != nil {
		s.finish(res)
		return s, nil
	}
	s.setupQuestion()
	if !s.mcActive {
		return s, s.input.Init()
	}
	return s, nil
}

func (s *RunnerScreen) finish(res *qz.Result) {
	s.result = res
	s.saveErr = s.src.RecordQuizResult(context.Background(), *res)
}
