// Package router keeps the stack of TUI screens. Screens navigate by
// returning the commands below; the router applies them on the next
// Update.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examprep/internal/screen"
)

type (
	PushScreenMsg    struct{ Screen screen.Screen }
	ReplaceScreenMsg struct{ Screen screen.Screen }
	PopScreenMsg     struct{}
	PopToRootMsg     struct{}
)

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// PushScreen opens s on top of the active screen.
func PushScreen(s screen.Screen) tea.Cmd { return emit(PushScreenMsg{Screen: s}) }

// ReplaceScreen swaps the active screen for s, e.g. a finished review for
// its summary, so that going back skips the finished screen.
func ReplaceScreen(s screen.Screen) tea.Cmd { return emit(ReplaceScreenMsg{Screen: s}) }

// Pop goes back one screen.
func Pop() tea.Cmd { return emit(PopScreenMsg{}) }

// PopToRoot goes back to the home screen.
func PopToRoot() tea.Cmd { return emit(PopToRootMsg{}) }

// Router is a stack of screens that never becomes empty.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push adds s on top and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Replace swaps the top screen for s and runs its Init.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Pop removes the top screen unless it is the root.
func (r *Router) Pop() tea.Cmd {
	return r.truncate(len(r.stack) - 1)
}

// PopToRoot removes everything above the root.
func (r *Router) PopToRoot() tea.Cmd {
	return r.truncate(1)
}

// truncate shrinks the stack to depth n (at least 1) and resumes the
// uncovered screen.
func (r *Router) truncate(n int) tea.Cmd {
	if n < 1 || n >= len(r.stack) {
		return nil
	}
	clear(r.stack[n:])
	r.stack = r.stack[:n]
	if res, ok := r.Active().(screen.Resumer); ok {
		return res.Resume()
	}
	return nil
}

func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int {
	return len(r.stack)
}

// Trail returns the screen titles from the root to the active screen.
func (r *Router) Trail() []string {
	titles := make([]string, len(r.stack))
	for i, s := range r.stack {
		titles[i] = s.Title()
	}
	return titles
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case PopToRootMsg:
		return r.PopToRoot()
	}

	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
