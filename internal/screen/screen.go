// Package screen defines the contract between the router and the
// individual TUI screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examprep/internal/ui/layout"
)

// Screen is one page of the TUI. View receives the space left between
// the header and the footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that use Esc themselves, for
// example to confirm before abandoning a review. While HandlesEscape
// reports true the app forwards Esc instead of going back.
type EscapeHandler interface {
	HandlesEscape() bool
}

// Resumer is implemented by screens that cache workspace data. Resume is
// called when the screen becomes active again because the screens above
// it were removed.
type Resumer interface {
	Resume() tea.Cmd
}
