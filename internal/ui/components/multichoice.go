package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/ui/theme"
)

// MultiChoice is an option selector. In multi mode space toggles options
// and several can be chosen; otherwise the cursor is the choice.
type MultiChoice struct {
	Options  []string
	Selected int
	Multi    bool
	checked  map[int]bool
}

// NewMultiChoice creates a selector over options.
func NewMultiChoice(options []string, multi bool) MultiChoice {
	return MultiChoice{
		Options: options,
		Multi:   multi,
		checked: make(map[int]bool),
	}
}

// Update handles cursor movement, number keys and toggling.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "space":
		if m.Multi {
			m.checked[m.Selected] = !m.checked[m.Selected]
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Selected = i
				if m.Multi {
					m.checked[i] = !m.checked[i]
				}
			}
		}
	}
	return m, nil
}

// Chosen returns the chosen option values in option order.
func (m MultiChoice) Chosen() []string {
	if !m.Multi {
		if m.Selected < 0 || m.Selected >= len(m.Options) {
			return nil
		}
		return []string{m.Options[m.Selected]}
	}
	var out []string
	for i, opt := range m.Options {
		if m.checked[i] {
			out = append(out, opt)
		}
	}
	return out
}

// View renders the options, one per line.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		box := ""
		if m.Multi {
			box = "[ ] "
			if m.checked[i] {
				box = "[x] "
			}
		}
		line := fmt.Sprintf("%s%d) %s%s", prefix, i+1, box, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == m.Selected {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
