package history

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/progress"
	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/screen"
	"github.com/abhisek/examprep/internal/ui/layout"
	"github.com/abhisek/examprep/internal/ui/theme"
)

// maxSessions caps how many log entries are listed.
const maxSessions = 50

// Source provides the session log.
type Source interface {
	Sessions() []progress.StudySession
}

// HistoryScreen lists past study sessions, newest first.
type HistoryScreen struct {
	src      Source
	sessions []progress.StudySession
	selected int
	expanded map[int]bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(src Source) *HistoryScreen {
	return &HistoryScreen{
		src:      src,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	sessions := s.src.Sessions()
	slices.Reverse(sessions)
	if len(sessions) > maxSessions {
		sessions = sessions[:maxSessions]
	}
	s.sessions = sessions
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q":
			return s, router.Pop()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Review some cards!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-14s  %3d min  %3d%%",
			prefix, sess.Date.Local().Format("Jan 02, 2006 15:04"), activityName(sess.ActivityType),
			sess.Duration, sess.Performance)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := "    No concepts recorded"
			if len(sess.ConceptIDs) > 0 {
				detail = "    Concepts: " + strings.Join(uniq(sess.ConceptIDs), ", ")
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func activityName(a progress.ActivityType) string {
	switch a {
	case progress.ActivityFlashcard:
		return "Flashcards"
	case progress.ActivityQuiz:
		return "Quiz"
	case progress.ActivityConceptReview:
		return "Concept review"
	case progress.ActivityMaterialUpload:
		return "Upload"
	default:
		return string(a)
	}
}

// uniq drops repeated ids, keeping first occurrences.
func uniq(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
