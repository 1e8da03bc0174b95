package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examprep/internal/flashcard"
	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/screen"
	"github.com/abhisek/examprep/internal/screens/concepts"
	"github.com/abhisek/examprep/internal/screens/history"
	"github.com/abhisek/examprep/internal/screens/progress"
	"github.com/abhisek/examprep/internal/screens/quiz"
	"github.com/abhisek/examprep/internal/screens/review"
	"github.com/abhisek/examprep/internal/ui/components"
)

// Workspace is everything the home screen and the screens it opens read
// and write.
type Workspace interface {
	review.Source
	quiz.Source
	progress.Source
	history.Source
	concepts.Source
	DueFlashcards() []flashcard.Flashcard
}

// HomeScreen is the main menu.
type HomeScreen struct {
	ws         Workspace
	menu       components.Menu
	menuLabels []string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(ws Workspace) *HomeScreen {
	menuLabels := []string{"REVIEW CARDS", "TAKE A QUIZ", "CONCEPTS", "PROGRESS", "HISTORY", "QUIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return router.PushScreen(review.New(ws))
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return router.PushScreen(quiz.NewList(ws))
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return router.PushScreen(concepts.New(ws))
		}},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			return router.PushScreen(progress.New(ws))
		}},
		{Label: menuLabels[4], Action: func() tea.Cmd {
			return router.PushScreen(history.New(ws))
		}},
		{Label: menuLabels[5], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		ws:         ws,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// View reads counts live, so they are current when returning from a
// review or quiz.
func (h *HomeScreen) View(width, height int) string {
	compact := height < 22 || width < 100
	cw := components.ContentWidth(width)

	p := h.ws.Progress()
	st := h.ws.Stats()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(len(h.ws.DueFlashcards()), p.StreakDays, st.OverallProgress, cw, compact))
	sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
