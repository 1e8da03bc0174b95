package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestScoreBar_View(t *testing.T) {
	bar := NewScoreBar("Confidence", 32, 40)
	view := bar.View()
	if !strings.Contains(view, "Confidence") {
		t.Errorf("expected label in view, got %q", view)
	}
	if !strings.Contains(view, "32%") {
		t.Errorf("expected percent in view, got %q", view)
	}
}

func TestMultiChoice_Single(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b", "c"}, false)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if got := m.Chosen(); len(got) != 1 || got[0] != "b" {
		t.Errorf("Chosen = %v, want [b]", got)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if got := m.Chosen(); len(got) != 1 || got[0] != "c" {
		t.Errorf("Chosen = %v, want [c]", got)
	}
}

func TestMultiChoice_Multi(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b", "c"}, true)
	if got := m.Chosen(); len(got) != 0 {
		t.Errorf("Chosen = %v, want none", got)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	m, _ = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	got := m.Chosen()
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("Chosen = %v, want [a c]", got)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: '1', Text: "1"})
	if got := m.Chosen(); len(got) != 1 || got[0] != "c" {
		t.Errorf("Chosen = %v, want [c]", got)
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "one"},
		{Label: "two", Disabled: true},
		{Label: "three"},
	})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Errorf("Selected = %d, want 2", m.Selected)
	}
}

func TestScoreBar_Clamps(t *testing.T) {
	if got := NewScoreBar("", 140, 30).Score; got != 100 {
		t.Errorf("Score = %d, want 100", got)
	}
	if got := NewScoreBar("", -5, 30).Score; got != 0 {
		t.Errorf("Score = %d, want 0", got)
	}
}

func TestMenu_WrapsAndJumps(t *testing.T) {
	var picked string
	pick := func(s string) func() tea.Cmd {
		return func() tea.Cmd { picked = s; return nil }
	}
	m := NewMenu([]MenuItem{
		{Label: "review", Action: pick("review")},
		{Label: "quiz", Action: pick("quiz")},
		{Label: "quit", Action: pick("quit")},
	})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 2 {
		t.Errorf("Selected = %d, want 2 after wrapping up", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	if m.Selected != 1 || picked != "quiz" {
		t.Errorf("Selected = %d picked = %q, want 1 quiz", m.Selected, picked)
	}
}

func TestMenu_DetailShown(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Review cards", Detail: "3 due"}})
	if !strings.Contains(m.View(), "3 due") {
		t.Errorf("expected detail in view, got %q", m.View())
	}
}
