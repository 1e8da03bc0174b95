package progress

import (
	"strings"
	"testing"
	"time"

	"github.com/abhisek/examprep/internal/achievement"
	prog "github.com/abhisek/examprep/internal/progress"
	"github.com/abhisek/examprep/internal/stats"
)

type fakeSource struct {
	p    prog.Progress
	list []achievement.Achievement
}

func (f fakeSource) Stats() stats.Stats                      { return stats.Compute(f.p) }
func (f fakeSource) Progress() prog.Progress                 { return f.p }
func (f fakeSource) Achievements() []achievement.Achievement { return f.list }

func TestProgressScreen_View(t *testing.T) {
	p := prog.New()
	p.StreakDays = 3
	p.WeakAreas = []string{"recursion"}
	list := achievement.Defaults()
	achievement.Unlock(list, achievement.FirstUpload, time.Now())

	s := New(fakeSource{p: p, list: list})
	view := s.View(100, 40)

	for _, want := range []string{"Confidence", "Achievements", "First Steps", "recursion"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestProgressScreen_Title(t *testing.T) {
	s := New(fakeSource{p: prog.New()})
	if s.Title() != "Progress" {
		t.Errorf("Title = %q", s.Title())
	}
}
