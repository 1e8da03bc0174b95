package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List flashcards due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		titles := make(map[string]string)
		for _, c := range e.ws.Concepts() {
			titles[c.ID] = c.Title
		}

		out := cmd.OutOrStdout()
		due := e.ws.DueFlashcards()
		for _, c := range due {
			fmt.Fprintf(out, "%-24s  %-8s  %s\n", truncate(titles[c.ConceptID], 24), c.Difficulty, truncate(c.Front, 50))
		}
		fmt.Fprintf(out, "\n%d cards due\n", len(due))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		s := e.ws.Stats()
		p := e.ws.Progress()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Confidence   %3d%%\n", s.ConfidenceScore)
		fmt.Fprintf(out, "Readiness    %3d%%\n", s.ReadinessScore)
		fmt.Fprintf(out, "Consistency  %3d%%\n", s.ConsistencyScore)
		fmt.Fprintf(out, "Overall      %3d%%\n", s.OverallProgress)
		fmt.Fprintln(out, strings.Repeat("─", 32))
		fmt.Fprintf(out, "Study time       %d min\n", p.TotalStudyTime)
		fmt.Fprintf(out, "Sessions         %d\n", p.SessionsCompleted)
		fmt.Fprintf(out, "Cards reviewed   %d\n", p.FlashcardsReviewed)
		fmt.Fprintf(out, "Quizzes taken    %d (avg %d%%)\n", p.QuizzesTaken, p.AverageScore)
		fmt.Fprintf(out, "Streak           %d days\n", p.StreakDays)
		if len(p.WeakAreas) > 0 {
			fmt.Fprintf(out, "Weak areas       %s\n", strings.Join(p.WeakAreas, ", "))
		}

		var unlocked []string
		for _, a := range e.ws.Achievements() {
			if a.Unlocked() {
				unlocked = append(unlocked, a.Icon+" "+a.Title)
			}
		}
		if len(unlocked) > 0 {
			fmt.Fprintf(out, "Achievements     %s\n", strings.Join(unlocked, ", "))
		}
		return nil
	},
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
