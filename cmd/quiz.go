package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Manage quizzes",
}

var quizImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a quiz from a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		q, err := quiz.Decode(raw, uuid.NewString, e.cfg.Quiz.DefaultTimeLimit)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		if err := e.ws.AddQuiz(cmd.Context(), q); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %q (%d questions) as %s\n", q.Title, len(q.Questions), q.ID)
		return nil
	},
}

var quizListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quizzes with their best score",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		best := make(map[string]int)
		for _, a := range e.ws.Attempts() {
			if a.Score == nil {
				continue
			}
			if s, ok := best[a.QuizID]; !ok || *a.Score > s {
				best[a.QuizID] = *a.Score
			}
		}

		out := cmd.OutOrStdout()
		quizzes := e.ws.Quizzes()
		fmt.Fprintf(out, "%-36s  %-30s  %9s  %6s  %s\n", "ID", "Title", "Questions", "Limit", "Best")
		for _, q := range quizzes {
			limit := "-"
			if q.TimeLimit > 0 {
				limit = fmt.Sprintf("%dm", q.TimeLimit)
			}
			score := "-"
			if s, ok := best[q.ID]; ok {
				score = fmt.Sprintf("%d%%", s)
			}
			fmt.Fprintf(out, "%-36s  %-30s  %9d  %6s  %s\n",
				q.ID, truncate(q.Title, 30), len(q.Questions), limit, score)
		}
		fmt.Fprintf(out, "\n%d quizzes\n", len(quizzes))
		return nil
	},
}

func init() {
	quizCmd.AddCommand(quizImportCmd)
	quizCmd.AddCommand(quizListCmd)
}
