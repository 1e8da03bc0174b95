package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/plan"
)

const dateLayout = "2006-01-02"

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage exam study plans",
}

var planAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a study plan leading up to an exam",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exam, _ := cmd.Flags().GetString("exam")
		hours, _ := cmd.Flags().GetInt("hours")
		desc, _ := cmd.Flags().GetString("description")
		examDate, err := time.ParseInLocation(dateLayout, exam, time.Local)
		if err != nil {
			return fmt.Errorf("--exam: %w", err)
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.ws.CreateStudyPlan(cmd.Context(), args[0], desc, examDate, hours)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created plan %s\n", p.ID)
		return nil
	},
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List study plans and their tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		now := e.ws.Now()
		for _, p := range e.ws.StudyPlans() {
			fmt.Fprintf(out, "%s  %s  %d%%", p.ID, p.Title, p.OverallProgress())
			if days, ok := p.DaysLeft(now); ok {
				fmt.Fprintf(out, "  %d days left", days)
			}
			fmt.Fprintln(out)
			for _, g := range p.DailyGoals {
				fmt.Fprintf(out, "  %s  %d%%\n", g.Date.Format(dateLayout), plan.DayProgress(g.Tasks))
				for _, t := range g.Tasks {
					mark := " "
					if t.Completed {
						mark = "x"
					}
					fmt.Fprintf(out, "    [%s] %s  %s (%s, %d min)\n", mark, t.ID, t.Title, t.Type, t.EstimatedTime)
				}
			}
		}
		return nil
	},
}

var planTaskCmd = &cobra.Command{
	Use:   "task <plan-id> <title>",
	Short: "Add a task to a plan day",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, _ := cmd.Flags().GetString("date")
		kind, _ := cmd.Flags().GetString("type")
		minutes, _ := cmd.Flags().GetInt("minutes")
		concepts, _ := cmd.Flags().GetStringSlice("concepts")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		date := e.ws.Now()
		if day != "" {
			date, err = time.ParseInLocation(dateLayout, day, time.Local)
			if err != nil {
				return fmt.Errorf("--date: %w", err)
			}
		}
		t, err := e.ws.AddPlanTask(cmd.Context(), args[0], date, plan.Task{
			Title:         args[1],
			Type:          plan.TaskType(kind),
			ConceptIDs:    concepts,
			EstimatedTime: minutes,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added task %s on %s\n", t.ID, date.Format(dateLayout))
		return nil
	},
}

var planDoneCmd = &cobra.Command{
	Use:   "done <plan-id> <task-id>",
	Short: "Mark a plan task completed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		undo, _ := cmd.Flags().GetBool("undo")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		return e.ws.SetTaskCompleted(cmd.Context(), args[0], args[1], !undo)
	},
}

func init() {
	planAddCmd.Flags().String("exam", "", "Exam date (YYYY-MM-DD)")
	planAddCmd.Flags().Int("hours", 0, "Estimated study hours")
	planAddCmd.Flags().String("description", "", "Plan description")
	_ = planAddCmd.MarkFlagRequired("exam")

	planTaskCmd.Flags().String("date", "", "Day of the task (YYYY-MM-DD, default today)")
	planTaskCmd.Flags().String("type", string(plan.TaskFlashcardReview),
		"Task type: flashcard_review, quiz_practice, concept_study or material_reading")
	planTaskCmd.Flags().Int("minutes", 30, "Estimated minutes")
	planTaskCmd.Flags().StringSlice("concepts", nil, "Concept ids the task covers")

	planDoneCmd.Flags().Bool("undo", false, "Mark the task not completed")

	planCmd.AddCommand(planAddCmd)
	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planTaskCmd)
	planCmd.AddCommand(planDoneCmd)
}
