package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/progress"
)

var logCmd = &cobra.Command{
	Use:   "log <activity> <minutes>",
	Short: "Record a study session done outside the app",
	Long: "Record a study session. Activity is one of flashcard, quiz,\n" +
		"concept_review or material_upload.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := strconv.Atoi(args[1])
		if err != nil || minutes < 0 {
			return fmt.Errorf("minutes must be a non-negative number, got %q", args[1])
		}
		perf, _ := cmd.Flags().GetInt("performance")
		concepts, _ := cmd.Flags().GetStringSlice("concepts")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		err = e.ws.AddSession(cmd.Context(), progress.StudySession{
			ActivityType: progress.ActivityType(args[0]),
			Duration:     minutes,
			ConceptIDs:   concepts,
			Performance:  perf,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged. Streak: %d days\n", e.ws.Progress().StreakDays)
		return nil
	},
}

func init() {
	logCmd.Flags().Int("performance", 0, "Performance score 0-100")
	logCmd.Flags().StringSlice("concepts", nil, "Concept ids studied")
}
