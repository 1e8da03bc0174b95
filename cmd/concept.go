package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var conceptCmd = &cobra.Command{
	Use:   "concept",
	Short: "Browse concepts and set mastery",
}

var conceptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List concepts with their mastery level",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		concepts := e.ws.Concepts()
		for _, c := range concepts {
			fmt.Fprintf(out, "%-36s  %-30s  %-8s  %3d%%\n", c.ID, truncate(c.Title, 30), c.Difficulty, c.MasteryLevel)
		}
		fmt.Fprintf(out, "\n%d concepts in %d materials\n", len(concepts), len(e.ws.Materials()))
		return nil
	},
}

var conceptMasteryCmd = &cobra.Command{
	Use:   "mastery <concept-id> <level>",
	Short: "Set a concept's mastery level (0-100)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("level: %w", err)
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		return e.ws.UpdateConceptMastery(cmd.Context(), args[0], level)
	},
}

var materialRemoveCmd = &cobra.Command{
	Use:   "remove-material <material-id>",
	Short: "Remove a material with its concepts and flashcards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		return e.ws.RemoveMaterial(cmd.Context(), args[0])
	},
}

func init() {
	conceptCmd.AddCommand(conceptListCmd)
	conceptCmd.AddCommand(conceptMasteryCmd)
	conceptCmd.AddCommand(materialRemoveCmd)
}
