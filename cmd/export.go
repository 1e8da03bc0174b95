package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all study data as JSON (stdout when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		raw, err := store.ExportState(e.ws.Snapshot())
		if err != nil {
			return err
		}
		if len(args) == 0 {
			_, err = cmd.OutOrStdout().Write(append(raw, '\n'))
			return err
		}
		return os.WriteFile(args[0], raw, 0o644)
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replace all study data with an exported document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		d, err := store.ImportState(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.ws.Restore(cmd.Context(), d); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %d flashcards and %d sessions.\n", len(d.Flashcards), len(d.Sessions))
		return nil
	},
}
