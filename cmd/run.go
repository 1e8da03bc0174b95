package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/app"
)

// runApp opens the workspace and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(app.Options{
		Workspace: e.ws,
		Logger:    e.log,
	})
}
