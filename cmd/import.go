package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/material"
)

var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Import markdown flashcard decks from a file, a directory or a git repo",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gitURL, _ := cmd.Flags().GetString("git")
		if (gitURL == "") == (len(args) == 0) {
			return errors.New("give a path or --git, not both")
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		now := e.ws.Now()
		var decks []material.Deck
		switch {
		case gitURL != "":
			root, err := resolveReposDir(e.cfg)
			if err != nil {
				return err
			}
			decks, err = material.LoadRepo(ctx, gitURL, root, uuid.NewString, now)
			if err != nil {
				return err
			}
		default:
			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			if info.IsDir() {
				decks, err = material.LoadDir(args[0], uuid.NewString, now)
			} else {
				var d material.Deck
				d, err = material.LoadFile(args[0], uuid.NewString, now)
				decks = []material.Deck{d}
			}
			if err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		for _, d := range decks {
			res, err := e.ws.ImportDeck(ctx, d)
			if err != nil {
				return fmt.Errorf("import %s: %w", d.Material.Name, err)
			}
			fmt.Fprintf(out, "%s: %d concepts, %d cards", res.Material.Name, res.Concepts, res.Cards)
			if res.Skipped > 0 {
				fmt.Fprintf(out, " (%d already known)", res.Skipped)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().String("git", "", "Clone or pull a git repository of markdown decks")
}
