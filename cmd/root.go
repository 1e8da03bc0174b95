package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/config"
	"github.com/abhisek/examprep/internal/store"
	"github.com/abhisek/examprep/internal/workspace"
)

var rootCmd = &cobra.Command{
	Use:   "examprep",
	Short: "Terminal study companion for exam preparation",
	Long: "Examprep keeps your flashcards, quizzes and study plans in one place\n" +
		"and schedules reviews with spaced repetition.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default is the user config dir)")
	pf.String("db", "", "Path to SQLite database file (overrides EXAMPREP_DB env var)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-file", "", "Log file used by the interactive app")
	pf.String("repos-dir", "", "Directory where git material repos are cloned")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(conceptCmd)
	rootCmd.AddCommand(resourceCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// env bundles what a command needs to reach the study state.
type env struct {
	cfg *config.Config
	st  *store.Store
	ws  *workspace.Workspace
	log *slog.Logger

	logFile *os.File
}

func (e *env) Close() {
	if e.st != nil {
		e.st.Close()
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

// loadConfig reads the config file, environment and persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path, cmd.Flags())
}

// resolveDBPath returns the configured database path, or the default
// XDG path when none is set.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// resolveReposDir returns where git materials are cloned.
func resolveReposDir(cfg *config.Config) (string, error) {
	if cfg.ReposDir != "" {
		return cfg.ReposDir, nil
	}
	dir, err := store.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "repos"), nil
}

// openEnv loads config, opens the store and the workspace. When toFile is
// set, logs go to the log file so they do not garble the terminal UI.
func openEnv(cmd *cobra.Command, toFile bool) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg}

	var w io.Writer = os.Stderr
	if toFile {
		dataDir, err := store.DataDir()
		if err != nil {
			return nil, err
		}
		f, err := cfg.OpenLogFile(dataDir)
		if err != nil {
			return nil, err
		}
		e.logFile = f
		w = f
	}
	e.log = cfg.NewLogger(w)

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	e.st, err = store.Open(dbPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	e.ws, err = workspace.Open(cmd.Context(), e.st.SnapshotRepo(), workspace.Options{
		KeepSnapshots: cfg.Snapshots.Keep,
		Logger:        e.log,
	})
	if err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}
