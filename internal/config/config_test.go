package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("db", "", "")
	fs.String("log-level", "info", "")
	fs.String("log-file", "", "")
	fs.String("repos-dir", "", "")
	fs.String("config", "", "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 20, cfg.Snapshots.Keep)
	assert.Zero(t, cfg.Quiz.DefaultTimeLimit)
	assert.Empty(t, cfg.DB)
}

func TestLoad_Layering(t *testing.T) {
	path := writeConfig(t, `
db: /tmp/from-file.db
log:
  level: debug
snapshots:
  keep: 5
quiz:
  default_time_limit: 15
`)
	t.Setenv("EXAMPREP_SNAPSHOTS__KEEP", "7")
	t.Setenv("EXAMPREP_REPOS_DIR", "/tmp/repos")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--db", "/tmp/from-flag.db"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-flag.db", cfg.DB)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 7, cfg.Snapshots.Keep)
	assert.Equal(t, "/tmp/repos", cfg.ReposDir)
	assert.Equal(t, 15, cfg.Quiz.DefaultTimeLimit)
}

func TestLoad_UnchangedFlagKeepsFileValue(t *testing.T) {
	path := writeConfig(t, "log:\n  level: warn\n")
	fs := testFlags()
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad level", "log:\n  level: loud\n", "invalid config"},
		{"zero keep", "snapshots:\n  keep: 0\n", "invalid config"},
		{"negative time limit", "quiz:\n  default_time_limit: -1\n", "invalid config"},
		{"malformed yaml", "log: [", "load config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "log.level", envKey("EXAMPREP_LOG__LEVEL"))
	assert.Equal(t, "repos_dir", envKey("EXAMPREP_REPOS_DIR"))
	assert.Equal(t, "db", envKey("EXAMPREP_DB"))
}

func TestNewLogger_Level(t *testing.T) {
	cfg := &Config{Log: Log{Level: "warn"}}
	assert.Equal(t, slog.LevelWarn, cfg.Level())

	var buf bytes.Buffer
	log := cfg.NewLogger(&buf)
	log.Info("hidden")
	log.Warn("shown", "k", 1)
	assert.False(t, strings.Contains(buf.String(), "hidden"))
	assert.Contains(t, buf.String(), "shown")
}

func TestOpenLogFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{}
	f, err := cfg.OpenLogFile(dir)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, filepath.Join(dir, "examprep.log"), f.Name())
}
