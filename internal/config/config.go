// Package config loads examprep settings. Sources are layered, later
// ones winning: built-in defaults, the YAML config file, EXAMPREP_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nested keys, so EXAMPREP_LOG__LEVEL sets log.level.
const EnvPrefix = "EXAMPREP_"

// Config is the resolved configuration.
type Config struct {
	// DB is the SQLite database path. Empty selects the default data path.
	DB        string    `koanf:"db"`
	ReposDir  string    `koanf:"repos_dir"`
	Log       Log       `koanf:"log"`
	Snapshots Snapshots `koanf:"snapshots"`
	Quiz      Quiz      `koanf:"quiz"`
}

type Log struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	File  string `koanf:"file"`
}

type Snapshots struct {
	Keep int `koanf:"keep" validate:"min=1,max=1000"`
}

type Quiz struct {
	// DefaultTimeLimit in minutes applies to imported quizzes that set
	// none. Zero keeps them untimed.
	DefaultTimeLimit int `koanf:"default_time_limit" validate:"gte=0,lte=600"`
}

var defaults = map[string]any{
	"db":                      "",
	"repos_dir":               "",
	"log.level":               "info",
	"log.file":                "",
	"snapshots.keep":          20,
	"quiz.default_time_limit": 0,
}

// flagKeys maps command-line flag names to config keys. Flags not listed
// are not configuration.
var flagKeys = map[string]string{
	"db":        "db",
	"log-level": "log.level",
	"log-file":  "log.file",
	"repos-dir": "repos_dir",
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultPath returns <user config dir>/examprep/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, "examprep", "config.yaml"), nil
}

// Load resolves the configuration. path names the YAML file; when empty
// the default path is used and a missing file is not an error. flags may
// be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	for key, v := range defaults {
		if err := k.Set(key, v); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if _, err := os.Stat(path); !explicit && errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if flags != nil {
		p := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(p, nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Level returns the slog level for Log.Level.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// NewLogger builds a text logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}

// OpenLogFile opens (creating if needed) the log file for appending. An
// empty Log.File selects examprep.log under dataDir.
func (c *Config) OpenLogFile(dataDir string) (*os.File, error) {
	path := c.Log.File
	if path == "" {
		path = filepath.Join(dataDir, "examprep.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
