// Package config loads CLI configuration from defaults, a TOML file, the
// environment and global flags, in that order of precedence (lowest first).
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultFile      = "todo.json"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	// ProjectConfigFile is looked up in the working directory.
	ProjectConfigFile = ".todo.toml"
	// UserConfigFile is looked up under os.UserConfigDir().
	UserConfigFile = "todo-cli/config.toml"
)

// Config holds the settings for one invocation.
type Config struct {
	File        string `toml:"file"`
	NoColor     bool   `toml:"no_color"`
	LogLevel    string `toml:"log_level"`
	LogFormat   string `toml:"log_format"`
	AtomicWrite bool   `toml:"atomic_write"`

	// ConfigFile is the TOML file that was applied, if any.
	ConfigFile string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		File:      DefaultFile,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

type flagValues struct {
	file       string
	configFile string
	noColor    bool
	debug      bool
	logFormat  string
	atomic     bool
}

// Load parses the global flags in args and resolves the configuration. It
// returns the arguments left after the global flags.
func Load(args []string) (*Config, []string, error) {
	flags := flag.NewFlagSet("todo", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var fv flagValues
	flags.StringVar(&fv.file, "file", "", "")
	flags.StringVar(&fv.configFile, "config", "", "")
	flags.BoolVar(&fv.noColor, "no-color", false, "")
	flags.BoolVar(&fv.debug, "debug", false, "")
	flags.StringVar(&fv.logFormat, "log-format", "", "")
	flags.BoolVar(&fv.atomic, "atomic", false, "")

	if err := flags.Parse(args); err != nil {
		return nil, nil, &UsageError{Err: err}
	}

	cfg := Default()

	path, explicit := configFilePath(fv.configFile)
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			if !explicit && errors.Is(err, fs.ErrNotExist) {
				path = ""
			} else {
				return nil, nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		}
	}
	cfg.ConfigFile = path

	if err := loadFromEnv(cfg); err != nil {
		return nil, nil, err
	}

	set := map[string]bool{}
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["file"] {
		cfg.File = fv.file
	}
	if set["no-color"] {
		cfg.NoColor = fv.noColor
	}
	if set["debug"] && fv.debug {
		cfg.LogLevel = "debug"
	}
	if set["log-format"] {
		cfg.LogFormat = fv.logFormat
	}
	if set["atomic"] {
		cfg.AtomicWrite = fv.atomic
	}

	if cfg.File == "" {
		cfg.File = DefaultFile
	}
	cfg.File = expandHome(cfg.File)

	return cfg, flags.Args(), nil
}

// UsageError reports a bad global flag.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// configFilePath picks the config file: the flag, then TODO_CONFIG, then the
// project file, then the user file. explicit is true for the first two.
func configFilePath(flagValue string) (path string, explicit bool) {
	if flagValue != "" {
		return expandHome(flagValue), true
	}
	if env := os.Getenv("TODO_CONFIG"); env != "" {
		return expandHome(env), true
	}
	if _, err := os.Stat(ProjectConfigFile); err == nil {
		return ProjectConfigFile, false
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, UserConfigFile), false
	}
	return "", false
}

func loadFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TODO_FILE"); v != "" {
		cfg.File = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv("TODO_ATOMIC_WRITE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TODO_ATOMIC_WRITE: %w", err)
		}
		cfg.AtomicWrite = b
	}
	// https://no-color.org: any non-empty value disables color.
	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}
	return nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}
