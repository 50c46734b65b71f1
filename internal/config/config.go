package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Connection contains daemon endpoint and timeout configuration.
type Connection struct {
	// DefaultHost is used when a command names no host. Empty defers to the
	// DYNOCTL_HOST environment variable, then to localhost.
	DefaultHost string `toml:"default_host"`
	// Port is the daemon listener port appended to hosts given without one.
	Port int `toml:"port"`
	// ConnectTimeout bounds TCP dial attempts, in seconds.
	ConnectTimeout int `toml:"connect_timeout"`
	// RequestTimeout bounds a full request/response exchange, in seconds.
	// Zero waits as long as the daemon takes.
	RequestTimeout int `toml:"request_timeout"`
}

// Trace contains defaults for on-demand GPU trace requests.
type Trace struct {
	// LogFile is the trace destination on the traced host. It is not
	// expanded locally; the remote daemon interprets it.
	LogFile      string `toml:"log_file"`
	DurationMS   int    `toml:"duration_ms"`
	ProcessLimit int    `toml:"process_limit"`
}

// Batch contains configuration for multi-host fan-out.
type Batch struct {
	// Concurrency caps how many hosts are contacted at once. Zero contacts
	// every host in parallel.
	Concurrency int `toml:"concurrency"`
}

// History contains configuration for the local command history ledger.
type History struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
	// MaxEntries prunes the ledger to the newest N records. Zero disables
	// pruning.
	MaxEntries int `toml:"max_entries"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File appends a copy of every log line to the given path.
	File string `toml:"file"`
}

// Config encapsulates all configuration values for dynoctl.
//
// Configuration sections by subsystem:
//   - Connection: daemon endpoint defaults and timeouts
//   - Trace: gputrace request defaults
//   - Batch: multi-host fan-out limits
//   - History: local command history ledger
//   - Logging: log format, level, and optional file sink
type Config struct {
	Connection Connection `toml:"connection"`
	Trace      Trace      `toml:"trace"`
	Batch      Batch      `toml:"batch"`
	History    History    `toml:"history"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/dynoctl/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all local path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("dynoctl.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// HistoryDBPath returns the sqlite file backing the command history ledger.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.History.Dir, "history.db")
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
