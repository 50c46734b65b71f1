package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeConnection()
	c.normalizeTrace()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeConnection() {
	c.Connection.DefaultHost = strings.TrimSpace(c.Connection.DefaultHost)
	if c.Connection.DefaultHost == "" {
		if value, ok := os.LookupEnv("DYNOCTL_HOST"); ok {
			c.Connection.DefaultHost = strings.TrimSpace(value)
		}
	}
	if c.Connection.DefaultHost == "" {
		c.Connection.DefaultHost = fallbackHost
	}
}

func (c *Config) normalizeTrace() {
	// Trace.LogFile stays verbatim: it names a path on the traced host.
	c.Trace.LogFile = strings.TrimSpace(c.Trace.LogFile)
	if c.Trace.LogFile == "" {
		c.Trace.LogFile = defaultTraceLogFile
	}
}

func (c *Config) normalizeHistory() error {
	var err error
	if strings.TrimSpace(c.History.Dir) == "" {
		c.History.Dir = defaultHistoryDir
	}
	if c.History.Dir, err = ExpandPath(c.History.Dir); err != nil {
		return fmt.Errorf("history.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		expanded, err := ExpandPath(c.Logging.File)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	} else {
		c.Logging.File = ""
	}
	return nil
}
