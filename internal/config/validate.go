package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateConnection(); err != nil {
		return err
	}
	if err := c.validateTrace(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateConnection() error {
	if c.Connection.Port < 1 || c.Connection.Port > 65535 {
		return fmt.Errorf("connection.port must be between 1 and 65535, got %d", c.Connection.Port)
	}
	if c.Connection.ConnectTimeout <= 0 {
		return errors.New("connection.connect_timeout must be positive (seconds)")
	}
	if c.Connection.RequestTimeout < 0 {
		return errors.New("connection.request_timeout must be >= 0 (seconds, 0 disables)")
	}
	return nil
}

func (c *Config) validateTrace() error {
	if c.Trace.LogFile == "" {
		return errors.New("trace.log_file must be set")
	}
	if c.Trace.DurationMS <= 0 {
		return errors.New("trace.duration_ms must be positive")
	}
	if c.Trace.ProcessLimit < 1 {
		return errors.New("trace.process_limit must be >= 1")
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Batch.Concurrency < 0 {
		return errors.New("batch.concurrency must be >= 0 (0 means unbounded)")
	}
	return nil
}

func (c *Config) validateHistory() error {
	if !c.History.Enabled {
		return nil
	}
	if c.History.Dir == "" {
		return errors.New("history.dir must be set when history.enabled is true")
	}
	if c.History.MaxEntries < 0 {
		return errors.New("history.max_entries must be >= 0 (0 disables pruning)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
