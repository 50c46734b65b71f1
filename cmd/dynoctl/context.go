package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"dynoctl/internal/config"
	"dynoctl/internal/dispatch"
	"dynoctl/internal/dyno"
	"dynoctl/internal/history"
	"dynoctl/internal/logging"
)

type commandContext struct {
	hostnameFlag *string
	portFlag     *int
	configFlag   *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	log        *slog.Logger
}

func newCommandContext(hostnameFlag *string, portFlag *int, configFlag *string) *commandContext {
	return &commandContext{
		hostnameFlag: hostnameFlag,
		portFlag:     portFlag,
		configFlag:   configFlag,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// logger builds the process logger once. Commands keep working when log
// output cannot be set up; the failure goes to stderr and logging becomes
// a no-op.
func (c *commandContext) logger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.log = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logging unavailable: %v\n", err)
			c.log = logging.NewNop()
			return
		}
		c.log = logger
	})
	return c.log
}

// targetHost resolves the endpoint single-host commands talk to: the
// --hostname flag when given, otherwise the configured default host, with
// the effective port appended unless the host already names one.
func (c *commandContext) targetHost() (string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	host := cfg.Connection.DefaultHost
	if c.hostnameFlag != nil && strings.TrimSpace(*c.hostnameFlag) != "" {
		host = strings.TrimSpace(*c.hostnameFlag)
	}
	return dyno.NormalizeHost(host, c.port(cfg))
}

func (c *commandContext) port(cfg *config.Config) int {
	if c.portFlag != nil && *c.portFlag > 0 {
		return *c.portFlag
	}
	return cfg.Connection.Port
}

func (c *commandContext) invoker() (*dispatch.Invoker, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return dispatch.NewInvoker(
		c.logger(),
		time.Duration(cfg.Connection.ConnectTimeout)*time.Second,
		time.Duration(cfg.Connection.RequestTimeout)*time.Second,
	), nil
}

// runSingleHost sends one command to the resolved daemon and renders the
// outcome. The exchange is recorded in the history ledger whether it
// succeeded or not.
func (c *commandContext) runSingleHost(cmd *cobra.Command, command dispatch.Command, render func(*cobra.Command, dispatch.Outcome) error) error {
	host, err := c.targetHost()
	if err != nil {
		return err
	}
	invoker, err := c.invoker()
	if err != nil {
		return err
	}

	outcome, invokeErr := invoker.Invoke(cmd.Context(), host, command)
	c.recordResults(cmd, payloadJSON(command), "", dispatch.Result{Host: host, Outcome: outcome, Err: invokeErr})
	if invokeErr != nil {
		return invokeErr
	}
	return render(cmd, outcome)
}

// runBatch fans one command out to every listed host, renders the report,
// and surfaces the aggregate error after rendering so the per-host table
// always reaches the operator.
func (c *commandContext) runBatch(cmd *cobra.Command, rawHosts []string, command dispatch.Command, render func(*cobra.Command, dispatch.Report) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	hosts, err := dyno.NormalizeHosts(rawHosts, c.port(cfg))
	if err != nil {
		return err
	}
	invoker, err := c.invoker()
	if err != nil {
		return err
	}

	report := invoker.RunBatch(cmd.Context(), hosts, command, cfg.Batch.Concurrency)
	c.recordResults(cmd, payloadJSON(command), report.ID, report.Results...)
	if err := render(cmd, report); err != nil {
		return err
	}
	return report.Err()
}

// recordResults appends one ledger row per result. Recording is best
// effort: a ledger problem logs a warning and never fails the command.
func (c *commandContext) recordResults(cmd *cobra.Command, requestJSON, batchID string, results ...dispatch.Result) {
	cfg, err := c.ensureConfig()
	if err != nil || !cfg.History.Enabled {
		return
	}
	store, err := history.Open(cfg)
	if err != nil {
		c.logger().Warn("history unavailable", logging.Error(err))
		return
	}
	defer store.Close()
	for _, result := range results {
		if err := store.Append(cmd.Context(), history.FromResult(result, requestJSON, batchID)); err != nil {
			c.logger().Warn("history append failed", logging.Error(err))
			return
		}
	}
}

func payloadJSON(command dispatch.Command) string {
	raw, err := json.Marshal(command.Payload())
	if err != nil {
		return ""
	}
	return string(raw)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
