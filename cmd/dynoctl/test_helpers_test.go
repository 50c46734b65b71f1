package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dynoctl/internal/config"
	"dynoctl/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	daemon     *testsupport.MockDaemon
}

// setupCLITestEnv starts a mock daemon and writes a config file pointing
// the CLI at it. Every test invocation passes the config path explicitly
// so nothing escapes the temp directory.
func setupCLITestEnv(t *testing.T, respond testsupport.Responder, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	daemon := testsupport.StartDaemon(t, respond)
	options := append([]testsupport.ConfigOption{testsupport.WithDefaultHost(daemon.Addr())}, opts...)
	cfg := testsupport.NewConfig(t, options...)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, daemon: daemon}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[connection]\ndefault_host = %q\nconnect_timeout = %d\nrequest_timeout = %d\n\n[batch]\nconcurrency = %d\n\n[history]\nenabled = %t\ndir = %q\n\n[logging]\nlevel = %q\n",
		cfg.Connection.DefaultHost,
		cfg.Connection.ConnectTimeout,
		cfg.Connection.RequestTimeout,
		cfg.Batch.Concurrency,
		cfg.History.Enabled,
		cfg.History.Dir,
		cfg.Logging.Level,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func writeRawConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
