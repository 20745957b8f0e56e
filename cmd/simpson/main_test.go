package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/simpson/internal/config"
	"github.com/san-kum/simpson/internal/logging"
)

func newTestCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	configFile = ""
	t.Cleanup(func() { _ = logging.Setup(os.Stderr, config.DefaultLogLevel) })
	cmd := &cobra.Command{Use: "calc"}
	cmd.Flags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "")
	addParamFlags(cmd)
	cmd.Flags().BoolVar(&estimate, "estimate", true, "")
	cmd.Flags().BoolVar(&save, "save", false, "")
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestResolveConfigFlags(t *testing.T) {
	cmd := newTestCmd(t, "-e", "3", "--lower", "-1", "--upper", "2", "-n", "4", "--no-table", "--epsilon", "0.01")

	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Equation != 3 || cfg.Lower != -1 || cfg.Upper != 2 || cfg.Intervals != 4 {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.SingularityTable {
		t.Error("--no-table should disable the pre-check")
	}
	if cfg.Epsilon != 0.01 {
		t.Errorf("expected epsilon 0.01, got %g", cfg.Epsilon)
	}
}

func TestResolveConfigPreset(t *testing.T) {
	cmd := newTestCmd(t, "-e", "2", "--preset", "straddle", "-n", "20")

	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Equation != 2 || cfg.Lower != -1 || cfg.Upper != 1 {
		t.Errorf("preset not applied: %+v", cfg)
	}
	if cfg.Intervals != 20 {
		t.Errorf("explicit flag should override preset, got %d", cfg.Intervals)
	}
}

func TestResolveConfigRejects(t *testing.T) {
	if _, err := resolveConfig(newTestCmd(t, "-n", "5")); err == nil {
		t.Error("expected error for odd intervals")
	}
	if _, err := resolveConfig(newTestCmd(t, "--preset", "nope")); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestResolveConfigDefaults(t *testing.T) {
	cfg, err := resolveConfig(newTestCmd(t))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Equation != 1 || cfg.Upper != math.Pi || !cfg.Estimate || !cfg.SingularityTable {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simpson.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestResolveConfigLogLevel(t *testing.T) {
	cmd := newTestCmd(t)
	configFile = writeConfig(t, "log_level: debug\n")
	defer func() { configFile = "" }()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected config log level, got %q", cfg.LogLevel)
	}
	if got := logging.Logger().GetLevel(); got != zerolog.DebugLevel {
		t.Errorf("expected logger at debug, got %s", got)
	}
}

func TestResolveConfigLogLevelFlag(t *testing.T) {
	cmd := newTestCmd(t, "--log-level", "error")
	configFile = writeConfig(t, "log_level: debug\n")
	defer func() { configFile = "" }()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("explicit flag should override config, got %q", cfg.LogLevel)
	}
	if got := logging.Logger().GetLevel(); got != zerolog.ErrorLevel {
		t.Errorf("expected logger at error, got %s", got)
	}
}
