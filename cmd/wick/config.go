package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wickjs/wick/internal/cli"
	"github.com/wickjs/wick/internal/wkerr"
	"github.com/wickjs/wick/pkg/wick"
)

// Config is the fully resolved configuration for one command invocation.
// Precedence: CLI flags > WICK_* env vars > wick.yaml > defaults.
type Config struct {
	Timeout     time.Duration // zero keeps the host default
	MemoryLimit uint64        // bytes, zero disables the watchdog
	StackDepth  int           // zero keeps the runtime default
	LogLevel    slog.Level
	HistoryFile string
	Color       string // auto, always or never
	Harden      bool
}

// fileConfig mirrors the wick.yaml layout. String fields support ${VAR}
// expansion.
type fileConfig struct {
	Timeout     string `yaml:"timeout"`
	MemoryLimit string `yaml:"memory_limit"`
	StackDepth  int    `yaml:"stack_depth"`
	LogLevel    string `yaml:"log_level"`
	HistoryFile string `yaml:"history_file"`
	Color       string `yaml:"color"`
}

// loadConfig resolves configuration from flags, environment and the config
// file, then applies the color mode. A missing config file is not an error.
func loadConfig() (*Config, error) {
	var fc fileConfig
	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, wkerr.Wrap(wkerr.DomainConfig, wkerr.CodeConfigParse, err, "parse "+configFile).
				With("help", "check the YAML syntax of your config file")
		}
		fc.Timeout = expandEnvVars(fc.Timeout)
		fc.MemoryLimit = expandEnvVars(fc.MemoryLimit)
		fc.HistoryFile = expandEnvVars(fc.HistoryFile)
	}

	cfg := &Config{
		LogLevel: slog.LevelInfo,
		Color:    "auto",
		Harden:   hardenFlag,
	}

	if v := pick(timeoutFlag, "WICK_TIMEOUT", fc.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, badValue("timeout", v, "a duration like 500ms, 5s or 2m")
		}
		cfg.Timeout = d
	}
	if v := pick(memoryFlag, "WICK_MEMORY_LIMIT", fc.MemoryLimit); v != "" {
		n, err := parseByteSize(v)
		if err != nil {
			return nil, badValue("memory_limit", v, "a size like 65536, 64KB or 512MB")
		}
		cfg.MemoryLimit = n
	}
	if stackDepth > 0 {
		cfg.StackDepth = stackDepth
	} else if fc.StackDepth > 0 {
		cfg.StackDepth = fc.StackDepth
	}
	if v := pick(logLevel, "WICK_LOG_LEVEL", fc.LogLevel); v != "" {
		lvl, err := parseLogLevel(v)
		if err != nil {
			return nil, badValue("log_level", v, "one of debug, info, warn, error")
		}
		cfg.LogLevel = lvl
	}
	cfg.HistoryFile = pick("", "WICK_HISTORY", fc.HistoryFile)

	switch {
	case noColor || os.Getenv("WICK_NO_COLOR") != "":
		cfg.Color = "never"
	case fc.Color != "":
		cfg.Color = fc.Color
	}
	if cfg.Color != "auto" && cfg.Color != "always" && cfg.Color != "never" {
		return nil, badValue("color", cfg.Color, "one of auto, always, never")
	}
	applyColorMode(cfg.Color)

	return cfg, nil
}

// pick returns the first non-empty value in flag > env > file order.
func pick(flagVal, envKey, fileVal string) string {
	if flagVal != "" {
		return flagVal
	}
	if env := os.Getenv(envKey); env != "" {
		return env
	}
	return fileVal
}

// badValue builds a config value error carrying the rejected value and a
// hint on the accepted format.
func badValue(key, got, want string) error {
	return wkerr.Newf(wkerr.DomainConfig, wkerr.CodeConfigValue, "invalid %s value", key).
		With("value", got).
		With("help", "expected "+want)
}

// expandEnvVars expands ${VAR} patterns in a string.
func expandEnvVars(s string) string {
	return os.Expand(s, os.Getenv)
}

// applyColorMode overrides terminal detection when configured away from
// auto.
func applyColorMode(mode string) {
	switch mode {
	case "always":
		cli.SetDefault(cli.NewConfigWithMode(cli.ModeTTY))
	case "never":
		cli.SetDefault(cli.NewConfigWithMode(cli.ModePlain))
	}
}

// parseByteSize parses a byte count with an optional B, KB, MB or GB
// suffix.
func parseByteSize(s string) (uint64, error) {
	str := strings.ToUpper(strings.TrimSpace(s))
	mult := uint64(1)
	switch {
	case strings.HasSuffix(str, "GB"):
		mult, str = 1<<30, strings.TrimSuffix(str, "GB")
	case strings.HasSuffix(str, "MB"):
		mult, str = 1<<20, strings.TrimSuffix(str, "MB")
	case strings.HasSuffix(str, "KB"):
		mult, str = 1<<10, strings.TrimSuffix(str, "KB")
	case strings.HasSuffix(str, "B"):
		str = strings.TrimSuffix(str, "B")
	}
	n, err := strconv.ParseUint(strings.TrimSpace(str), 10, 64)
	if err != nil {
		return 0, err
	}
	return n * mult, nil
}

// parseLogLevel maps a level name to its slog level.
func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// newLogger builds the process logger at the configured level.
func newLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
}

// newHost creates a script host from the resolved configuration.
func newHost(extra ...wick.Option) (*wick.Host, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return buildHost(cfg, extra...)
}

// buildHost creates a script host from an already-resolved configuration.
// Watch mode uses it to get a fresh host per run without re-reading the
// config.
func buildHost(cfg *Config, extra ...wick.Option) (*wick.Host, error) {
	opts := []wick.Option{wick.WithLogger(newLogger(cfg))}
	if cfg.Timeout > 0 {
		opts = append(opts, wick.WithTimeout(cfg.Timeout))
	}
	if cfg.MemoryLimit > 0 {
		opts = append(opts, wick.WithMemoryLimit(cfg.MemoryLimit))
	}
	if cfg.StackDepth > 0 {
		opts = append(opts, wick.WithStackDepth(cfg.StackDepth))
	}
	if cfg.Harden {
		opts = append(opts, wick.WithHardening())
	}
	opts = append(opts, extra...)

	return wick.New(opts...)
}
