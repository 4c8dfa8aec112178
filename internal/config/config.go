package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

// Config holds hotfix defaults.
// Loaded from ~/.hotfix/config.json with environment variable overrides;
// command line flags override both.
type Config struct {
	// Debug enables debug-level logging on stderr.
	// Env override: HOTFIX_DEBUG=1
	Debug bool `json:"debug"`

	// Strict makes a rule that matched nothing fail the run.
	// Env override: HOTFIX_STRICT=1
	Strict bool `json:"strict"`

	// LogDir enables a rotating diagnostics log in this directory.
	// Env override: HOTFIX_LOG_DIR
	LogDir string `json:"log_dir"`

	// LogJSON writes diagnostics as JSON lines instead of text.
	// Env override: HOTFIX_LOG_JSON=1
	LogJSON bool `json:"log_json"`

	// RulesFile replaces the built-in rules with rules loaded from YAML.
	// Env override: HOTFIX_RULES
	RulesFile string `json:"rules_file"`

	// NoColor disables styled console output.
	// Env override: NO_COLOR (any value)
	NoColor bool `json:"no_color"`
}

// Load reads configuration from the config file, then applies
// environment variable overrides. Config file locations checked in order:
//  1. HOTFIX_CONFIG env var (if set)
//  2. ~/.hotfix/config.json
//
// Missing file is not an error.
func Load() Config {
	var cfg Config

	configPath := os.Getenv("HOTFIX_CONFIG")
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Warn("Failed to get home directory for config", "error", err)
			applyEnvOverrides(&cfg)
			return cfg
		}
		configPath = filepath.Join(home, ".hotfix", "config.json")
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read config file", "path", configPath, "error", err)
		}
		applyEnvOverrides(&cfg)
		return cfg
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		slog.Warn("Failed to parse config file", "path", configPath, "error", err)
	}

	applyEnvOverrides(&cfg)
	return cfg
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if os.Getenv("HOTFIX_DEBUG") == "1" {
		cfg.Debug = true
	}
	if os.Getenv("HOTFIX_STRICT") == "1" {
		cfg.Strict = true
	}
	if dir := os.Getenv("HOTFIX_LOG_DIR"); dir != "" {
		cfg.LogDir = dir
	}
	if os.Getenv("HOTFIX_LOG_JSON") == "1" {
		cfg.LogJSON = true
	}
	if rules := os.Getenv("HOTFIX_RULES"); rules != "" {
		cfg.RulesFile = rules
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.NoColor = true
	}
}
