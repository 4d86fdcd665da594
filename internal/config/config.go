package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/mlenz/lsview/internal/logger"
)

// Config holds all lsview configuration
type Config struct {
	ShowHidden     bool     `json:"show_hidden"`     // Default hidden-file visibility for new views
	Editor         string   `json:"editor"`          // Preferred editor; falls back to $EDITOR then a known chain
	DualPane       bool     `json:"dual_pane"`       // Start with two panes
	WatchEnabled   bool     `json:"watch_enabled"`   // Re-list automatically when the directory changes
	IgnorePatterns []string `json:"ignore_patterns"` // Watcher events matching these globs are dropped
}

func defaultConfig() *Config {
	return &Config{
		ShowHidden:     false,
		Editor:         "",
		DualPane:       false,
		WatchEnabled:   true,
		IgnorePatterns: defaultIgnorePatterns(),
	}
}

// defaultIgnorePatterns covers editor temp files and churn-heavy directories
// that would otherwise re-list the view on every keystroke of a running build
func defaultIgnorePatterns() []string {
	return []string{
		".git",
		"*.swp",
		"*.swo",
		"*~",
		".DS_Store",
		"__pycache__",
		"node_modules",
	}
}

// Load reads config from ~/.config/lsview/lsview-config.json
func Load() *Config {
	configPath, err := GetConfigPath()
	if err != nil {
		logger.Error("Failed to get config path: %v", err)
		return defaultConfig()
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		logger.Error("Failed to create config directory %s: %v", filepath.Dir(configPath), err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// First run: save defaults so users have a file to edit
		cfg := defaultConfig()
		if err := Save(cfg); err != nil {
			logger.Warn("Failed to save default config: %v", err)
		}
		return cfg
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		logger.Warn("Failed to parse config file %s: %v, using defaults", configPath, err)
		return defaultConfig()
	}

	if cfg.IgnorePatterns == nil {
		cfg.IgnorePatterns = defaultIgnorePatterns()
		if err := Save(cfg); err != nil {
			logger.Warn("Failed to save config after adding ignore_patterns: %v", err)
		}
	}
	cfg.IgnorePatterns = validPatterns(cfg.IgnorePatterns)

	return cfg
}

// validPatterns drops globs that do not compile so a typo in the config file
// cannot take the watcher down at runtime
func validPatterns(patterns []string) []string {
	valid := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if _, err := glob.Compile(p); err != nil {
			logger.Warn("Dropping invalid ignore pattern %q: %v", p, err)
			continue
		}
		valid = append(valid, p)
	}
	return valid
}

// Save writes config to ~/.config/lsview/lsview-config.json
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		logger.Error("Failed to get config path: %v", err)
		return fmt.Errorf("cannot get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		logger.Error("Failed to create config directory %s: %v", filepath.Dir(configPath), err)
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		logger.Error("Failed to marshal config: %v", err)
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		logger.Error("Failed to write config file %s: %v", configPath, err)
		return fmt.Errorf("cannot write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "lsview", "lsview-config.json"), nil
}
