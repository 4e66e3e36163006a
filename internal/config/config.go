package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config defines tool configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	History HistoryConfig `yaml:"history"`
	Policy  PolicyConfig  `yaml:"policy"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type HistoryConfig struct {
	// Path to the run-history database. Empty disables history recording.
	Path string `yaml:"path"`
}

type PolicyConfig struct {
	// ExemptUIDs are task UIDs whose explicit Start/Finish dates are never
	// stripped (hard-constrained or fixed milestone dates).
	ExemptUIDs []string `yaml:"exempt_uids"`
	// DefaultTaskHours is the working-day length assigned to zero-work
	// tasks.
	DefaultTaskHours int `yaml:"default_task_hours"`
}

// Load reads configuration from an optional YAML file and environment
// variables. An explicit path takes precedence over PROJFIX_CONFIG_PATH.
func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level: "info",
		},
		Policy: PolicyConfig{
			DefaultTaskHours: 8,
		},
	}

	if path == "" {
		path = os.Getenv("PROJFIX_CONFIG_PATH")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if level := os.Getenv("PROJFIX_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if historyPath := os.Getenv("PROJFIX_HISTORY_PATH"); historyPath != "" {
		cfg.History.Path = historyPath
	}
	if uids := os.Getenv("PROJFIX_EXEMPT_UIDS"); uids != "" {
		cfg.Policy.ExemptUIDs = splitUIDs(uids)
	}
	if hoursStr := os.Getenv("PROJFIX_DEFAULT_TASK_HOURS"); hoursStr != "" {
		hours, err := strconv.Atoi(hoursStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PROJFIX_DEFAULT_TASK_HOURS: %w", err)
		}
		cfg.Policy.DefaultTaskHours = hours
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func splitUIDs(raw string) []string {
	var uids []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			uids = append(uids, trimmed)
		}
	}
	return uids
}
