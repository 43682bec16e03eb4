package scheduler

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config controls the reconciliation sweep cadence and batch size.
type Config struct {
	Enabled        bool
	RunInterval    time.Duration
	StaleThreshold time.Duration
	BatchSize      int
}

func DefaultConfig() Config {
	return Config{
		Enabled:        true,
		RunInterval:    time.Minute,
		StaleThreshold: 5 * time.Minute,
		BatchSize:      50,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.StaleThreshold <= 0 {
		c.StaleThreshold = defaults.StaleThreshold
	}
	if c.BatchSize <= 0 {
		c.BatchSize = defaults.BatchSize
	}
	return c
}

func ProvideConfig() Config {
	cfg := DefaultConfig()
	if v := strings.TrimSpace(os.Getenv("RECONCILE_POLL_ENABLED")); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = parsed
		}
	}
	if v := strings.TrimSpace(os.Getenv("RECONCILE_POLL_INTERVAL")); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			cfg.RunInterval = parsed
		}
	}
	if v := strings.TrimSpace(os.Getenv("RECONCILE_STALE_THRESHOLD")); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			cfg.StaleThreshold = parsed
		}
	}
	if v := strings.TrimSpace(os.Getenv("RECONCILE_BATCH_SIZE")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.BatchSize = parsed
		}
	}
	return cfg
}
