// Package config loads the dashboard configuration from the
// environment. Everything the pipeline consumes arrives as plain values;
// fatal problems (no credentials) surface here, not mid-fetch.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LookbackDays is the provider-enforced search window for free-tier
// keys.
const LookbackDays = 29

type Config struct {
	// Provider credentials, in fallback priority order.
	NewsAPIKeys []string
	KeyCooldown time.Duration

	// Gemini settings
	GeminiAPIKey       string
	EnableSummary      bool
	MaxSummaryRequests int // per day, 0 = unlimited

	// Feed selection
	ActiveTopics []string // empty = all built-ins
	CustomTopics []string
	SourceIDs    []string // empty = default selection
	DaysBack     int
	ToneFilter   bool

	// Tunable tables; empty paths mean compiled-in defaults.
	TopicsConfigPath  string
	SourcesConfigPath string

	// Cache settings
	CacheTTL time.Duration

	// App settings
	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		KeyCooldown:        time.Minute,
		MaxSummaryRequests: 10,
		DaysBack:           1,
		CacheTTL:           6 * time.Hour,
	}

	cfg.NewsAPIKeys = loadAPIKeys()
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	cfg.TopicsConfigPath = os.Getenv("WIRE_TOPICS_CONFIG")
	cfg.SourcesConfigPath = os.Getenv("WIRE_SOURCES_CONFIG")

	cfg.ActiveTopics = splitList(os.Getenv("WIRE_TOPICS"))
	cfg.CustomTopics = splitList(os.Getenv("WIRE_CUSTOM_TOPICS"))
	cfg.SourceIDs = splitList(os.Getenv("WIRE_SOURCES"))

	cfg.ToneFilter = os.Getenv("WIRE_TONE_FILTER") == "true"
	cfg.EnableSummary = os.Getenv("WIRE_SUMMARY") == "true"

	if v := os.Getenv("WIRE_DAYS_BACK"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.DaysBack = val
		}
	}
	if cfg.DaysBack > LookbackDays {
		cfg.DaysBack = LookbackDays
	}

	if v := os.Getenv("CACHE_TTL_HOURS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.CacheTTL = time.Duration(val) * time.Hour
		}
	}

	if v := os.Getenv("KEY_COOLDOWN_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.KeyCooldown = time.Duration(val) * time.Second
		}
	}

	if v := os.Getenv("MAX_GEMINI_REQUESTS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.MaxSummaryRequests = val
		}
	}

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

// loadAPIKeys reads NEWS_API_KEYS (comma-separated) or the numbered
// NEWS_API_KEY_1..NEWS_API_KEY_9 variables, in that priority.
func loadAPIKeys() []string {
	if raw := os.Getenv("NEWS_API_KEYS"); raw != "" {
		return splitList(raw)
	}

	var keys []string
	for i := 1; i <= 9; i++ {
		key := os.Getenv(fmt.Sprintf("NEWS_API_KEY_%d", i))
		if key == "" {
			break
		}
		keys = append(keys, key)
	}
	return keys
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if len(c.NewsAPIKeys) == 0 {
		return fmt.Errorf("at least one NewsAPI key is required (NEWS_API_KEYS or NEWS_API_KEY_1)")
	}
	if c.EnableSummary && c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required when WIRE_SUMMARY=true")
	}
	return nil
}
