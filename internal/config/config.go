package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Fetch boundary
	MaxContentBytes int64
	FetchTimeout    time.Duration

	// CORS: comma-separated origins or *
	CORSAllowOrigins string

	// Webhook delivery
	WebhookURL        string
	WebhookSecret     string
	WebhookMaxRetries int
	WebhookRetryDelay time.Duration

	// Airtable sync
	AirtableToken  string
	AirtableBaseID string
	AirtableTable  string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8000"),

		MaxContentBytes: envInt64("MAX_CONTENT_SIZE", 10*1024*1024), // 10MB
		FetchTimeout:    envDuration("FETCH_TIMEOUT", 30*time.Second),

		CORSAllowOrigins: envOr("CORS_ALLOW_ORIGINS", "*"),

		WebhookURL:        os.Getenv("WEBHOOK_URL"),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),
		WebhookMaxRetries: envInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookRetryDelay: envDuration("WEBHOOK_RETRY_DELAY", 2*time.Second),

		AirtableToken:  os.Getenv("AIRTABLE_PERSONAL_ACCESS_TOKEN"),
		AirtableBaseID: os.Getenv("AIRTABLE_BASE_ID"),
		AirtableTable:  os.Getenv("AIRTABLE_TABLE_NAME"),
	}

	if cfg.MaxContentBytes <= 0 {
		cfg.MaxContentBytes = 10 * 1024 * 1024
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}
	if cfg.WebhookMaxRetries <= 0 {
		cfg.WebhookMaxRetries = 3
	}
	if cfg.WebhookRetryDelay <= 0 {
		cfg.WebhookRetryDelay = 2 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if c.WebhookURL != "" && c.WebhookSecret == "" {
		return fmt.Errorf("WEBHOOK_SECRET is required when WEBHOOK_URL is set")
	}
	airtableSet := c.AirtableToken != "" || c.AirtableBaseID != "" || c.AirtableTable != ""
	airtableComplete := c.AirtableToken != "" && c.AirtableBaseID != "" && c.AirtableTable != ""
	if airtableSet && !airtableComplete {
		return fmt.Errorf("AIRTABLE_PERSONAL_ACCESS_TOKEN, AIRTABLE_BASE_ID and AIRTABLE_TABLE_NAME must be set together")
	}
	return nil
}

// AllowedOrigins returns the CORS origin list.
func (c Config) AllowedOrigins() []string {
	if strings.TrimSpace(c.CORSAllowOrigins) == "*" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(c.CORSAllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// AirtableConfigured reports whether all Airtable settings are present.
func (c Config) AirtableConfigured() bool {
	return c.AirtableToken != "" && c.AirtableBaseID != "" && c.AirtableTable != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
