package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Ledger    LedgerConfig
	Notify    NotifyConfig
	Reminders RemindersConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for the MongoDB stores.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// LedgerConfig contains configuration for the Google Sheets order ledger.
// Leaving the credentials path empty disables the export.
type LedgerConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// NotifyConfig holds the webhook endpoint used for order confirmations and
// collection reminders. An empty URL disables notifications.
type NotifyConfig struct {
	WebhookURL string
	AuthToken  string
}

// RemindersConfig holds scheduler-related settings.
type RemindersConfig struct {
	CronSchedule  string
	Timezone      string
	LookaheadDays int
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "farm"),
		},
		Ledger: LedgerConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_LEDGER_ID"),
		},
		Notify: NotifyConfig{
			WebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
			AuthToken:  os.Getenv("NOTIFY_AUTH_TOKEN"),
		},
		Reminders: RemindersConfig{
			CronSchedule:  getenvWithDefault("REMINDER_CRON_SCHEDULE", "0 7 * * *"),
			Timezone:      getenvWithDefault("TIMEZONE", "Europe/Paris"),
			LookaheadDays: 1,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	// The ledger is optional but must be fully configured when enabled.
	if c.Ledger.CredentialsPath != "" && c.Ledger.SpreadsheetID == "" {
		return errors.New("GOOGLE_SHEET_LEDGER_ID must be provided when sheets credentials are set")
	}

	if c.Reminders.CronSchedule == "" {
		return errors.New("REMINDER_CRON_SCHEDULE must be provided")
	}

	if c.Reminders.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

// LedgerEnabled reports whether the Google Sheets export is configured.
func (c *Config) LedgerEnabled() bool {
	return c.Ledger.CredentialsPath != "" && c.Ledger.SpreadsheetID != ""
}

// NotifyEnabled reports whether the outbound webhook is configured.
func (c *Config) NotifyEnabled() bool {
	return c.Notify.WebhookURL != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
