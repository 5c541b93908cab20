package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Storage   StorageConfig
	Flowace   FlowaceConfig
	Reconcile ReconcileConfig
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"worktrack"`
	SSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string `env:"JWT_SECRET_KEY"`
	AccessExpiration string `env:"JWT_ACCESS_EXPIRATION_TIME" envDefault:"12h"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int      `env:"APP_PORT" envDefault:"8080"`
	Env         string   `env:"APP_ENV" envDefault:"development"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	Timezone    string   `env:"APP_TIMEZONE" envDefault:"UTC"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

type StorageConfig struct {
	BasePath string `env:"STORAGE_BASE_PATH" envDefault:"./storage"`
	BaseURL  string `env:"STORAGE_BASE_URL" envDefault:"http://localhost:8080/files"`
}

// FlowaceConfig configures the activity-monitor client. An empty BaseURL
// disables activity sync.
type FlowaceConfig struct {
	BaseURL      string   `env:"FLOWACE_BASE_URL"`
	TokenURL     string   `env:"FLOWACE_TOKEN_URL"`
	ClientID     string   `env:"FLOWACE_CLIENT_ID"`
	ClientSecret string   `env:"FLOWACE_CLIENT_SECRET"`
	Scopes       []string `env:"FLOWACE_SCOPES" envSeparator:","`
}

func (f FlowaceConfig) Enabled() bool {
	return f.BaseURL != ""
}

type ReconcileConfig struct {
	Concurrency int           `env:"RECONCILE_CONCURRENCY" envDefault:"8"`
	JobInterval time.Duration `env:"RECONCILE_JOB_INTERVAL" envDefault:"1h"`
	// WorkDays lists the weekdays the nightly job reconciles.
	WorkDays []string `env:"RECONCILE_WORK_DAYS" envSeparator:"," envDefault:"mon,tue,wed,thu,fri"`
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// Weekdays parses WorkDays. Names are matched on their first three letters,
// case-insensitively.
func (r ReconcileConfig) Weekdays() ([]time.Weekday, error) {
	seen := make(map[time.Weekday]bool)
	var days []time.Weekday
	for _, name := range r.WorkDays {
		key := strings.ToLower(strings.TrimSpace(name))
		if len(key) >= 3 {
			key = key[:3]
		}
		day, ok := weekdayNames[key]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("at least one work day is required")
	}
	return days, nil
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	} else if err != nil {
		slog.Debug("No .env file found, using process environment")
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if c.Reconcile.Concurrency < 1 {
		return fmt.Errorf("RECONCILE_CONCURRENCY must be at least 1")
	}
	if _, err := c.Reconcile.Weekdays(); err != nil {
		return fmt.Errorf("invalid RECONCILE_WORK_DAYS: %w", err)
	}
	if c.Flowace.Enabled() {
		if c.Flowace.TokenURL == "" || c.Flowace.ClientID == "" || c.Flowace.ClientSecret == "" {
			return fmt.Errorf("FLOWACE_TOKEN_URL, FLOWACE_CLIENT_ID and FLOWACE_CLIENT_SECRET are required when FLOWACE_BASE_URL is set")
		}
	}
	return nil
}

// Location returns the configured business timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
