package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"khanmedical/m/domain"
)

const (
	defaultPort   = "8080"
	defaultSecret = "dev_secret"
)

// ErrDefaultSecret is returned when production would sign tokens with the
// development secret.
var ErrDefaultSecret = errors.New("config: SECRET must be set in production")

// Config holds application configuration values.
type Config struct {
	AppEnv         string        `envconfig:"APP_ENV" default:"development"`
	Secret         string        `envconfig:"SECRET" default:"dev_secret"`
	HTTPPort       string        `envconfig:"HTTP_PORT" default:"8080"`
	DatabaseDriver string        `envconfig:"DATABASE_DRIVER" default:"sqlite"`
	DatabaseDSN    string        `envconfig:"DATABASE_DSN" default:"kmc.db"`
	StorageKey     string        `envconfig:"STORAGE_KEY" default:"KHAN_MEDICAL_DATA"`
	LogFormat      string        `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	MetricsEnabled bool          `envconfig:"METRICS_ENABLED" default:"true"`
	SeedCSV        string        `envconfig:"SEED_CSV"`
	TokenTTL       time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	ShopName    string `envconfig:"SHOP_NAME" default:"KHAN MEDICAL COMPLEX"`
	ShopAddress string `envconfig:"SHOP_ADDRESS" default:"Peshawar Road, Main Market"`
	ShopPhone   string `envconfig:"SHOP_PHONE" default:"+92 123 4567890"`

	// Warnings collects values that were replaced by defaults. They are
	// logged once a logger exists.
	Warnings []string `ignored:"true"`
}

// Load reads .env (if present) and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	// Validate that port is numeric.
	if _, err := strconv.Atoi(cfg.HTTPPort); err != nil {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("invalid HTTP_PORT value %q, defaulting to %s", cfg.HTTPPort, defaultPort))
		cfg.HTTPPort = defaultPort
	}
	if cfg.IsProduction() && (cfg.Secret == "" || cfg.Secret == defaultSecret) {
		return Config{}, ErrDefaultSecret
	}
	switch cfg.DatabaseDriver {
	case "sqlite", "pgx":
	default:
		return Config{}, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	return cfg, nil
}

// IsProduction reports whether strict security headers apply.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Shop is the identity printed on receipts.
func (c Config) Shop() domain.Shop {
	return domain.Shop{Name: c.ShopName, Address: c.ShopAddress, Phone: c.ShopPhone}
}

// NewLogger builds the application logger writing to stdout.
func NewLogger(cfg Config) *slog.Logger {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
