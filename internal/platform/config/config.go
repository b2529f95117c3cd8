package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	StorageDriver string
	RunMigrations bool
	LogLevel      slog.Level
	// RateLimit is a ulule formatted rate, e.g. "100-M". Empty disables limiting.
	RateLimit          string
	CORSAllowedOrigins []string

	// UnappliedFundsAccountID receives payment money that is not applied to an invoice
	// when a request does not name an account itself.
	UnappliedFundsAccountID string
	// OverpaymentPolicy is the default for allocations that do not choose one: "credit" or "reject".
	OverpaymentPolicy string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("UNAPPLIED_FUNDS_ACCOUNT_ID", "")
	v.SetDefault("OVERPAYMENT_POLICY", "credit")

	// Environment variables override defaults and .env values.
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:             v.GetString("PGSQL_URL"),
		Port:                    v.GetString("PORT"),
		IsProduction:            v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:           v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:           strings.ToLower(v.GetString("STORAGE_DRIVER")),
		RunMigrations:           v.GetBool("RUN_MIGRATIONS"),
		RateLimit:               v.GetString("RATE_LIMIT"),
		UnappliedFundsAccountID: v.GetString("UNAPPLIED_FUNDS_ACCOUNT_ID"),
		OverpaymentPolicy:       strings.ToLower(v.GetString("OVERPAYMENT_POLICY")),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", v.GetString("LOG_LEVEL"), err)
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set when STORAGE_DRIVER is %q", StoragePostgres)
		}
	case StorageMemory:
		log.Println("Warning: STORAGE_DRIVER is memory. Data will not survive a restart.")
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q, expected %q or %q", cfg.StorageDriver, StoragePostgres, StorageMemory)
	}

	switch cfg.OverpaymentPolicy {
	case "credit", "reject":
	default:
		return nil, fmt.Errorf("unknown OVERPAYMENT_POLICY %q, expected credit or reject", cfg.OverpaymentPolicy)
	}

	if cfg.UnappliedFundsAccountID == "" {
		log.Println("Warning: UNAPPLIED_FUNDS_ACCOUNT_ID not set. Payments that are not fully applied must name an unapplied account.")
	}

	return cfg, nil
}
