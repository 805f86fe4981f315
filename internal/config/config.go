package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"
)

// Config is the whole application configuration.
type Config struct {
	Port string

	DatabaseDriver string // postgres or sqlite
	DatabaseURL    string // overrides the POSTGRES_* parts when set

	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	SQLitePath string

	JWTSecret      string
	AccessTokenTTL time.Duration

	CartTTL time.Duration

	RabbitMQURL string // empty disables order events
	// ISO 4217 code stamped on published order events
	Currency currency.Unit

	LogLevel string
	GoEnv    string // dev/prod

	SeedStaffEmail    string
	SeedStaffPassword string
}

const devJWTSecret = "dev_secret_change_me"

func (c Config) IsDev() bool {
	return c.GoEnv == "dev"
}

// PostgresDSN builds the DSN from the POSTGRES_* keys unless DATABASE_URL is set.
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

// Load reads an optional .env file and then the environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// a missing .env is normal outside local development
		_ = godotenv.Load(f)
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	return FromViper(v)
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("POSTGRES_DB", "storefront")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "storefront.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("ACCESS_TOKEN_TTL", "15m")
	v.SetDefault("CART_TTL", "720h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("STORE_CURRENCY", "USD")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GO_ENV", "dev")
	v.SetDefault("SEED_STAFF_EMAIL", "")
	v.SetDefault("SEED_STAFF_PASSWORD", "")
}

// FromViper builds and validates a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port: strings.TrimPrefix(v.GetString("PORT"), ":"),

		DatabaseDriver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseURL:    v.GetString("DATABASE_URL"),

		PostgresHost:     v.GetString("POSTGRES_HOST"),
		PostgresPort:     v.GetInt("POSTGRES_PORT"),
		PostgresUser:     v.GetString("POSTGRES_USER"),
		PostgresPassword: v.GetString("POSTGRES_PASSWORD"),
		PostgresDB:       v.GetString("POSTGRES_DB"),
		PostgresSSLMode:  v.GetString("POSTGRES_SSLMODE"),

		SQLitePath: v.GetString("SQLITE_PATH"),

		JWTSecret:      v.GetString("JWT_SECRET"),
		AccessTokenTTL: v.GetDuration("ACCESS_TOKEN_TTL"),
		CartTTL:        v.GetDuration("CART_TTL"),

		RabbitMQURL: v.GetString("RABBITMQ_URL"),

		LogLevel: strings.ToLower(v.GetString("LOG_LEVEL")),
		GoEnv:    v.GetString("GO_ENV"),

		SeedStaffEmail:    v.GetString("SEED_STAFF_EMAIL"),
		SeedStaffPassword: v.GetString("SEED_STAFF_PASSWORD"),
	}

	if cfg.Port == "" {
		return Config{}, errors.New("PORT is required")
	}
	switch cfg.DatabaseDriver {
	case "postgres":
		if cfg.DatabaseURL == "" && (cfg.PostgresHost == "" || cfg.PostgresDB == "") {
			return Config{}, errors.New("POSTGRES_HOST and POSTGRES_DB are required when DATABASE_URL is empty")
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			return Config{}, errors.New("SQLITE_PATH is required")
		}
	default:
		return Config{}, fmt.Errorf("DATABASE_DRIVER must be postgres or sqlite, got %q", cfg.DatabaseDriver)
	}
	if cfg.JWTSecret == "" {
		if !cfg.IsDev() {
			return Config{}, errors.New("JWT_SECRET is required")
		}
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.AccessTokenTTL <= 0 {
		return Config{}, errors.New("ACCESS_TOKEN_TTL must be positive")
	}
	if cfg.CartTTL <= 0 {
		return Config{}, errors.New("CART_TTL must be positive")
	}
	cur, err := currency.ParseISO(v.GetString("STORE_CURRENCY"))
	if err != nil {
		return Config{}, fmt.Errorf("STORE_CURRENCY must be an ISO 4217 code: %w", err)
	}
	cfg.Currency = cur

	if (cfg.SeedStaffEmail == "") != (cfg.SeedStaffPassword == "") {
		return Config{}, errors.New("SEED_STAFF_EMAIL and SEED_STAFF_PASSWORD must be set together")
	}

	return cfg, nil
}
