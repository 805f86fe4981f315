package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 720*time.Hour, cfg.CartTTL)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Equal(t, "USD", cfg.Currency.String())
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=storefront sslmode=disable", cfg.PostgresDSN())
}

func TestFromViper_Validation(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
		wantError string
	}{
		{
			name:      "prod without secret",
			overrides: map[string]any{"GO_ENV": "prod"},
			wantError: "JWT_SECRET is required",
		},
		{
			name:      "unknown driver",
			overrides: map[string]any{"DATABASE_DRIVER": "mysql"},
			wantError: `DATABASE_DRIVER must be postgres or sqlite, got "mysql"`,
		},
		{
			name:      "sqlite without path",
			overrides: map[string]any{"DATABASE_DRIVER": "sqlite", "SQLITE_PATH": ""},
			wantError: "SQLITE_PATH is required",
		},
		{
			name:      "half seeded staff",
			overrides: map[string]any{"SEED_STAFF_EMAIL": "staff@example.com"},
			wantError: "SEED_STAFF_EMAIL and SEED_STAFF_PASSWORD must be set together",
		},
		{
			name:      "zero cart ttl",
			overrides: map[string]any{"CART_TTL": "0s"},
			wantError: "CART_TTL must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromViper(newViper(tt.overrides))
			require.EqualError(t, err, tt.wantError)
		})
	}
}

func TestFromViper_Currency(t *testing.T) {
	cfg, err := FromViper(newViper(map[string]any{"STORE_CURRENCY": "eur"}))
	require.NoError(t, err)
	assert.Equal(t, "EUR", cfg.Currency.String())

	_, err = FromViper(newViper(map[string]any{"STORE_CURRENCY": "dollars"}))
	assert.ErrorContains(t, err, "STORE_CURRENCY must be an ISO 4217 code")
}

func TestFromViper_DatabaseURLWins(t *testing.T) {
	cfg, err := FromViper(newViper(map[string]any{
		"DATABASE_URL": "postgres://u:p@db:5432/shop",
		"PORT":         ":9090",
	}))
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@db:5432/shop", cfg.PostgresDSN())
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/shop.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("GO_ENV", "prod")

	cfg, err := Load("testdata/does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "/tmp/shop.db", cfg.SQLitePath)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.False(t, cfg.IsDev())
}
