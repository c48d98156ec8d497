package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TIME_ZONE", "UTC")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "bellezza.db", cfg.DBURL)
	assert.Equal(t, 60*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, 15*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, 365, cfg.RetentionDays)
	assert.Equal(t, 15, cfg.DefaultPageSize)
	assert.Equal(t, "0 8 * * *", cfg.ReminderSchedule)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, time.UTC, cfg.Location)
}

func TestFromEnv_GeneratesDevelopmentSecret(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TIME_ZONE", "UTC")

	first, err := FromEnv()
	require.NoError(t, err)
	second, err := FromEnv()
	require.NoError(t, err)

	assert.Len(t, first.JWTSecret, 44)
	assert.NotEqual(t, first.JWTSecret, second.JWTSecret)

	t.Setenv("JWT_SECRET", "fixed")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "fixed", cfg.JWTSecret)
}

func TestFromEnv_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TIME_ZONE", "UTC")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestFromEnv_RejectsBadValues(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("TIME_ZONE", "UTC")

	t.Setenv("CATALOG_CACHE_TTL", "forever")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "CATALOG_CACHE_TTL")

	t.Setenv("CATALOG_CACHE_TTL", "")
	t.Setenv("CACHE_BACKEND", "memcached")
	_, err = FromEnv()
	assert.ErrorContains(t, err, "CACHE_BACKEND")

	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("DB_DRIVER", "oracle")
	_, err = FromEnv()
	assert.ErrorContains(t, err, "DB_DRIVER")
}

func TestFromEnv_Lists(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("TIME_ZONE", "UTC")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,,")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC1")
	t.Setenv("TWILIO_AUTH_TOKEN", "tok")
	t.Setenv("TWILIO_PHONE_NUMBER", "+15005550006")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.SMSEnabled())
	assert.False(t, cfg.EmailEnabled())
}
