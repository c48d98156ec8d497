package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"bellezza-backend/utils"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds every runtime setting of the backend.
type Config struct {
	Env      string
	Port     string
	LogLevel string

	DBDriver string
	DBURL    string

	JWTSecret string
	JWTExpiry time.Duration

	TimeZone string
	Location *time.Location

	CacheBackend     string
	RedisURL         string
	CatalogCacheTTL  time.Duration
	ResponseCacheTTL time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string

	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string

	ReminderSchedule string
	PurgeSchedule    string
	RetentionDays    int

	MediaRoot   string
	MaxUploadMB int64

	AllowedOrigins  []string
	AuthRateLimit   int64
	AuthRatePeriod  time.Duration
	DefaultPageSize int
}

// Load reads the environment (and .env when present) into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment.
func FromEnv() (*Config, error) {
	var err error
	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DBDriver:          getEnv("DB_DRIVER", "postgres"),
		DBURL:             os.Getenv("DB_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TimeZone:          getEnv("TIME_ZONE", "Europe/Moscow"),
		CacheBackend:      getEnv("CACHE_BACKEND", "memory"),
		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379/2"),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPUsername:      os.Getenv("SMTP_USERNAME"),
		SMTPPassword:      os.Getenv("SMTP_PASSWORD"),
		FromEmail:         getEnv("DEFAULT_FROM_EMAIL", "Bellezza Salon <bellezza@example.com>"),
		TwilioAccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
		ReminderSchedule:  getEnv("REMINDER_SCHEDULE", "0 8 * * *"),
		PurgeSchedule:     getEnv("PURGE_SCHEDULE", "0 0 1 * *"),
		MediaRoot:         getEnv("MEDIA_ROOT", "./media"),
	}

	if cfg.JWTExpiry, err = getDuration("JWT_EXPIRY", 60*time.Minute); err != nil {
		return nil, err
	}
	if cfg.CatalogCacheTTL, err = getDuration("CATALOG_CACHE_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ResponseCacheTTL, err = getDuration("RESPONSE_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.AuthRatePeriod, err = getDuration("AUTH_RATE_PERIOD", time.Minute); err != nil {
		return nil, err
	}
	if cfg.SMTPPort, err = getInt("SMTP_PORT", 25); err != nil {
		return nil, err
	}
	if cfg.RetentionDays, err = getInt("RETENTION_DAYS", 365); err != nil {
		return nil, err
	}
	if cfg.DefaultPageSize, err = getInt("PAGE_SIZE", 15); err != nil {
		return nil, err
	}
	maxUpload, err := getInt("MAX_UPLOAD_MB", 5)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadMB = int64(maxUpload)
	authLimit, err := getInt("AUTH_RATE_LIMIT", 10)
	if err != nil {
		return nil, err
	}
	cfg.AuthRateLimit = int64(authLimit)

	cfg.AllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"))

	if cfg.Location, err = time.LoadLocation(cfg.TimeZone); err != nil {
		return nil, fmt.Errorf("config: invalid TIME_ZONE %q: %w", cfg.TimeZone, err)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("config: JWT_SECRET is required in production")
		}
		cfg.JWTSecret = utils.GenerateJWTSecret()
		logrus.Warn("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("config: DB_URL is required for the postgres driver")
		}
	case "sqlite":
		if cfg.DBURL == "" {
			cfg.DBURL = "bellezza.db"
		}
	default:
		return nil, fmt.Errorf("config: unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	switch cfg.CacheBackend {
	case "memory", "redis", "none":
	default:
		return nil, fmt.Errorf("config: unsupported CACHE_BACKEND %q", cfg.CacheBackend)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != ""
}

func (c *Config) SMSEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioPhoneNumber != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
