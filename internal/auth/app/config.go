package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTSecret string // Required: base64-encoded HS256 signing secret

	AccessTokenTTL  time.Duration // Optional: access token lifetime (default: 1h)
	RefreshTokenTTL time.Duration // Optional: refresh token lifetime (default: 7 days)
	OtpTTL          time.Duration // Optional: OTP validity window (default: 5m)

	DatabaseFile string // Optional: path to SQLite database file (default: ./kroya.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	SendGridAPIKey string // Required in prod: SendGrid API key for OTP delivery
	MailFromName   string // Optional: sender display name (default: Kroya)
	MailFromEmail  string // Optional: sender address (default: no-reply@kroya.app)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		JWTSecret: os.Getenv("KROYA_JWT_SECRET"),

		AccessTokenTTL:  getEnvDurationOrDefault("KROYA_ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL: getEnvDurationOrDefault("KROYA_REFRESH_TOKEN_TTL", 7*24*time.Hour),
		OtpTTL:          getEnvDurationOrDefault("KROYA_OTP_TTL", 5*time.Minute),

		DatabaseFile: getEnvOrDefault("KROYA_DATABASE_FILE", "kroya.db"),
		PepperFile:   getEnvOrDefault("KROYA_PEPPER_FILE", "pepper"),

		SendGridAPIKey: os.Getenv("KROYA_SENDGRID_API_KEY"),
		MailFromName:   getEnvOrDefault("KROYA_MAIL_FROM_NAME", "Kroya"),
		MailFromEmail:  getEnvOrDefault("KROYA_MAIL_FROM_EMAIL", "no-reply@kroya.app"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
