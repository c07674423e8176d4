package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	OAuth2Google OAuth2GoogleConfig
	Attendance   AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	FrontendURL    string
	AllowedOrigins []string
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// AttendanceConfig holds the reconciliation policy knobs.
type AttendanceConfig struct {
	// LateCutoff is the local wall-clock time ("HH:MM") at or before which a
	// check-in counts as PRESENT.
	LateCutoff string
	// AutoCheckoutCutoff is the local wall-clock time ("HH:MM") at which open
	// sessions are force-closed.
	AutoCheckoutCutoff string
	// Timezone is the office-local IANA timezone all calendar days are
	// evaluated in.
	Timezone string
	// GeofenceCacheTTL bounds how stale a cached office location may be.
	GeofenceCacheTTL time.Duration
	// CronTickInterval is how often the internal scheduler wakes the jobs.
	CronTickInterval time.Duration
}

func Load() (*Config, error) {
	// A missing .env file is fine in containerised deployments; environment
	// variables still apply.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timegrid-attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	allowedOrigins := getEnvSlice("ALLOWED_ORIGINS")
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins: allowedOrigins,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// OAuth2 Google configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	// Attendance policy configuration
	cacheTTL, err := time.ParseDuration(getEnv("GEOFENCE_CACHE_TTL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_CACHE_TTL: %w", err)
	}
	tickInterval, err := time.ParseDuration(getEnv("CRON_TICK_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CRON_TICK_INTERVAL: %w", err)
	}

	config.Attendance = AttendanceConfig{
		LateCutoff:         getEnv("ATTENDANCE_LATE_CUTOFF", "10:00"),
		AutoCheckoutCutoff: getEnv("ATTENDANCE_AUTO_CHECKOUT_CUTOFF", "16:00"),
		Timezone:           getEnv("ATTENDANCE_TIMEZONE", "Asia/Jakarta"),
		GeofenceCacheTTL:   cacheTTL,
		CronTickInterval:   tickInterval,
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
	if _, err := time.Parse("15:04", c.Attendance.LateCutoff); err != nil {
		return fmt.Errorf("ATTENDANCE_LATE_CUTOFF must be HH:MM: %w", err)
	}
	if _, err := time.Parse("15:04", c.Attendance.AutoCheckoutCutoff); err != nil {
		return fmt.Errorf("ATTENDANCE_AUTO_CHECKOUT_CUTOFF must be HH:MM: %w", err)
	}
	if _, err := time.LoadLocation(c.Attendance.Timezone); err != nil {
		return fmt.Errorf("ATTENDANCE_TIMEZONE is not a valid IANA timezone: %w", err)
	}
	return nil
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
