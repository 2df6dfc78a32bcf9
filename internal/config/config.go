package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Log      LogConfig
	Redis    RedisConfig
	Business BusinessConfig
	Cron     CronConfig

	// EnvFileLoaded is false when no .env file was found
	EnvFileLoaded bool
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowQuery       time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// LogConfig holds zap logger settings
type LogConfig struct {
	Level  string
	Format string
}

// RedisConfig holds the offer cache connection. An empty Addr disables the cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	OfferTTL time.Duration
}

// BusinessConfig holds tunable business rules
type BusinessConfig struct {
	CommissionRatePercent float64
	StaleLeadDays         int
}

// CronConfig holds job schedules in standard five-field cron syntax
type CronConfig struct {
	TokenCleanup string
	StaleLeads   string
}

const (
	defaultJWTSecret        = "default_secret"
	defaultJWTRefreshSecret = "default_refresh_secret"
)

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	envLoaded := godotenv.Load() == nil

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:       appMode,
		Port:          getEnv("PORT", "3000"),
		Database:      loadDatabaseConfig(appMode),
		JWT:           loadJWTConfig(appMode),
		Cookie:        loadCookieConfig(appMode),
		Log:           loadLogConfig(appMode),
		Redis:         loadRedisConfig(),
		Business:      loadBusinessConfig(),
		Cron:          loadCronConfig(),
		EnvFileLoaded: envLoaded,
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Set global config
	AppConfig = config
	return config, nil
}

// Validate rejects settings the service cannot run with
func (c *Config) Validate() error {
	if c.Business.CommissionRatePercent < 0 {
		return fmt.Errorf("invalid COMMISSION_RATE_PERCENT: %v", c.Business.CommissionRatePercent)
	}
	if c.Business.StaleLeadDays < 1 {
		return fmt.Errorf("invalid STALE_LEAD_DAYS: %d", c.Business.StaleLeadDays)
	}
	if c.JWT.AccessTokenMins < 1 || c.JWT.RefreshTokenDays < 1 {
		return fmt.Errorf("token lifetimes must be positive")
	}
	if c.IsProd() && (c.JWT.Secret == defaultJWTSecret || c.JWT.RefreshSecret == defaultJWTRefreshSecret) {
		return fmt.Errorf("PROD_JWT_SECRET and PROD_JWT_REFRESH_SECRET must be set in prod mode")
	}
	return nil
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "gcbp_mortgage"),

		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 100),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
		ConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 60)) * time.Minute,
		SlowQuery:       time.Duration(getEnvInt("DB_SLOW_QUERY_MS", 200)) * time.Millisecond,
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := modePrefix(mode)

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", defaultJWTSecret),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", defaultJWTRefreshSecret),
		AccessTokenMins:  getEnvInt("ACCESS_TOKEN_MINUTES", 15),
		RefreshTokenDays: getEnvInt("REFRESH_TOKEN_DAYS", 7),
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	secure, _ := strconv.ParseBool(getEnv(modePrefix(mode)+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

func loadLogConfig(mode string) LogConfig {
	level, format := "debug", "console"
	if mode == "prod" {
		level, format = "info", "json"
	}
	return LogConfig{
		Level:  getEnv("LOG_LEVEL", level),
		Format: getEnv("LOG_FORMAT", format),
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
		OfferTTL: time.Duration(getEnvInt("OFFER_CACHE_TTL_MINUTES", 10)) * time.Minute,
	}
}

func loadBusinessConfig() BusinessConfig {
	rate, err := strconv.ParseFloat(getEnv("COMMISSION_RATE_PERCENT", "0.5"), 64)
	if err != nil {
		rate = 0.5
	}
	return BusinessConfig{
		CommissionRatePercent: rate,
		StaleLeadDays:         getEnvInt("STALE_LEAD_DAYS", 7),
	}
}

func loadCronConfig() CronConfig {
	return CronConfig{
		TokenCleanup: getEnv("CRON_TOKEN_CLEANUP", "0 3 * * *"),
		StaleLeads:   getEnv("CRON_STALE_LEADS", "30 8 * * *"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return n
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origins
		return "https://app.gcbp.com"
	}
	return origins
}
