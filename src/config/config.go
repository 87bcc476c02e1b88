package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MaxForexTimeout caps the outbound forex call so a slow provider can never
// hold a calculation request open for long.
const MaxForexTimeout = 8 * time.Second

// AppConfig holds all configuration for the application.
// The values are loaded from environment variables.
type AppConfig struct {
	// Core settings
	Port           string
	AppEnv         string
	DatabasePath   string
	MigrationsPath string
	LogLevel       string

	// Forex provider settings
	ForexAPIBaseURL string
	ForexTimeout    time.Duration
	ForexCacheTTL   time.Duration

	// Optional shared cache for forex rates
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// HTTP surface
	AllowedOrigins     []string
	RateLimitPerSecond float64
	RateLimitBurst     int
	MaxBodyBytes       int64
}

// Cfg is a global instance of the AppConfig, set by LoadConfig.
var Cfg *AppConfig

// IsProduction reports whether debugging details must be kept out of responses.
func (c *AppConfig) IsProduction() bool {
	switch strings.ToLower(strings.TrimSpace(c.AppEnv)) {
	case "production", "prod":
		return true
	}
	return false
}

// LoadConfig loads configuration from environment variables or a .env file
// and stores it in Cfg.
func LoadConfig() *AppConfig {
	// 1. Try loading from the current directory (standard behavior)
	errEnv := godotenv.Load()

	// 2. If not found, try the parent directory
	if errEnv != nil {
		errEnv = godotenv.Load("../.env")
	}

	if errEnv != nil {
		if os.IsNotExist(errEnv) {
			log.Println("Info: No .env file found in current or parent directory. Relying on OS environment variables.")
		} else {
			log.Printf("Warning: Error loading .env file: %v. Relying on OS environment variables.", errEnv)
		}
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")
	Cfg = FromEnv()

	log.Printf("Configuration loaded: Port=%s, Env=%s, LogLevel=%s, DBPath=%s, ForexAPI=%s, Redis=%t",
		Cfg.Port, Cfg.AppEnv, Cfg.LogLevel, Cfg.DatabasePath, Cfg.ForexAPIBaseURL, Cfg.RedisAddr != "")
	return Cfg
}

// FromEnv builds an AppConfig from the current process environment only.
func FromEnv() *AppConfig {
	forexTimeout := getEnvAsDuration("FOREX_TIMEOUT", MaxForexTimeout)
	if forexTimeout <= 0 || forexTimeout > MaxForexTimeout {
		log.Printf("WARNING: FOREX_TIMEOUT %s outside (0, %s], using %s", forexTimeout, MaxForexTimeout, MaxForexTimeout)
		forexTimeout = MaxForexTimeout
	}

	rateLimit, err := strconv.ParseFloat(getEnv("RATE_LIMIT_PER_SECOND", "10"), 64)
	if err != nil || rateLimit <= 0 {
		log.Printf("WARNING: Invalid RATE_LIMIT_PER_SECOND, using default 10. Error: %v", err)
		rateLimit = 10
	}

	maxBodyBytes, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBodyBytes <= 0 {
		log.Printf("WARNING: Invalid MAX_BODY_BYTES, using default 1MB. Error: %v", err)
		maxBodyBytes = 1 << 20
	}

	return &AppConfig{
		// Core
		Port:           getEnv("PORT", "8080"),
		AppEnv:         getEnv("APP_ENV", "development"),
		DatabasePath:   getEnv("DATABASE_PATH", "./tariff_impact.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "db/migrations"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),

		// Forex
		ForexAPIBaseURL: strings.TrimRight(getEnv("FOREX_API_BASE_URL", "https://api.frankfurter.app"), "/"),
		ForexTimeout:    forexTimeout,
		ForexCacheTTL:   getEnvAsDuration("FOREX_CACHE_TTL", 24*time.Hour),

		// Redis
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// HTTP
		AllowedOrigins:     getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
		RateLimitPerSecond: rateLimit,
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 30),
		MaxBodyBytes:       maxBodyBytes,
	}
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves an environment variable as an integer or returns a fallback.
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a fallback.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}

// getEnvAsList parses a comma-separated variable, dropping empty entries.
func getEnvAsList(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if strings.TrimSpace(valueStr) == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
