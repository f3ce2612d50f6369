package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Events
	AMQPURL      string
	AMQPExchange string

	// Export
	CurrencyLabel string
	Locale        language.Tag

	// Local variant
	LocalStorePath string
}

// devJWTSecret is the signing key used when JWT_SECRET is unset. It is public,
// so production refuses to start with it.
const devJWTSecret = "fallback-secret-key-for-dev-only"

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "5000"),
		Env:  getEnv("ENV", "development"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "campuscash"),
		DBPassword: getEnv("DB_PASSWORD", "campuscash"),
		DBName:     getEnv("DB_NAME", "campuscash"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "./data/campuscash-api.db"),

		JWTSecret: getEnv("JWT_SECRET", devJWTSecret),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "campuscash"),

		CurrencyLabel: getEnv("CURRENCY_LABEL", "KSh"),

		LocalStorePath: getEnv("LOCAL_STORE_PATH", "./data/campuscash.db"),
	}

	expStr := getEnv("JWT_EXPIRES_IN", "168h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 168h\n", expStr)
		expDur = 7 * 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	localeStr := getEnv("LOCALE", "en-US")
	tag, err := language.Parse(localeStr)
	if err != nil {
		log.Printf("Warning: invalid LOCALE value '%s', falling back to en-US\n", localeStr)
		tag = language.AmericanEnglish
	}
	config.Locale = tag

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks values that cannot be defaulted safely.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port '%s'", c.Port))
	}

	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		problems = append(problems, fmt.Sprintf("unsupported DB_DRIVER '%s' (use postgres or sqlite)", c.DBDriver))
	}

	if c.Env == "production" && (strings.TrimSpace(c.JWTSecret) == "" || c.JWTSecret == devJWTSecret) {
		problems = append(problems, "JWT_SECRET must be set to a private value in production")
	}

	if c.JWTExpirationDur <= 0 {
		problems = append(problems, "JWT_EXPIRES_IN must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
