package config

import (
	"os"
	"strconv"
	"time"

	"github.com/Kenzousimba/IphoneVintedbot/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Telegram configuration (required)
	TelegramBotToken string
	TelegramChatID   string

	// Catalog search configuration
	CatalogBaseURL string
	PriceTo        int
	CheckInterval  time.Duration

	// Ledger configuration
	LedgerPath   string
	MemcacheAddr string

	// Redis fan-out configuration (optional, disabled when RedisAddr is empty)
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamMaxLength int

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	priceTo, _ := strconv.Atoi(getEnv("PRICE_TO", "200"))
	checkInterval, _ := strconv.Atoi(getEnv("CHECK_INTERVAL_SECONDS", "90"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	redisStreamMaxLength, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))

	return Config{
		TelegramBotToken:     getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:       getEnv("TELEGRAM_CHAT_ID", ""),
		CatalogBaseURL:       getEnv("CATALOG_BASE_URL", "https://www.vinted.fr/catalog"),
		PriceTo:              priceTo,
		CheckInterval:        time.Duration(checkInterval) * time.Second,
		LedgerPath:           getEnv("LEDGER_PATH", "seen_vinted.db"),
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", ""),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "vinted_findings"),
		RedisStreamMaxLength: redisStreamMaxLength,
		Environment:          getEnv("MONITOR_ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration is usable. Missing Telegram
// credentials are a fatal startup error.
func (c *Config) Validate() error {
	if c.TelegramBotToken == "" {
		return errors.NewConfiguration("TELEGRAM_BOT_TOKEN is not set", nil)
	}
	if c.TelegramChatID == "" {
		return errors.NewConfiguration("TELEGRAM_CHAT_ID is not set", nil)
	}
	if c.CatalogBaseURL == "" {
		return errors.NewConfiguration("CATALOG_BASE_URL must not be empty", nil)
	}
	if c.CheckInterval <= 0 {
		return errors.NewConfiguration("CHECK_INTERVAL_SECONDS must be positive", nil)
	}
	if c.PriceTo <= 0 {
		return errors.NewConfiguration("PRICE_TO must be positive", nil)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
