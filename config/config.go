package config

import (
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config represents the application configuration
type Config struct {
	// HTTP server
	HTTPAddr string `validate:"required"`

	// Outbound request timeout for both storefront upstreams
	RequestTimeout time.Duration `validate:"gt=0"`

	// Storefront bases
	SteamStoreURL string `validate:"required,url"`
	PSNStoreURL   string `validate:"required,url"`

	// How long to back off after the PlayStation store rate limits us
	PSNBlockTime time.Duration `validate:"gte=0"`

	// Redis telemetry stream configuration; empty addr disables publishing
	RedisAddr            string
	RedisDB              int `validate:"gte=0"`
	RedisStream          string
	RedisStreamMaxLength int `validate:"gt=0"`

	// Memcache rate-limit guard; empty addr disables the guard
	MemcacheAddr string

	// Environment
	Environment string `validate:"oneof=development production"`
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamMaxLength, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	requestTimeout, _ := strconv.Atoi(getEnv("REQUEST_TIMEOUT_SECONDS", "10"))
	blockTime, _ := strconv.Atoi(getEnv("PSN_BLOCK_SECONDS", "300"))

	return Config{
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		RequestTimeout:       time.Duration(requestTimeout) * time.Second,
		SteamStoreURL:        getEnv("STEAM_STORE_URL", "https://store.steampowered.com"),
		PSNStoreURL:          getEnv("PSN_STORE_URL", "https://store.playstation.com"),
		PSNBlockTime:         time.Duration(blockTime) * time.Second,
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "listing_resolutions"),
		RedisStreamMaxLength: streamMaxLength,
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", ""),
		Environment:          getEnv("RESOLVER_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for invalid values
func (c Config) Validate() error {
	return validator.New().Struct(c)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
