package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingServiceKey is returned when BUS_API_KEY is not set
var ErrMissingServiceKey = errors.New("BUS_API_KEY is not set")

// Config holds all configuration for the collectors and the lookup API
type Config struct {
	// Provider credentials
	ServiceKey    string
	ArrServiceKey string

	// Provider endpoints
	ExpressInfoURL string
	ExpressArrURL  string
	IntercityURL   string
	AirportURL     string
	HTTPTimeout    time.Duration

	// Storage
	StorageBackend string // file | sqlite | postgres
	DataDir        string
	SQLitePath     string
	PostgresURL    string

	// Cache
	CacheBackend  string // memory | redis | none
	CacheSize     int
	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Notifications
	AMQPURL   string
	AMQPQueue string

	// Collector behaviour
	ExpressReplace       bool
	EnforceRunWindow     bool
	StaleAfter           time.Duration
	CollectorProfilePath string
	Profile              Profile

	// Lookup API
	APIAddr        string
	AllowedOrigins []string

	LogLevel string
}

// Load reads configuration from .env files and environment variables with
// sensible defaults, then applies the optional YAML collector profile.
func Load() (*Config, error) {
	// Missing .env files are fine; real environment variables still apply
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	serviceKey := getEnv("BUS_API_KEY", "")

	cfg := &Config{
		// Provider credentials
		ServiceKey:    serviceKey,
		ArrServiceKey: getEnv("BUS_ARR_API_KEY", serviceKey),

		// Provider endpoints
		ExpressInfoURL: getEnv("EXPRESS_INFO_URL", "http://apis.data.go.kr/1613000/ExpBusInfoService"),
		ExpressArrURL:  getEnv("EXPRESS_ARR_URL", "http://apis.data.go.kr/1613000/ExpBusArrInfoService"),
		IntercityURL:   getEnv("INTERCITY_URL", "http://apis.data.go.kr/1613000/SuburbsBusInfoService"),
		AirportURL:     getEnv("AIRPORT_URL", "http://apis.data.go.kr/B551177/BusInformation"),
		HTTPTimeout:    time.Duration(getEnvInt("HTTP_TIMEOUT", 0)) * time.Second,

		// Storage
		StorageBackend: getEnv("STORAGE_BACKEND", "file"),
		DataDir:        getEnv("DATA_DIR", "data"),
		SQLitePath:     getEnv("SQLITE_DATABASE", "data/snapshots.db"),
		PostgresURL:    getEnv("DATABASE_URL", ""),

		// Cache
		CacheBackend:  getEnv("CACHE_BACKEND", "memory"),
		CacheSize:     getEnvInt("CACHE_SIZE", 32),
		CacheTTL:      time.Duration(getEnvInt("CACHE_TTL_MINUTES", 60)) * time.Minute,
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		// Notifications
		AMQPURL:   getEnv("AMQP_URL", ""),
		AMQPQueue: getEnv("AMQP_QUEUE", "bus-snapshots"),

		// Collector behaviour
		ExpressReplace:       getEnvBool("EXPRESS_REPLACE", false),
		EnforceRunWindow:     getEnvBool("INTERCITY_ENFORCE_WINDOW", false),
		StaleAfter:           time.Duration(getEnvInt("STALE_AFTER_HOURS", 48)) * time.Hour,
		CollectorProfilePath: getEnv("COLLECTOR_CONFIG", "collector.yml"),

		// Lookup API
		APIAddr:        getEnv("API_ADDR", ":8081"),
		AllowedOrigins: getEnvList("CORS_ORIGINS", []string{"*"}),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	profile, err := LoadProfile(cfg.CollectorProfilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load collector profile: %w", err)
	}
	cfg.Profile = profile

	return cfg, nil
}

// RequireServiceKey is the collectors' pre-flight check
func (c *Config) RequireServiceKey() error {
	if c.ServiceKey == "" {
		return ErrMissingServiceKey
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable, dropping empty entries
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
