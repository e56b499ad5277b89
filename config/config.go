package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Saleor  SaleorConfig
	Storage StorageConfig
	Redis   RedisConfig
	Session SessionConfig
	Search  SearchConfig
	CORS    CORSConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type SaleorConfig struct {
	APIURL  string
	Channel string
	Timeout time.Duration
}

// StorageConfig selects the backend for the persisted storefront records.
// Backend is "file" or "redis".
type StorageConfig struct {
	Backend string
	Dir     string
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

type SessionConfig struct {
	RefreshInterval time.Duration
}

type SearchConfig struct {
	DebounceDelay time.Duration
	PageSize      int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// DefaultChannel is used when no channel is configured.
const DefaultChannel = "default-channel"

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Saleor: SaleorConfig{
			APIURL:  getEnv("SALEOR_API_URL", "http://localhost:8000/graphql/"),
			Channel: getEnv("DEFAULT_CHANNEL", DefaultChannel),
			Timeout: parseDuration(getEnv("SALEOR_TIMEOUT", "30s"), 30*time.Second),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", "file"),
			Dir:     getEnv("STORAGE_DIR", ".storefront"),
		},
		Redis: RedisConfig{
			Host:      getEnv("REDIS_HOST", "localhost"),
			Port:      getEnv("REDIS_PORT", "6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        parseInt(getEnv("REDIS_DB", "0"), 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "storefront"),
		},
		Session: SessionConfig{
			RefreshInterval: parseDuration(getEnv("SESSION_REFRESH_INTERVAL", "30m"), 30*time.Minute),
		},
		Search: SearchConfig{
			DebounceDelay: parseDuration(getEnv("SEARCH_DEBOUNCE_DELAY", "300ms"), 300*time.Millisecond),
			PageSize:      parseInt(getEnv("SEARCH_PAGE_SIZE", "20"), 20),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
	}

	return config, nil
}

func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
