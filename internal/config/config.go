package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	// CatalogURL and CatalogKey gate remote catalog access. Both must be set.
	CatalogURL      string
	CatalogKey      string
	LocalStorePath  string
	Brand           string
	WhatsAppNumber  string
	ProductCacheTTL time.Duration
	SessionHashKey  string
	SessionIdleTTL  time.Duration
	CORSOrigins     []string
}

// Load reads an optional .env file and then builds Config from the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: load .env: %v", err)
	}
	return FromEnv()
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		CatalogURL:      os.Getenv("CATALOG_DB_URL"),
		CatalogKey:      os.Getenv("CATALOG_DB_KEY"),
		LocalStorePath:  envOrDefault("LOCAL_STORE_PATH", "storefront.db"),
		Brand:           envOrDefault("BRAND", "mashafy"),
		WhatsAppNumber:  os.Getenv("WHATSAPP_NUMBER"),
		ProductCacheTTL: envDuration("PRODUCT_CACHE_TTL_SECONDS", 5*time.Minute),
		SessionHashKey:  os.Getenv("SESSION_HASH_KEY"),
		SessionIdleTTL:  envDuration("SESSION_IDLE_TTL_SECONDS", 30*time.Minute),
		CORSOrigins:     envList("CORS_ORIGINS", []string{"*"}),
	}
}

// RemoteConfigured reports whether the remote catalog should be used.
// Absence of either value activates mock mode everywhere.
func (c Config) RemoteConfigured() bool {
	return strings.TrimSpace(c.CatalogURL) != "" && strings.TrimSpace(c.CatalogKey) != ""
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
