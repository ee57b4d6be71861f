package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the client configuration, loaded once from the environment
// and treated as immutable afterwards.
type Config struct {
	APIBase string
	DataDir string

	GoogleClientID     string
	GoogleClientSecret string
	OAuthPort          string

	HTTPTimeout time.Duration
	RateLimit   float64
	RateBurst   int

	DefaultCurrency string
}

// Load reads the configuration from environment variables, applying
// defaults for everything that is unset. Feature-specific values (the
// Google client ID) are validated at use time, not here.
func Load() Config {
	return Config{
		APIBase:            strings.TrimRight(getEnv("ANYCART_API_BASE", "http://127.0.0.1:8000"), "/"),
		DataDir:            getEnv("ANYCART_DATA_DIR", defaultDataDir()),
		GoogleClientID:     os.Getenv("ANYCART_GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("ANYCART_GOOGLE_CLIENT_SECRET"),
		OAuthPort:          getEnv("ANYCART_OAUTH_PORT", "8765"),
		HTTPTimeout:        getEnvDuration("ANYCART_HTTP_TIMEOUT", 30*time.Second),
		RateLimit:          getEnvFloat("ANYCART_RATE_LIMIT", 10),
		RateBurst:          getEnvInt("ANYCART_RATE_BURST", 20),
		DefaultCurrency:    getEnv("ANYCART_CURRENCY", "EUR"),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".anycart"
	}
	return filepath.Join(home, ".anycart")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
