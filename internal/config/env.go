package config

import (
	"os"
	"strconv"
	"time"
)

// TokenTTLFromEnv reads JWT_EXPIRES_HOURS, defaulting to 24 hours.
func TokenTTLFromEnv() time.Duration {
	if hours := envInt("JWT_EXPIRES_HOURS"); hours > 0 {
		return time.Duration(hours) * time.Hour
	}
	return defaultTokenTTL
}

// CategoryCacheTTLFromEnv reads CATEGORY_CACHE_TTL as a Go duration such as
// "10m". Zero disables expiry.
func CategoryCacheTTLFromEnv() time.Duration {
	raw := os.Getenv("CATEGORY_CACHE_TTL")
	if raw == "" {
		return defaultCategoryCacheTTL
	}

	ttl, err := time.ParseDuration(raw)
	if err != nil || ttl < 0 {
		return defaultCategoryCacheTTL
	}
	return ttl
}

func envInt(key string) int {
	n, _ := strconv.Atoi(os.Getenv(key))
	return n
}

func envFloat(key string) float64 {
	f, _ := strconv.ParseFloat(os.Getenv(key), 64)
	return f
}
