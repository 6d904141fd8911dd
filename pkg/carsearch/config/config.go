// Package config reads service configuration from the environment.
package config

import (
	"github.com/spf13/viper"
)

// Config holds everything the serve command needs. Every field maps to one
// environment variable; absence of upstream credentials is tolerated, the
// fallback generator takes over silently.
type Config struct {
	ServerAddress string // SERVER_ADDRESS, default ":8080"
	CatalogAPIURL string // CATALOG_API_URL, empty disables the upstream
	CatalogAPIKey string // CATALOG_API_KEY
	DatabaseURL   string // DATABASE_URL, empty disables the persistence path
	RedisURL      string // REDIS_URL, empty selects the in-memory cache
	SessionSecret string // SESSION_SECRET
}

// Load reads the environment via viper.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("SESSION_SECRET", "carsearch-dev-secret")

	return Config{
		ServerAddress: v.GetString("SERVER_ADDRESS"),
		CatalogAPIURL: v.GetString("CATALOG_API_URL"),
		CatalogAPIKey: v.GetString("CATALOG_API_KEY"),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		RedisURL:      v.GetString("REDIS_URL"),
		SessionSecret: v.GetString("SESSION_SECRET"),
	}
}
