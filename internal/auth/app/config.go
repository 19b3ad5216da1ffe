// Package app wires the auth service together: configuration, the database
// driver, the Steam clients, the token services and the HTTP server.
package app

import (
	"os"
	"strconv"
	"time"

	"github.com/zeepkist/gtr-auth/internal/auth/http"
	"github.com/zeepkist/gtr-auth/pkg/jwtx"
)

type Config struct {
	SigningKey string // Required: symmetric key for access token signatures

	AccessTokenTTL  time.Duration // Optional: access token lifetime (default: 5m)
	RefreshTokenTTL time.Duration // Optional: refresh token lifetime (default: 8h)

	DatabaseDriver string // Optional: sqlite or postgres (default: sqlite)
	DatabaseFile   string // Optional: path to SQLite database file (default: ./auth.db)
	DatabaseURL    string // Required for postgres: connection string

	SteamAPIKey string // Required for game logins: Steam Web API key
	SteamAppID  int    // Optional: app the session tickets are issued for
	SteamRealm  string // Optional: public base URL used as OpenID realm (default: http://localhost:<port>)

	MinimumModVersion string // Optional: oldest mod build allowed to authenticate (default: 0.20.5)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		SigningKey: os.Getenv("AUTH_SIGNING_KEY"),

		AccessTokenTTL:  getEnvDurationOrDefault("ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL: getEnvDurationOrDefault("REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),

		DatabaseDriver: getEnvOrDefault("DATABASE_DRIVER", "sqlite"),
		DatabaseFile:   getEnvOrDefault("DATABASE_FILE", "auth.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),

		SteamAPIKey: os.Getenv("STEAM_API_KEY"),
		SteamAppID:  getEnvIntOrDefault("STEAM_APP_ID", 1440670), // Zeepkist
		SteamRealm:  os.Getenv("STEAM_REALM"),

		MinimumModVersion: getEnvOrDefault("MINIMUM_MOD_VERSION", http.DefaultMinimumModVersion),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.SteamRealm == "" {
		cfg.SteamRealm = "http://localhost:" + strconv.Itoa(cfg.Port)
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
