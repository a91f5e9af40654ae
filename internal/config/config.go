package config

import (
	"os"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string

	// Store configuration
	StoreBackend string // "local" (single-blob file) or "postgres"
	StorePath    string // blob file path for the local backend
	DatabaseURL  string // connection string for the postgres backend
	TablePrefix  string

	// Auth configuration
	SupabaseURL     string
	SupabaseJWKSURL string // Constructed from SupabaseURL + /auth/v1/.well-known/jwks.json
	AuthDisabled    bool   // skip JWT verification (local development only)

	// Logging
	LogDir      string
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	supabaseURL := getEnv("SUPABASE_URL", "")

	// Construct JWKS URL from Supabase URL
	jwksURL := supabaseURL + "/auth/v1/.well-known/jwks.json"

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),

		StoreBackend: getEnv("STORE_BACKEND", "local"),
		StorePath:    getEnv("STORE_PATH", "data/docs-system.json"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		TablePrefix:  getTablePrefix(env),

		SupabaseURL:     supabaseURL,
		SupabaseJWKSURL: jwksURL,
		AuthDisabled:    getEnv("AUTH_DISABLED", getDefaultAuthDisabled(env)) == "true",

		LogDir:      getEnv("LOG_DIR", "logs"),
		LogMaxFiles: 10,
	}
}

// getDefaultAuthDisabled returns the default auth bypass setting based on environment.
// Auth is never bypassed by default outside dev.
func getDefaultAuthDisabled(env string) string {
	if env == "dev" {
		return "true"
	}
	return "false"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	// Auto-generate based on environment
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
