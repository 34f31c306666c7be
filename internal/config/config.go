package config

import "os"

// Config holds application configuration loaded from environment variables.
type Config struct {
	Addr      string // SCHEMAFORGE_ADDR, default ":8080"
	DBPath    string // SCHEMAFORGE_DB, default "schemaforge.db"
	AuthToken string // SCHEMAFORGE_AUTH_TOKEN, optional
	SyncURL   string // SCHEMAFORGE_SYNC_URL, optional remote persistence base URL
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Addr:      envOr("SCHEMAFORGE_ADDR", ":8080"),
		DBPath:    envOr("SCHEMAFORGE_DB", "schemaforge.db"),
		AuthToken: os.Getenv("SCHEMAFORGE_AUTH_TOKEN"),
		SyncURL:   os.Getenv("SCHEMAFORGE_SYNC_URL"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
