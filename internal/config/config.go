package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Addr           string   // CRM_ADDR, default ":8080"
	DBDriver       string   // CRM_DB_DRIVER, "sqlite" (default) or "postgres"
	DatabaseURL    string   // CRM_DATABASE_URL, default "salesdesk.db"
	APIKey         string   // CRM_API_KEY, optional
	AdminEmails    []string // CRM_ADMIN_EMAILS, comma separated
	ImportIndustry string   // CRM_IMPORT_DEFAULT_INDUSTRY
	SeedDemoData   bool     // CRM_SEED
}

// DefaultImportIndustry is stamped on leads created by the CSV importer.
const DefaultImportIndustry = "HENKILÖSTÖVUOKRAUS"

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present; real
// environment variables take precedence over it.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:           envOr("CRM_ADDR", ":8080"),
		DBDriver:       envOr("CRM_DB_DRIVER", "sqlite"),
		DatabaseURL:    envOr("CRM_DATABASE_URL", "salesdesk.db"),
		APIKey:         os.Getenv("CRM_API_KEY"),
		AdminEmails:    splitList(os.Getenv("CRM_ADMIN_EMAILS")),
		ImportIndustry: envOr("CRM_IMPORT_DEFAULT_INDUSTRY", DefaultImportIndustry),
		SeedDemoData:   isTrue(os.Getenv("CRM_SEED")),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isTrue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
