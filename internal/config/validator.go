package config

import (
	"fmt"
	"strings"
)

// Validate checks that all required settings are present and consistent.
// Every missing variable is reported in a single error.
func (c *Config) Validate() error {
	var missing []string

	if c.Auth.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.Storage == StoragePostgres && c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	switch c.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unsupported STORAGE %q (want %s or %s)", c.Storage, StoragePostgres, StorageMemory)
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid HTTP_PORT %d", c.HTTP.Port)
	}
	if c.Pagination.DefaultPerPage < 1 || c.Pagination.MaxPerPage < c.Pagination.DefaultPerPage {
		return fmt.Errorf("invalid pagination limits: default %d, max %d",
			c.Pagination.DefaultPerPage, c.Pagination.MaxPerPage)
	}

	return nil
}
