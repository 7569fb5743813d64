// Package config loads service configuration from the environment, an
// optional config.yaml and .env files.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds all runtime settings.
type Config struct {
	HTTP       HTTPConfig
	Storage    string
	Database   DatabaseConfig
	Auth       AuthConfig
	Log        LogConfig
	Kafka      KafkaConfig
	Pagination PaginationConfig
}

// HTTPConfig holds server settings.
type HTTPConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	AllowOrigins    []string
}

// DatabaseConfig holds PostgreSQL settings.
type DatabaseConfig struct {
	URL         string
	MaxConns    int32
	AutoMigrate bool
}

// AuthConfig holds bearer token settings.
type AuthConfig struct {
	JWTSecret      string
	StrictIdentity bool
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// KafkaConfig holds event publishing settings. No brokers disables publishing.
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// PaginationConfig holds page size limits.
type PaginationConfig struct {
	DefaultPerPage int
	MaxPerPage     int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("HTTP_READ_TIMEOUT", "15s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "60s")
	v.SetDefault("HTTP_IDLE_TIMEOUT", "120s")
	v.SetDefault("HTTP_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")

	v.SetDefault("STORAGE", StoragePostgres)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_MAX_CONNS", 10)
	v.SetDefault("DATABASE_AUTO_MIGRATE", true)

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("AUTH_STRICT_IDENTITY", true)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "blog-events")
	v.SetDefault("KAFKA_WRITE_TIMEOUT", "10s")

	v.SetDefault("PAGINATION_DEFAULT_PER_PAGE", 15)
	v.SetDefault("PAGINATION_MAX_PER_PAGE", 100)
}

// Load reads configuration. Environment variables override config.yaml,
// which overrides the defaults. A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		HTTP: HTTPConfig{
			Port:            v.GetInt("HTTP_PORT"),
			ReadTimeout:     v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("HTTP_WRITE_TIMEOUT"),
			IdleTimeout:     v.GetDuration("HTTP_IDLE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("HTTP_SHUTDOWN_TIMEOUT"),
			AllowOrigins:    splitList(v.GetString("CORS_ALLOW_ORIGINS")),
		},
		Storage: strings.ToLower(strings.TrimSpace(v.GetString("STORAGE"))),
		Database: DatabaseConfig{
			URL:         v.GetString("DATABASE_URL"),
			MaxConns:    v.GetInt32("DATABASE_MAX_CONNS"),
			AutoMigrate: v.GetBool("DATABASE_AUTO_MIGRATE"),
		},
		Auth: AuthConfig{
			JWTSecret:      v.GetString("JWT_SECRET"),
			StrictIdentity: v.GetBool("AUTH_STRICT_IDENTITY"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Kafka: KafkaConfig{
			Brokers:      splitList(v.GetString("KAFKA_BROKERS")),
			Topic:        v.GetString("KAFKA_TOPIC"),
			WriteTimeout: v.GetDuration("KAFKA_WRITE_TIMEOUT"),
		},
		Pagination: PaginationConfig{
			DefaultPerPage: v.GetInt("PAGINATION_DEFAULT_PER_PAGE"),
			MaxPerPage:     v.GetInt("PAGINATION_MAX_PER_PAGE"),
		},
	}

	return cfg, nil
}

// splitList splits a comma separated value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
