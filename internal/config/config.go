package config

import (
	"os"
	"strconv"
	"time"

	"railbird/internal/database"
	"railbird/internal/messaging"
)

// Config holds the application configuration
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	// Venue holds the house rules the queue engine depends on
	Venue VenueConfig

	Database      database.Config
	NATS          messaging.Config
	Elasticsearch ElasticsearchConfig
}

// VenueConfig describes the venue the service runs for
type VenueConfig struct {
	// Timezone is the IANA zone the 4 a.m. day rollover is computed in
	Timezone string
	Name     string
}

// Load reads the configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8081"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		Venue: VenueConfig{
			Timezone: getEnv("VENUE_TIMEZONE", "America/Toronto"),
			Name:     getEnv("VENUE_NAME", "Railbird Poker Room"),
		},

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "railbird"),
			Password:           getEnv("DB_PASSWORD", "railbird123"),
			DBName:             getEnv("DB_NAME", "railbird"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "railbird"),
			ClientID:  getEnv("NATS_CLIENT_ID", "railbird-api"),
		},

		Elasticsearch: LoadElasticsearchConfig(),
	}
}

// Location resolves the venue timezone, falling back to UTC if the zone
// database does not know it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Venue.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnv reads an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
