// Package config provides configuration for the application
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Mongo   MongoConfig
	Server  ServerConfig
	Logging LoggingConfig
	CORS    CORSConfig
}

// MongoConfig holds document store connection settings
type MongoConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables.
// A .env file is applied first when present; variables already set in the
// environment win over file values.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{}

	// Document store configuration
	mongoHost := os.Getenv("MONGO_HOST")
	if mongoHost == "" {
		return nil, fmt.Errorf("MONGO_HOST is required")
	}
	cfg.Mongo.Host = mongoHost

	mongoPortStr := os.Getenv("MONGO_PORT")
	if mongoPortStr == "" {
		return nil, fmt.Errorf("MONGO_PORT is required")
	}
	mongoPort, err := strconv.Atoi(mongoPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid MONGO_PORT: %w", err)
	}
	cfg.Mongo.Port = mongoPort

	mongoDB := os.Getenv("MONGO_DB")
	if mongoDB == "" {
		return nil, fmt.Errorf("MONGO_DB is required")
	}
	cfg.Mongo.DBName = mongoDB

	// Credentials are optional: local and CI instances run without auth
	cfg.Mongo.User = os.Getenv("MONGO_USER")
	cfg.Mongo.Password = os.Getenv("MONGO_PASSWORD")

	// Server configuration
	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080" // default port
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if corsOrigins == "" {
		// Default to allow all origins if not specified (for development)
		cfg.CORS.AllowedOrigins = []string{"*"}
	} else {
		// Parse comma-separated origins
		origins := strings.Split(corsOrigins, ",")
		cfg.CORS.AllowedOrigins = make([]string, 0, len(origins))
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, origin)
			}
		}
		// If no valid origins found, default to allow all
		if len(cfg.CORS.AllowedOrigins) == 0 {
			cfg.CORS.AllowedOrigins = []string{"*"}
		}
	}

	return cfg, nil
}

// URI returns the document store connection string
func (c *Config) URI() string {
	if c.Mongo.User != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%d",
			url.QueryEscape(c.Mongo.User),
			url.QueryEscape(c.Mongo.Password),
			c.Mongo.Host,
			c.Mongo.Port,
		)
	}
	return fmt.Sprintf("mongodb://%s:%d", c.Mongo.Host, c.Mongo.Port)
}
