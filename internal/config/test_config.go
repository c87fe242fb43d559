package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the configuration from the .env file or environment variables for integration tests.
// TEST_-prefixed variables point tests at an already running document store.
// If they are not set, an empty Config is returned and the integration suite
// falls back to launching its own container.
func LoadTestConfig() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist - it's optional)
	_ = godotenv.Load("./../../.env")
	_ = godotenv.Load()

	cfg := &Config{}
	mongoHost := os.Getenv("TEST_MONGO_HOST")
	if mongoHost == "" {
		return cfg, nil
	}
	cfg.Mongo.Host = mongoHost

	mongoPortStr := os.Getenv("TEST_MONGO_PORT")
	if mongoPortStr == "" {
		return cfg, nil
	}
	mongoPort, err := strconv.Atoi(mongoPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TEST_MONGO_PORT: %w", err)
	}
	cfg.Mongo.Port = mongoPort

	mongoDB := os.Getenv("TEST_MONGO_DB")
	if mongoDB == "" {
		cfg.Mongo.DBName = "tutorials_test"
	} else {
		cfg.Mongo.DBName = mongoDB
	}

	cfg.Mongo.User = os.Getenv("TEST_MONGO_USER")
	cfg.Mongo.Password = os.Getenv("TEST_MONGO_PASSWORD")

	return cfg, nil
}
