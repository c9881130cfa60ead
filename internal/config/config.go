package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string
	RedisURL      string
	AdminToken    string
	DataDir       string
	Environment   string
	Events        EventConfig
}

// IsProduction reports whether the service runs in a production
// deployment, where a missing document-store connection string is fatal
// instead of falling back to the JSON-file backing.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine; real deployments configure through
	// the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		MongoURI:      getEnv("MONGODB_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "studyfeed"),
		RedisURL:      getEnv("REDIS_URL", ""),
		AdminToken:    getEnv("ADMIN_TOKEN", ""),
		DataDir:       getEnv("DATA_DIR", "data"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		Events: EventConfig{
			Enabled:      getEnv("EVENTS_ENABLED", "false") == "true",
			Publisher:    getEnv("EVENTS_PUBLISHER", "mock"),
			KafkaBrokers: getEnv("KAFKA_BROKERS", "localhost:9092"),
			ContentTopic: getEnv("CONTENT_EVENTS_TOPIC", "content-events"),
		},
	}

	if cfg.IsProduction() && cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI must be set in production")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
