package config

import (
	"os"
)

type Config struct {
	MongoURI string
	MongoDB  string
	Port     string
	GinMode  string
}

func Load() *Config {
	return &Config{
		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017/"),
		MongoDB:  getEnv("MONGO_DB", "task_tracker"),
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
