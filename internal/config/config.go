package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	MongoURI    string
	MongoDB     string
	RedisAddr   string
	HTTPPort    string
	IdentityTTL time.Duration
}

func Load() *Config {
	return &Config{
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "surveywizard"),
		RedisAddr:   getEnv("REDIS_URI", "localhost:6379"),
		HTTPPort:    getEnv("PORT", "5000"),
		IdentityTTL: time.Duration(getEnvInt("IDENTITY_TTL_SECONDS", 60)) * time.Second,
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
