package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr        string
	DatabasePath      string
	RedisAddr         string
	DocRoot           string
	DefaultQueue      string
	DefaultBuilder    string
	WorkerConcurrency int
}

func Load() *Config {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		ListenAddr:        getEnv("LISTEN_ADDR", ":8080"),
		DatabasePath:      getEnv("DATABASE_PATH", "docshub.db"),
		RedisAddr:         getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		DocRoot:           getEnv("DOC_ROOT", "/var/lib/docshub/docs"),
		DefaultQueue:      getEnv("BUILD_QUEUE", "builds"),
		DefaultBuilder:    getEnv("BUILDER_IMAGE", "docshub/builder:latest"),
		WorkerConcurrency: getEnvAsInt("WORKER_CONCURRENCY", 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
