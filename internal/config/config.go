package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/logger"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// fixed-window rate limits, requests per window
	APIRateLimit   int
	APIRateWindow  int // seconds
	AuthRateLimit  int
	AuthRateWindow int // seconds

	LogLevel string
	LogJSON  bool
}

func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "5000"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:        port,
		DatabaseURL:    dbURL,
		JWTSecret:      jwtSecret,
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		APIRateLimit:   intEnv("API_RATE_LIMIT", 60),
		APIRateWindow:  intEnv("API_RATE_WINDOW_SECONDS", 60),
		AuthRateLimit:  intEnv("AUTH_RATE_LIMIT", 5),
		AuthRateWindow: intEnv("AUTH_RATE_WINDOW_SECONDS", 60),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogJSON:        os.Getenv("LOG_JSON") == "true",
	}
}

func intEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
