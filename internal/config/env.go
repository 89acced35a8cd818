package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Service is the process configuration read from the environment.
type Service struct {
	Port           string
	EngineSettings string
	RedisURL       string
	TourCacheTTL   time.Duration
	TourCacheSize  int
	RateRPS        float64
	RateBurst      int
	EvalWorkers    int
	LogLevel       string
	LogFormat      string
	Seed           int64
}

// LoadService reads the service configuration from environment variables.
func LoadService() (*Service, error) {
	cfg := &Service{
		Port:           getEnv("PORT", "8080"),
		EngineSettings: getEnv("ENGINE_SETTINGS", "settings.yaml"),
		RedisURL:       getEnv("REDIS_URL", ""),
		TourCacheTTL:   getDuration("TOUR_CACHE_TTL", 10*time.Minute),
		TourCacheSize:  getInt("TOUR_CACHE_SIZE", 4096),
		RateRPS:        getFloat("RATE_RPS", 50),
		RateBurst:      getInt("RATE_BURST", 100),
		EvalWorkers:    getInt("EVAL_WORKERS", 8),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		Seed:           int64(getInt("RNG_SEED", 0)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail late.
func (c *Service) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.TourCacheSize <= 0 {
		return fmt.Errorf("TOUR_CACHE_SIZE must be positive")
	}
	if c.RateRPS <= 0 {
		return fmt.Errorf("RATE_RPS must be positive")
	}
	if c.RateBurst <= 0 {
		return fmt.Errorf("RATE_BURST must be positive")
	}
	if c.EvalWorkers <= 0 {
		return fmt.Errorf("EVAL_WORKERS must be positive")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json")
	}
	return nil
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func (c *Service) NewLogger() *logrus.Logger {
	log := logrus.New()
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
