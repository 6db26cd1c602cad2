package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server configuration
	Environment string

	// Branding rendered into generated documents
	InstitutionName string
	PortalName      string

	// Redis configuration (optional: cache + rate limiting)
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// Report generation
	ImageFetchTimeout time.Duration
	MaxReportPhotos   int
	ReportRateLimit   int
	ReportRateWindow  time.Duration

	// Dashboard
	DashboardCacheTTL time.Duration

	// Uploads
	MaxUploadSize int64

	// Monitoring
	EnableMetrics bool
}

func LoadConfig() *Config {
	return &Config{
		// Server
		Environment: getEnv("ENVIRONMENT", "development"),

		// Branding
		InstitutionName: getEnv("INSTITUTION_NAME", "INSTITUTION NAME"),
		PortalName:      getEnv("PORTAL_NAME", "Alumni Management Portal"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// Reports
		ImageFetchTimeout: getEnvAsDuration("IMAGE_FETCH_TIMEOUT", "10s"),
		MaxReportPhotos:   getEnvAsInt("MAX_REPORT_PHOTOS", 30),
		ReportRateLimit:   getEnvAsInt("REPORT_RATE_LIMIT", 10),
		ReportRateWindow:  getEnvAsDuration("REPORT_RATE_WINDOW", "1m"),

		// Dashboard
		DashboardCacheTTL: getEnvAsDuration("DASHBOARD_CACHE_TTL", "5m"),

		// Uploads
		MaxUploadSize: int64(getEnvAsInt("MAX_UPLOAD_SIZE", 10<<20)),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
