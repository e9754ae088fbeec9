package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Port        string
	Env         string
	StoreDriver string
	DBUrl       string
	JWTSecret   string
	FrontendURL string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Resume storage (AWS S3 or Wasabi)
	S3Provider        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	WasabiEndpoint    string
	S3PublicBaseURL   string
	ResumeBucket      string
	UploadsPerMinute  int
	UploadsPerDay     int
	// clamd address (host:port or socket path); empty stores resumes unscanned
	ClamAVAddress string
	// Background sweep
	ReconcileSchedule string
	// Interview metadata placement: notes or column
	InterviewMetadataMode string
	// Created as the first admin when the user directory is empty
	BootstrapAdminEmail string
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// StorageEnabled reports whether resume uploads can be served.
func (c *Config) StorageEnabled() bool {
	return c.S3AccessKeyID != "" && c.S3SecretAccessKey != ""
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  getEnv("PORT", "8080"),
		Env:                   getEnv("APP_ENV", "development"),
		StoreDriver:           strings.ToLower(getEnv("STORE_DRIVER", StorePostgres)),
		DBUrl:                 getEnv("DATABASE_URL", ""),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		FrontendURL:           strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		UpstashRedisURL:       getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword:  getEnv("UPSTASH_REDIS_PASSWORD", ""),
		S3Provider:            getEnv("S3_PROVIDER", "aws"),
		S3AccessKeyID:         getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey:     getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:              getEnv("S3_REGION", "us-east-1"),
		WasabiEndpoint:        getEnv("WASABI_ENDPOINT", ""),
		S3PublicBaseURL:       strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		ResumeBucket:          getEnv("RESUME_BUCKET", "resumes"),
		UploadsPerMinute:      getEnvInt("UPLOADS_PER_MINUTE", 10),
		UploadsPerDay:         getEnvInt("UPLOADS_PER_DAY", 100),
		ClamAVAddress:         getEnv("CLAMAV_ADDRESS", ""),
		ReconcileSchedule:     getEnv("RECONCILE_SCHEDULE", "@every 15m"),
		InterviewMetadataMode: strings.ToLower(getEnv("INTERVIEW_METADATA_MODE", "notes")),
		BootstrapAdminEmail:   getEnv("BOOTSTRAP_ADMIN_EMAIL", ""),
	}

	switch cfg.StoreDriver {
	case StorePostgres:
		if cfg.DBUrl == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for store driver %q", StorePostgres)
		}
	case StoreMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		log.Println("WARNING: JWT_SECRET is missing. Every authenticated request will be rejected.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Audit spool and upload limits are disabled.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
