package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	LogLevel    string
	Environment string
	FrontendURL string
	// Token verification: HS256 shared secret and/or RS256 key set
	JWTSecret string
	JWKSURL   string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	// Birthday list
	BirthdayLookaheadDays   int
	BirthdayLimit           int
	BirthdayCacheTTLMinutes int
	DefaultLocale           string
	// Pagination
	DefaultPageLimit int
	MaxPageLimit     int
	// Object storage (S3-compatible)
	S3Provider        string
	S3Endpoint        string
	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicURL       string
	// Upload processing
	UploadMaxImageDimension int
	UploadJPEGQuality       int
	// clamd address; empty disables attachment scanning
	ClamAVAddress string
}

func LoadConfig() (*Config, error) {
	// .env is optional; in containers the environment is authoritative
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Environment: getEnv("GIN_MODE", "debug"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWKSURL:     getEnv("JWKS_URL", ""),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		// Birthday list
		BirthdayLookaheadDays:   getEnvInt("BIRTHDAY_LOOKAHEAD_DAYS", 3),
		BirthdayLimit:           getEnvInt("BIRTHDAY_LIMIT", 3),
		BirthdayCacheTTLMinutes: getEnvInt("BIRTHDAY_CACHE_TTL_MINUTES", 60),
		DefaultLocale:           strings.ToLower(getEnv("DEFAULT_LOCALE", "en")),
		// Pagination
		DefaultPageLimit: getEnvInt("DEFAULT_PAGE_LIMIT", 10),
		MaxPageLimit:     getEnvInt("MAX_PAGE_LIMIT", 100),
		// Object storage
		S3Provider:        strings.ToLower(getEnv("S3_PROVIDER", "aws")),
		S3Endpoint:        strings.TrimRight(getEnv("S3_ENDPOINT", ""), "/"),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3PublicURL:       strings.TrimRight(getEnv("S3_PUBLIC_URL", ""), "/"),
		// Upload processing
		UploadMaxImageDimension: getEnvInt("UPLOAD_MAX_IMAGE_DIMENSION", 1600),
		UploadJPEGQuality:       getEnvInt("UPLOAD_JPEG_QUALITY", 85),
		ClamAVAddress:           getEnv("CLAMAV_ADDRESS", ""),
	}

	cfg.normalize()

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" && cfg.JWKSURL == "" {
		log.Println("WARNING: neither JWT_SECRET nor JWKS_URL is set. Every protected request will be rejected.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback and birthday caching is off.")
	}
	if cfg.S3Bucket == "" {
		log.Println("WARNING: S3_BUCKET not configured. Photo and attachment uploads will be rejected.")
	}

	return cfg, nil
}

// normalize clamps values that would otherwise break the handlers.
func (c *Config) normalize() {
	if c.BirthdayLookaheadDays < 0 {
		c.BirthdayLookaheadDays = 0
	}
	if c.BirthdayLimit < 0 {
		c.BirthdayLimit = 0
	}
	if c.BirthdayCacheTTLMinutes < 0 {
		c.BirthdayCacheTTLMinutes = 0
	}
	if c.RateLimitGlobalThreshold < 1 {
		c.RateLimitGlobalThreshold = 100
	}
	if c.RateLimitWindowSeconds < 1 {
		c.RateLimitWindowSeconds = 60
	}
	if c.DefaultPageLimit < 1 {
		c.DefaultPageLimit = 10
	}
	if c.MaxPageLimit < c.DefaultPageLimit {
		c.MaxPageLimit = c.DefaultPageLimit
	}
	if c.UploadJPEGQuality < 1 || c.UploadJPEGQuality > 100 {
		c.UploadJPEGQuality = 85
	}
	if c.UploadMaxImageDimension < 1 {
		c.UploadMaxImageDimension = 1600
	}
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "release"
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
