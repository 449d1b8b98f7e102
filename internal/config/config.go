package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Rewards
	DefaultFine int
	RewardRate  float64

	// Duplicate detection (flat lat/lng delta, not a geodesic distance)
	DuplicateWindow    time.Duration
	DuplicateTolerance float64

	// Dashboard summary cache; zero TTL computes on every read
	SummaryCacheTTL  time.Duration
	SummaryCacheSize int

	// Violation catalog seed
	CatalogPath string

	// Evidence storage (S3 compatible)
	S3Endpoint       string
	S3AccessKey      string
	S3SecretKey      string
	S3Bucket         string
	S3UseSSL         bool
	S3PublicURL      string
	EvidenceMaxBytes int64

	// Logging
	LogLevel     string
	LogRetention time.Duration
	SentryDSN    string

	// Server
	AppName     string
	AppEnv      string
	Port        string
	CORSOrigins string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first; variables already set in the environment win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to read .env file", "error", err)
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "curbwatch"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h"), 168*time.Hour),

		DefaultFine: parseInt(getEnv("DEFAULT_FINE", "115"), 115),
		RewardRate:  parseFloat(getEnv("REWARD_RATE", "0.10"), 0.10),

		DuplicateWindow:    parseDuration(getEnv("DUPLICATE_WINDOW", "2h"), 2*time.Hour),
		DuplicateTolerance: parseFloat(getEnv("DUPLICATE_TOLERANCE", "0.001"), 0.001),

		SummaryCacheTTL:  parseDuration(getEnv("SUMMARY_CACHE_TTL", "0s"), 0),
		SummaryCacheSize: parseInt(getEnv("SUMMARY_CACHE_SIZE", "10000"), 10000),

		CatalogPath: getEnv("CATALOG_PATH", ""),

		S3Endpoint:       getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKey:      getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:      getEnv("S3_SECRET_KEY", ""),
		S3Bucket:         getEnv("S3_BUCKET", "violation-photos"),
		S3UseSSL:         getEnv("S3_USE_SSL", "false") == "true",
		S3PublicURL:      getEnv("S3_PUBLIC_URL", ""),
		EvidenceMaxBytes: int64(parseInt(getEnv("EVIDENCE_MAX_BYTES", "8388608"), 8<<20)),

		LogLevel:     getEnv("LOG_LEVEL", "info"),
		SentryDSN:    getEnv("SENTRY_DSN", ""),
		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h"), 30*24*time.Hour),

		AppName:     getEnv("APP_NAME", "CurbWatch"),
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func parseFloat(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}
