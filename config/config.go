package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	Environment string

	DBDriver string // sqlite | postgres
	DBSource string

	JWTSecret []byte
	JWTTTL    time.Duration

	LogLevel  string
	LogFormat string

	// Report day windows are computed in this zone
	ReportLocation *time.Location

	CORSOrigins []string

	AMQPURL      string
	AMQPExchange string

	S3 S3Config
}

type S3Config struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

// Enabled reports whether image uploads are configured
func (s S3Config) Enabled() bool {
	return s.Bucket != "" && s.AccessKey != "" && s.SecretKey != ""
}

// Load reads .env when present and then the process environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(getEnv("REPORT_TIMEZONE", "Local"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBSource:       getEnv("DB_SOURCE", "takeout.db"),
		JWTSecret:      []byte(getEnv("JWT_SECRET", "takeout_super_secret_2024")),
		JWTTTL:         ttl,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		ReportLocation: loc,
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
		AMQPURL:        os.Getenv("AMQP_URL"),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "catalog_topic"),
		S3: S3Config{
			Endpoint:      os.Getenv("S3_ENDPOINT"),
			Region:        getEnv("S3_REGION", "auto"),
			AccessKey:     os.Getenv("S3_ACCESS_KEY"),
			SecretKey:     os.Getenv("S3_SECRET_KEY"),
			Bucket:        os.Getenv("S3_BUCKET"),
			PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
