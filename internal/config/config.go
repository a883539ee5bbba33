package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

type Config struct {
	DBDSN    string
	HTTPAddr string
	LogLevel string
	RedisDSN string

	// object store settings; injected into the storage client at
	// construction, nothing else reads them
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	SignedURLTTL time.Duration
	CORSOrigins  []string
}

func Load() (Config, error) {
	cfg := Config{
		DBDSN:       os.Getenv("DB_DSN"),
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
		LogLevel:    getenvDefault("LOG_LEVEL", "info"),
		RedisDSN:    getenvDefault("REDIS_DSN", "redis://localhost:6379/0"),
		S3Endpoint:  getenvDefault("S3_ENDPOINT", ""),
		S3Region:    getenvDefault("S3_REGION", "auto"),
		S3Bucket:    getenvDefault("S3_BUCKET", ""),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
	}

	if cfg.DBDSN == "" {
		return Config{}, errors.New("missing DB_DSN")
	}

	ttlRaw := getenvDefault("SIGNED_URL_TTL", "15m")
	ttl, err := time.ParseDuration(ttlRaw)
	if err != nil || ttl <= 0 {
		return Config{}, errors.New("SIGNED_URL_TTL must be a positive duration")
	}
	cfg.SignedURLTTL = ttl

	// parse CORS origins
	corsOrigins := getenvDefault("CORS_ORIGINS", "")
	if corsOrigins != "" {
		cfg.CORSOrigins = strings.Split(corsOrigins, ",")
		for i := range cfg.CORSOrigins {
			cfg.CORSOrigins[i] = strings.TrimSpace(cfg.CORSOrigins[i])
		}
	} else {
		cfg.CORSOrigins = []string{"http://localhost:3000"} // default
	}

	return cfg, nil
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
