package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Email      EmailConfig
	Cloudinary CloudinaryConfig
	Notify     NotifyConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

// EmailConfig holds SES credentials for the transactional email channel.
// An empty AccessKey disables the channel; sends become logged skips.
type EmailConfig struct {
	AccessKey string
	SecretKey string
	Region    string
	FromEmail string
	FromName  string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// NotifyConfig bounds the cadence-invoked pipeline runs.
type NotifyConfig struct {
	DispatchBatchSize int
	TriggerBatchSize  int
	CenterFetchLimit  int
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         env("PORT", "8088"),
			Env:          env("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             env("DATABASE_DSN", "bliss:bliss@tcp(localhost:3306)/bliss_store?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  env("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: env("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "bliss-store",
		},
		Email: EmailConfig{
			AccessKey: os.Getenv("SES_ACCESS_KEY"),
			SecretKey: os.Getenv("SES_SECRET_KEY"),
			Region:    env("SES_REGION", "us-east-1"),
			FromEmail: env("EMAIL_FROM", "notifications@bliss-store.example"),
			FromName:  env("EMAIL_FROM_NAME", "Bliss Store"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		Notify: NotifyConfig{
			DispatchBatchSize: envInt("DISPATCH_BATCH_SIZE", 50),
			TriggerBatchSize:  envInt("TRIGGER_BATCH_SIZE", 50),
			CenterFetchLimit:  20,
		},
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
