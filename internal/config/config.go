package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Created-at policies for documents inserted through the store gateway.
const (
	CreatedAtHonor = "honor"
	CreatedAtStamp = "stamp"
)

// Store drivers.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Store     StoreConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	MinIO     MinIOConfig
	LogLevel  string
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins []string
}

// MongoDBConfig is read from DATABASE_URL / DATABASE_NAME. Either being empty
// leaves the store in its unavailable state.
type MongoDBConfig struct {
	URI             string
	Database        string
	Timeout         time.Duration
	ConnectAttempts int
}

// Configured reports whether both the connection string and database name are set.
func (m MongoDBConfig) Configured() bool {
	return m.URI != "" && m.Database != ""
}

type StoreConfig struct {
	Driver          string
	CreatedAtPolicy string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("DATABASE_TIMEOUT", 10)
	v.SetDefault("DATABASE_CONNECT_ATTEMPTS", 5)
	v.SetDefault("STORE_DRIVER", DriverMongo)
	v.SetDefault("STORE_CREATED_AT_POLICY", CreatedAtHonor)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_USE_REDIS", false)
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	v.SetDefault("MINIO_BUCKET", "deardiary-exports")
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("PORT"),
			Host:         v.GetString("HOST"),
			Environment:  v.GetString("ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			AllowOrigins: splitList(v.GetString("CORS_ALLOW_ORIGINS")),
		},
		MongoDB: MongoDBConfig{
			URI:             v.GetString("DATABASE_URL"),
			Database:        v.GetString("DATABASE_NAME"),
			Timeout:         time.Duration(v.GetInt("DATABASE_TIMEOUT")) * time.Second,
			ConnectAttempts: v.GetInt("DATABASE_CONNECT_ATTEMPTS"),
		},
		Store: StoreConfig{
			Driver:          strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
			CreatedAtPolicy: strings.ToLower(strings.TrimSpace(v.GetString("STORE_CREATED_AT_POLICY"))),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	switch cfg.Store.Driver {
	case DriverMongo, DriverMemory:
	default:
		return nil, fmt.Errorf("STORE_DRIVER: unsupported value %q (want %s|%s)", cfg.Store.Driver, DriverMongo, DriverMemory)
	}
	switch cfg.Store.CreatedAtPolicy {
	case CreatedAtHonor, CreatedAtStamp:
	default:
		return nil, fmt.Errorf("STORE_CREATED_AT_POLICY: unsupported value %q (want %s|%s)", cfg.Store.CreatedAtPolicy, CreatedAtHonor, CreatedAtStamp)
	}
	if cfg.MongoDB.ConnectAttempts < 1 {
		cfg.MongoDB.ConnectAttempts = 1
	}

	return cfg, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
