package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

type Config struct {
	App      AppConfig      `toml:"app"`
	Auth     AuthConfig     `toml:"auth"`
	SQLite   SQLiteConfig   `toml:"sqlite"`
	Redis    RedisConfig    `toml:"redis"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	CORS     CORSConfig     `toml:"cors"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Env     string `toml:"env"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
}

type AuthConfig struct {
	JWTSecret     string `toml:"jwt_secret"`
	JWTExpireHour int    `toml:"jwt_expire_hour"`
}

type SQLiteConfig struct {
	Path string `toml:"path"`
}

// RedisConfig configures the optional rate limiter backend. An empty Addr
// disables rate limiting entirely.
type RedisConfig struct {
	Addr              string `toml:"addr"`
	Password          string `toml:"password"`
	DB                int    `toml:"db"`
	AuthLimit         int    `toml:"auth_limit"`
	AuthWindowSeconds int    `toml:"auth_window_seconds"`
	APILimit          int    `toml:"api_limit"`
	APIWindowSeconds  int    `toml:"api_window_seconds"`
}

// RabbitMQConfig configures the optional activity log pipeline. An empty URL
// disables publishing and the persist worker.
type RabbitMQConfig struct {
	URL           string `toml:"url"`
	ActivityQueue string `toml:"activity_queue"`
}

type CORSConfig struct {
	AllowedOrigin string `toml:"allowed_origin"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)

	// A missing signing secret must abort startup, never surface per-request.
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "gotodo",
			Env:     "dev",
			Host:    "0.0.0.0",
			Port:    3001,
			GinMode: "debug",
		},
		Auth: AuthConfig{
			JWTSecret:     "",
			JWTExpireHour: 168,
		},
		SQLite: SQLiteConfig{
			Path: "data.sqlite",
		},
		Redis: RedisConfig{
			Addr:              "",
			Password:          "",
			DB:                0,
			AuthLimit:         5,
			AuthWindowSeconds: 900,
			APILimit:          100,
			APIWindowSeconds:  900,
		},
		RabbitMQ: RabbitMQConfig{
			URL:           "",
			ActivityQueue: "todo.activity.persist",
		},
		CORS: CORSConfig{
			AllowedOrigin: "http://localhost:5173",
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.Port = getEnvAsInt("PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.JWTExpireHour = getEnvAsInt("JWT_EXPIRE_HOUR", cfg.Auth.JWTExpireHour)

	cfg.SQLite.Path = getEnv("SQLITE_PATH", cfg.SQLite.Path)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.AuthLimit = getEnvAsInt("RATE_AUTH_LIMIT", cfg.Redis.AuthLimit)
	cfg.Redis.AuthWindowSeconds = getEnvAsInt("RATE_AUTH_WINDOW_SECONDS", cfg.Redis.AuthWindowSeconds)
	cfg.Redis.APILimit = getEnvAsInt("RATE_API_LIMIT", cfg.Redis.APILimit)
	cfg.Redis.APIWindowSeconds = getEnvAsInt("RATE_API_WINDOW_SECONDS", cfg.Redis.APIWindowSeconds)

	cfg.RabbitMQ.URL = getEnv("RABBITMQ_URL", cfg.RabbitMQ.URL)
	cfg.RabbitMQ.ActivityQueue = getEnv("RABBITMQ_ACTIVITY_QUEUE", cfg.RabbitMQ.ActivityQueue)

	cfg.CORS.AllowedOrigin = getEnv("FRONTEND_URL", cfg.CORS.AllowedOrigin)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
