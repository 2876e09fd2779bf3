// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config 服務啟動所需的全部設定
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Auth        AuthConfig
	Books       BooksConfig
	Logging     LoggingConfig
	WorkerCount int
	Environment string
}

type ServerConfig struct {
	Addr string
}

type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuthConfig SecretKey 同時用於簽發存取令牌與 books 服務的聯合登入令牌
type AuthConfig struct {
	SecretKey string
	TokenTTL  time.Duration
}

type BooksConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64
	CacheTTL  time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

// loadDotenv 測試時可覆寫
var loadDotenv = func() error { return godotenv.Load() }

// Load 讀取環境變數（若存在 .env 會先載入），缺少必要值或數值格式錯誤時回傳錯誤
func Load() (Config, error) {
	_ = loadDotenv()

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}
	ttlHours, err := getEnvInt("TOKEN_TTL_HOURS", 24)
	if err != nil {
		return Config{}, err
	}
	booksTimeout, err := getEnvInt("BOOKS_TIMEOUT_SECONDS", 5)
	if err != nil {
		return Config{}, err
	}
	booksCacheTTL, err := getEnvInt("BOOKS_CACHE_TTL_SECONDS", 300)
	if err != nil {
		return Config{}, err
	}
	booksRate, err := getEnvFloat("BOOKS_RATE_LIMIT", 10)
	if err != nil {
		return Config{}, err
	}
	workers, err := getEnvInt("WORKER_COUNT", 4)
	if err != nil {
		return Config{}, err
	}
	if workers <= 0 {
		return Config{}, fmt.Errorf("無效的 WORKER_COUNT: %d", workers)
	}

	cfg := Config{
		Server: ServerConfig{
			Addr: getEnv("SERVER_ADDR", ":8080"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			SecretKey: os.Getenv("SECRET_KEY"),
			TokenTTL:  time.Duration(ttlHours) * time.Hour,
		},
		Books: BooksConfig{
			BaseURL:   os.Getenv("BOOKS_APP_URL"),
			Timeout:   time.Duration(booksTimeout) * time.Second,
			RateLimit: booksRate,
			CacheTTL:  time.Duration(booksCacheTTL) * time.Second,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		WorkerCount: workers,
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if cfg.Database.URL == "" {
		return Config{}, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if cfg.Redis.Addr == "" {
		return Config{}, fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}
	if cfg.Auth.SecretKey == "" {
		return Config{}, fmt.Errorf("環境變數 SECRET_KEY 未設定")
	}
	if cfg.Books.BaseURL == "" {
		return Config{}, fmt.Errorf("環境變數 BOOKS_APP_URL 未設定")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %v", key, err)
	}
	return parsed, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %v", key, err)
	}
	return parsed, nil
}
