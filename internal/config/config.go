package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Telegram TelegramConfig
	Payment  PaymentConfig
	Auth     AuthConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type TelegramConfig struct {
	BotToken      string
	ApiBaseURL    string
	WebhookURL    string
	InitDataMaxAge time.Duration
}

type PaymentConfig struct {
	MidtransServerKey string
	MidtransClientKey string
	MidtransProduction bool
}

type AuthConfig struct {
	JwtSecret     string
	TokenLifetime time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Telegram: TelegramConfig{
			BotToken:       getEnv("TELEGRAM_BOT_TOKEN", ""),
			ApiBaseURL:     getEnv("TELEGRAM_API_BASE_URL", "https://api.telegram.org"),
			WebhookURL:     getEnv("TELEGRAM_WEBHOOK_URL", ""),
			InitDataMaxAge: getEnvAsDuration("TELEGRAM_INIT_DATA_MAX_AGE", 24*time.Hour),
		},
		Payment: PaymentConfig{
			MidtransServerKey:  getEnv("MIDTRANS_SERVER_KEY", ""),
			MidtransClientKey:  getEnv("MIDTRANS_CLIENT_KEY", ""),
			MidtransProduction: getEnvAsBool("MIDTRANS_PRODUCTION", false),
		},
		Auth: AuthConfig{
			JwtSecret:     getEnv("JWT_SECRET", ""),
			TokenLifetime: getEnvAsDuration("JWT_TOKEN_LIFETIME", 24*time.Hour),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
