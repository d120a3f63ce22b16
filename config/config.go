package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	Debug             bool   `mapstructure:"DEBUG"`
	CORSOrigin        string `mapstructure:"CORS_ORIGIN"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// AI service configuration.
	AIProvider   string `mapstructure:"AI_PROVIDER"`
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Google Sheets configuration.
	GoogleSheetID         string `mapstructure:"GOOGLE_SHEET_ID"`
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	SheetName             string `mapstructure:"SHEET_NAME"`

	// Redis configuration (optional AI response cache).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	AICacheTTLMin int    `mapstructure:"AI_CACHE_TTL_MIN"`

	// Base URL used by the API client and the chat driver.
	APIBaseURL string `mapstructure:"API_BASE_URL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "3001")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("CORS_ORIGIN", "http://localhost:3000")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("AI_PROVIDER", "gemini")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-pro")
	viper.SetDefault("GOOGLE_SHEET_ID", "")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	viper.SetDefault("SHEET_NAME", "Sheet1")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("AI_CACHE_TTL_MIN", 30)
	viper.SetDefault("API_BASE_URL", "http://localhost:3001")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// IsDebug reports whether error responses may carry internal detail.
func IsDebug() bool {
	return AppConfig.Debug && !IsProduction()
}

// GeminiConfigured reports whether an API key is present for the AI service.
func GeminiConfigured() bool {
	return AppConfig.GeminiAPIKey != ""
}
