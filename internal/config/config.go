package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	MongoURI    string `env:"MONGODB_URI"`
	MongoDBName string `env:"MONGODB_DATABASE" envDefault:"alatem"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// SMS Config (Twilio)
	TwilioSID     string        `env:"TWILIO_SID"`
	TwilioToken   string        `env:"TWILIO_TOKEN"`
	TwilioPhone   string        `env:"TWILIO_PHONE"`
	UseRealSMS    bool          `env:"USE_REAL_SMS" envDefault:"false"`
	SMSTimeout    time.Duration `env:"SMS_TIMEOUT" envDefault:"5s"`
	SMSMaxRetries int           `env:"SMS_MAX_RETRIES" envDefault:"3"`
	SMSBaseDelay  time.Duration `env:"SMS_BASE_DELAY" envDefault:"1s"`

	// OTP Config
	OTPTTL         time.Duration `env:"OTP_TTL" envDefault:"5m"`
	OTPMaxAttempts int           `env:"OTP_MAX_ATTEMPTS" envDefault:"3"`

	// Outbreak detection Config
	OutbreakCaseThreshold int `env:"OUTBREAK_CASE_THRESHOLD" envDefault:"20"`
	OutbreakWindowDays    int `env:"OUTBREAK_WINDOW_DAYS" envDefault:"7"`

	// API Keys for staff authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		MongoURI:              os.Getenv("MONGODB_URI"),
		MongoDBName:           getEnv("MONGODB_DATABASE", "alatem"),
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:             os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvAsInt("REDIS_DB", 0),
		TwilioSID:             os.Getenv("TWILIO_SID"),
		TwilioToken:           os.Getenv("TWILIO_TOKEN"),
		TwilioPhone:           os.Getenv("TWILIO_PHONE"),
		UseRealSMS:            getEnvAsBool("USE_REAL_SMS", false),
		SMSTimeout:            getEnvAsDuration("SMS_TIMEOUT", 5*time.Second),
		SMSMaxRetries:         getEnvAsInt("SMS_MAX_RETRIES", 3),
		SMSBaseDelay:          getEnvAsDuration("SMS_BASE_DELAY", time.Second),
		OTPTTL:                getEnvAsDuration("OTP_TTL", 5*time.Minute),
		OTPMaxAttempts:        getEnvAsInt("OTP_MAX_ATTEMPTS", 3),
		OutbreakCaseThreshold: getEnvAsInt("OUTBREAK_CASE_THRESHOLD", 20),
		OutbreakWindowDays:    getEnvAsInt("OUTBREAK_WINDOW_DAYS", 7),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI environment variable is required")
	}

	if cfg.UseRealSMS && (cfg.TwilioSID == "" || cfg.TwilioToken == "" || cfg.TwilioPhone == "") {
		return nil, fmt.Errorf("Twilio credentials are required when USE_REAL_SMS=true")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool возвращает значение переменной окружения как bool или значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
