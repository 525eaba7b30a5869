package configs

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	SMS      SMSConfig
	Admin    AdminConfig
	Client   ClientConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	AllowedOrigins []string
}

// DatabaseConfig selects the sandbox store. Driver is "postgres" or "sqlite".
type DatabaseConfig struct {
	Driver string
	DSN    string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig is optional. With no brokers order events go to the log.
type KafkaConfig struct {
	Brokers []string
}

type JWTConfig struct {
	SecretKey   string
	ExpiryHours int
}

// SMSConfig is optional. With no API key codes are logged instead of sent.
type SMSConfig struct {
	APIKey   string
	SenderID string
	BaseURL  string
}

type AdminConfig struct {
	Email    string
	Password string
}

// ClientConfig drives cmd/storefront.
type ClientConfig struct {
	APIBaseURL     string
	StorageBackend string // memory, redis or sqlite
	StoragePath    string
	Namespace      string
	TimeoutSeconds int
}

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// LoadConfig reads the environment, after loading a .env file if present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "5000"),
			Mode:           getEnv("GIN_MODE", "debug"),
			AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Driver: getEnv("DB_DRIVER", "sqlite"),
			DSN:    getEnv("DB_DSN", "parampara.db"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS", nil),
		},
		JWT: JWTConfig{
			SecretKey:   getEnv("JWT_SECRET", "parampara-dev-secret"),
			ExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
		},
		SMS: SMSConfig{
			APIKey:   getEnv("SMS_API_KEY", ""),
			SenderID: getEnv("SMS_SENDER_ID", "PRMPRA"),
			BaseURL:  getEnv("SMS_BASE_URL", "http://app.mydreamstechnology.in/vb/apikey.php"),
		},
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", "admin@parampara.in"),
			Password: getEnv("ADMIN_PASSWORD", "admin123"),
		},
		Client: ClientConfig{
			APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:5000/api"),
			StorageBackend: strings.ToLower(getEnv("STOREFRONT_STORAGE", StorageMemory)),
			StoragePath:    getEnv("STOREFRONT_STORAGE_PATH", "storefront.db"),
			Namespace:      getEnv("STOREFRONT_NAMESPACE", "parampara"),
			TimeoutSeconds: getEnvInt("API_TIMEOUT_SECONDS", 15),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated value, dropping blanks.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
