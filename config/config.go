package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	JWTSecret           string
	APIKeyEncryptionKey string
	AdminAPIKey         string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPass              string
	DBName              string
	DBNameTest          string
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	RedisDB             int
	MinioHost           string
	MinioPort           string
	MinioUsername       string
	MinioPassword       string
	BucketName          string
	BucketNameTest      string
	PublicBaseURL       string
	AppBaseURL          string
	RabbitMQURL         string
	RabbitMQHost        string
	RabbitMQPort        string
	RabbitMQUser        string
	RabbitMQPass        string
	RabbitMQVhost       string
	RabbitMQPrefetch    int
	SignedURLTTL        time.Duration
	SessionTTL          time.Duration
	SweepInterval       time.Duration
	SweepConcurrency    int
	SweepDeleteRate     float64
	SweepDeleteBurst    int
	SweepLockTTL        time.Duration
}

var AppConfig Config

// getEnv returns the environment value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// InitConfig loads configuration and initializes sub-configs.
func InitConfig() {
	rabbitHost := getEnv("RABBITMQ_HOST", "localhost")
	rabbitPort := getEnv("RABBITMQ_PORT", "5672")
	rabbitUser := getEnv("RABBITMQ_USER", "guest")
	rabbitPass := getEnv("RABBITMQ_PASSWORD", "guest")
	rabbitVhost := getEnv("RABBITMQ_VHOST", "/")
	rabbitURL := getEnv("RABBITMQ_URL", "")
	if rabbitURL == "" {
		rabbitURL = fmt.Sprintf(
			"amqp://%s:%s@%s:%s/%s",
			url.PathEscape(rabbitUser),
			url.PathEscape(rabbitPass),
			rabbitHost,
			rabbitPort,
			url.PathEscape(rabbitVhost),
		)
	}
	AppConfig = Config{
		JWTSecret:           getEnv("JWT_SECRET", "l=ax+b"),
		APIKeyEncryptionKey: getEnv("API_KEY_ENCRYPTION_SECRET", "default-32-byte-encryption-key!!"),
		AdminAPIKey:         getEnv("ADMIN_API_KEY", ""),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "3306"),
		DBUser:              getEnv("DB_USER", "root"),
		DBPass:              getEnv("DB_PASS", "root"),
		DBName:              getEnv("DB_NAME", "FlowVault"),
		DBNameTest:          getEnv("DB_NAME_TEST", "FlowVault_Test"),
		RedisHost:           getEnv("REDIS_HOST", "localhost"),
		RedisPort:           getEnv("REDIS_PORT", "6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             0,
		MinioHost:           getEnv("MINIO_HOST", "localhost"),
		MinioPort:           getEnv("MINIO_PORT", "9000"),
		MinioUsername:       getEnv("MINIO_USERNAME", "minioadmin"),
		MinioPassword:       getEnv("MINIO_PASSWORD", "minioadmin"),
		BucketName:          getEnv("BUCKET_NAME", "flowvault"),
		BucketNameTest:      getEnv("BUCKET_NAME_TEST", "flowvault-test"),
		PublicBaseURL:       getEnv("PUBLIC_BASE_URL", ""),
		AppBaseURL:          getEnv("APP_BASE_URL", "http://localhost:8000"),
		RabbitMQURL:         rabbitURL,
		RabbitMQHost:        rabbitHost,
		RabbitMQPort:        rabbitPort,
		RabbitMQUser:        rabbitUser,
		RabbitMQPass:        rabbitPass,
		RabbitMQVhost:       rabbitVhost,
		RabbitMQPrefetch:    getEnvInt("RABBITMQ_PREFETCH", 1),
		SignedURLTTL:        getEnvDuration("SIGNED_URL_TTL", time.Hour),
		SessionTTL:          getEnvDuration("SESSION_TTL", 24*time.Hour),
		SweepInterval:       getEnvDuration("SWEEP_INTERVAL", time.Hour),
		SweepConcurrency:    getEnvInt("SWEEP_CONCURRENCY", 4),
		SweepDeleteRate:     getEnvFloat("SWEEP_DELETE_RATE", 20),
		SweepDeleteBurst:    getEnvInt("SWEEP_DELETE_BURST", 5),
		SweepLockTTL:        getEnvDuration("SWEEP_LOCK_TTL", 10*time.Minute),
	}

	InitUploadConfig()
}
