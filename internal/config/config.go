package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	Driver string
	Source string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

// Enabled reports whether an object store has been configured.
func (m MinIO) Enabled() bool {
	return m.Endpoint != ""
}

// Services holds one base URL per remote service.
type Services struct {
	AuthURL         string
	UserURL         string
	RestaurantURL   string
	PostURL         string
	MoodURL         string
	NotificationURL string
}

type Config struct {
	ServerPort      int
	Environment     string
	LogLevel        string
	DB              DB
	MinIO           MinIO
	Services        Services
	HTTPTimeout     time.Duration
	SearchDebounce  time.Duration
	MasterPageSize  int
	ShutdownTimeout time.Duration
	MaxUploadSize   int64
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		Driver: getEnv("DB_DRIVER", "sqlite"),
		Source: getEnv("DB_SOURCE", "console.db"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", ""),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "post-images"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", ""),
	}
}

func LoadServices() Services {
	return Services{
		AuthURL:         getEnv("AUTH_API_URL", "https://mumii-auth.onrender.com/api"),
		UserURL:         getEnv("USER_API_URL", "https://mumii-auth.onrender.com/api/admin"),
		RestaurantURL:   getEnv("RESTAURANT_API_URL", "http://localhost:8082/api/admin"),
		PostURL:         getEnv("POST_API_URL", "http://localhost:8083/api/admin"),
		MoodURL:         getEnv("MOOD_API_URL", "https://mumii-discovery.onrender.com/api/admin"),
		NotificationURL: getEnv("NOTIFICATION_API_URL", "http://localhost:8084/api"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:      getEnvAsInt("SERVER_PORT", 8080),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DB:              LoadDB(),
		MinIO:           LoadMinIO(),
		Services:        LoadServices(),
		HTTPTimeout:     parseDuration(getEnv("HTTP_TIMEOUT", "30s"), 30*time.Second),
		SearchDebounce:  parseDuration(getEnv("SEARCH_DEBOUNCE", "500ms"), 500*time.Millisecond),
		MasterPageSize:  getEnvAsInt("MASTER_PAGE_SIZE", 1000),
		ShutdownTimeout: parseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),
		MaxUploadSize:   parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
	}
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 10 * 1024 * 1024
	}
	return size
}
