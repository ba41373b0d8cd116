package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	SMTP     SMTPConfig
	Admin    AdminSeedConfig
	LogLevel string
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// AppURL is the public origin of the web client; referral and share links are built on it.
	AppURL      string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Driver          string // mysql | postgres
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	ClickSecret      string
	AccessExpiry     time.Duration
	RefreshExpiry    time.Duration
	ClickTokenExpiry time.Duration
	Issuer           string
}

type StorageConfig struct {
	Driver string // s3 | cloudinary

	S3Region          string
	S3Endpoint        string // MinIO or other S3-compatible endpoint; empty for AWS
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3UseSSL          bool

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

type RedisConfig struct {
	Addr     string // empty disables Redis-backed rate limiting
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string // empty disables event publishing
	Topic   string
}

type SMTPConfig struct {
	Host     string // empty disables outgoing mail
	Port     int
	Username string
	Password string
	From     string
}

type AdminSeedConfig struct {
	Email    string
	Password string
	FullName string
}

func Load() *Config {
	// .env is optional
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8099"),
			Env:          getEnv("APP_ENV", "development"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			AppURL:       strings.TrimRight(getEnv("APP_URL", "http://localhost:3000"), "/"),
			CORSOrigins:  getList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "postgres"),
			DSN:             getEnv("DB_DSN", "host=localhost user=postgres password=postgres dbname=z2b port=5432 sslmode=disable"),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		JWT: JWTConfig{
			AccessSecret:     getEnv("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret:    getEnv("JWT_REFRESH_SECRET", "change-me-refresh"),
			ClickSecret:      getEnv("JWT_CLICK_SECRET", "change-me-click"),
			AccessExpiry:     getDuration("JWT_ACCESS_EXPIRY", time.Hour),
			RefreshExpiry:    getDuration("JWT_REFRESH_EXPIRY", 168*time.Hour),
			ClickTokenExpiry: getDuration("JWT_CLICK_EXPIRY", 30*24*time.Hour),
			Issuer:           getEnv("JWT_ISSUER", "z2b"),
		},
		Storage: StorageConfig{
			Driver:              getEnv("STORAGE_DRIVER", "s3"),
			S3Region:            getEnv("AWS_REGION", "us-east-1"),
			S3Endpoint:          getEnv("AWS_ENDPOINT", ""),
			S3AccessKeyID:       getEnv("AWS_ACCESS_KEY_ID", ""),
			S3SecretAccessKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3UseSSL:            getBool("S3_USE_SSL", true),
			CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: getList("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC", "z2b.events"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "Z2B Table Banquet <no-reply@z2blegacybuilders.co.za>"),
		},
		Admin: AdminSeedConfig{
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
			FullName: getEnv("ADMIN_FULL_NAME", "Z2B Admin"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return n
}

func getBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return b
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return d
}

// getList splits a comma-separated value, dropping blanks.
func getList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
