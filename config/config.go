package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	SMTP       SMTPConfig
	DGI        DGIConfig
	JWT        JWTConfig
	CORS       CORSConfig
	Onboarding OnboardingConfig
	S3         S3Config
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SMTPConfig struct {
	Host        string
	Port        string
	Username    string
	Password    string
	TemplateDir string
}

// DGIConfig points at the national tax registry gateway.
type DGIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// OnboardingConfig holds the business knobs for the unipersonal flow.
type OnboardingConfig struct {
	// ValidateLegalName enables the legal-name pattern check and the
	// owner similarity check during Search.
	ValidateLegalName bool
	// IncomeThreshold splits INCOME_ASSIGN_FULL from INCOME_ASSIGN_PARTIAL.
	IncomeThreshold float64
	// IDCodecKey is the hex-encoded 32-byte key sealing external ids.
	IDCodecKey string
	// PasswordTTL bounds the life of a temporary password document.
	PasswordTTL time.Duration
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "admin"),
			Password: getEnv("DB_PASSWORD", "1234"),
			DBName:   getEnv("DB_NAME", "unipersonal"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DB", "onboarding"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0")),
		},
		SMTP: SMTPConfig{
			Host:        getEnv("SMTP_HOST", "smtp.bancoriental.internal"),
			Port:        getEnv("SMTP_PORT", "587"),
			Username:    getEnv("SMTP_USERNAME", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
			TemplateDir: getEnv("MAIL_TEMPLATE_DIR", "templates"),
		},
		DGI: DGIConfig{
			BaseURL: getEnv("DGI_BASE_URL", "https://servicios.dgi.gub.uy/api"),
			APIKey:  getEnv("DGI_API_KEY", ""),
			Timeout: parseDuration(getEnv("DGI_TIMEOUT", "10s")),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Onboarding: OnboardingConfig{
			ValidateLegalName: getEnv("ONBOARDING_VALIDATE_LEGAL_NAME", "true") == "true",
			IncomeThreshold:   parseFloat(getEnv("ONBOARDING_INCOME_THRESHOLD", "1200000")),
			IDCodecKey:        getEnv("ID_CODEC_KEY", ""),
			PasswordTTL:       parseDuration(getEnv("TEMP_PASSWORD_TTL", "72h")),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "sa-east-1"),
			Bucket:          getEnv("AWS_S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default 10s", s)
		return 10 * time.Second
	}
	return duration
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for i := 0; i < len(s); {
		end := i
		for end < len(s) && s[end] != ',' {
			end++
		}
		result = append(result, s[i:end])
		i = end + 1
	}
	return result
}
