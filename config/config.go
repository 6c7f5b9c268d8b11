package config

import (
	"os"
	"strconv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Email      EmailConfig
	Cloudinary CloudinaryConfig
	Schemes    SchemeSyncConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// EmailConfig drives the SMTP sender used for OTP delivery.
type EmailConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// SchemeSyncConfig controls the welfare scheme refresh job.
type SchemeSyncConfig struct {
	IntervalHours int
	GLWBUrl       string
	GRWWBUrl      string
}

var AppConfig *Config

func Load() {
	AppConfig = &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "password"),
			Name:     getEnv("DB_NAME", "rozgar_connect_db"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-this-in-production"),
			ExpiryHours: getEnvAsInt("JWT_EXPIRY_HOURS", 24),
		},
		Email: EmailConfig{
			Host:     getEnv("EMAIL_HOST", "smtp.gmail.com"),
			Port:     getEnv("EMAIL_PORT", "587"),
			User:     getEnv("EMAIL_USER", ""),
			Password: getEnv("EMAIL_PASS", ""),
			From:     getEnv("EMAIL_FROM", "Rozgar Connect <no-reply@rozgar.com>"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		},
		Schemes: SchemeSyncConfig{
			IntervalHours: getEnvAsInt("SCHEME_SYNC_HOURS", 24),
			GLWBUrl:       getEnv("SCHEME_GLWB_URL", "https://glwb.gujarat.gov.in/welfare-schemes.htm"),
			GRWWBUrl:      getEnv("SCHEME_GRWWB_URL", "https://grwwb.gujarat.gov.in/"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
