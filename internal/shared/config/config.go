package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxRetries  int
	AutoMigrate bool
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type MailConfig struct {
	Enabled      bool
	From         string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	UseTLS       bool
}

type SeedConfig struct {
	AdminUsername string
	AdminPassword string
	AdminEmail    string
}

type Config struct {
	Environment        string
	Port               string
	DB                 DBConfig
	RedisAddr          string
	RedisPassword      string
	KafkaBroker        string
	KafkaGroupID       string
	OutboxPollInterval time.Duration
	JWTSecret          string
	JWTTTL             time.Duration
	CORSAllowedOrigins []string
	Log                LogConfig
	Mail               MailConfig
	Seed               SeedConfig
}

func Load() Config {
	return Config{
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DB: DBConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", ""),
			Name:        getEnv("DB_NAME", "employee_register"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxRetries:  getEnvInt("DB_MAX_RETRIES", 5),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
		},
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		KafkaBroker:        getEnv("KAFKA_BROKER", ""),
		KafkaGroupID:       getEnv("KAFKA_GROUP_ID", "employee-register-notifications"),
		OutboxPollInterval: getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTTTL:             getEnvDuration("JWT_TTL", 24*time.Hour),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 30),
		},
		Mail: MailConfig{
			Enabled:      getEnvBool("MAIL_ENABLED", false),
			From:         getEnv("MAIL_FROM", "no-reply@employee-register.local"),
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnvInt("SMTP_PORT", 587),
			SMTPUser:     getEnv("SMTP_USER", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			UseTLS:       getEnvBool("SMTP_USE_TLS", true),
		},
		Seed: SeedConfig{
			AdminUsername: getEnv("SEED_ADMIN_USERNAME", ""),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
			AdminEmail:    getEnv("SEED_ADMIN_EMAIL", ""),
		},
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks the settings every binary needs. Kafka and mail settings are
// checked by the binaries that use them.
func (c Config) Validate() error {
	var errs []error
	if c.DB.Host == "" || c.DB.Name == "" || c.DB.User == "" {
		errs = append(errs, errors.New("DB_HOST, DB_NAME and DB_USER are required"))
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("PORT must be numeric, got %q", c.Port))
	}
	if c.Mail.Enabled && c.Mail.SMTPHost == "" {
		errs = append(errs, errors.New("SMTP_HOST is required when MAIL_ENABLED is true"))
	}
	if c.Seed.AdminUsername != "" && c.Seed.AdminPassword == "" {
		errs = append(errs, errors.New("SEED_ADMIN_PASSWORD is required with SEED_ADMIN_USERNAME"))
	}
	return errors.Join(errs...)
}

// ValidateAPI adds the checks only the HTTP API needs.
func (c Config) ValidateAPI() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
