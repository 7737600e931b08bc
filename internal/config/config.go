package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	StorageGCS    = "gcs"
	StorageMemory = "memory"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Auth         AuthConfig
	Storage      StorageConfig
	Logging      LoggingConfig
	App          AppConfig
	GeminiAPIKey string
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

type DatabaseConfig struct {
	Driver      string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

// RedisConfig is optional: an empty Host disables the directory cache.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	CacheTTL time.Duration
}

type AuthConfig struct {
	JWTSecret string
}

type StorageConfig struct {
	Type                string
	ProfilePhotosBucket string
	ProjectImagesBucket string
	ResumesBucket       string
	EmulatorHost        string
	PublicBaseURL       string
	CredentialsFile     string
	MaxUploadBytes      int64
}

type LoggingConfig struct {
	Level string
}

type AppConfig struct {
	BaseURL string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is not an error;
// environment variables always win over the file.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetInt("SERVER_PORT"),
			Env:          v.GetString("ENV"),
			ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
			CORSOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Driver:      strings.ToLower(v.GetString("DB_DRIVER")),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSL_MODE"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CacheTTL: v.GetDuration("REDIS_CACHE_TTL"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("AUTH_JWT_SECRET"),
		},
		Storage: StorageConfig{
			Type:                strings.ToLower(v.GetString("STORAGE_TYPE")),
			ProfilePhotosBucket: v.GetString("STORAGE_PROFILE_PHOTOS_BUCKET"),
			ProjectImagesBucket: v.GetString("STORAGE_PROJECT_IMAGES_BUCKET"),
			ResumesBucket:       v.GetString("STORAGE_RESUMES_BUCKET"),
			EmulatorHost:        v.GetString("STORAGE_EMULATOR_HOST"),
			PublicBaseURL:       v.GetString("STORAGE_PUBLIC_BASE_URL"),
			CredentialsFile:     v.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
			MaxUploadBytes:      v.GetInt64("STORAGE_MAX_UPLOAD_BYTES"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		App: AppConfig{
			BaseURL: strings.TrimRight(v.GetString("APP_BASE_URL"), "/"),
		},
		GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
	}

	// Validate critical configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", "15s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_CACHE_TTL", "5m")
	v.SetDefault("STORAGE_TYPE", StorageGCS)
	v.SetDefault("STORAGE_PROFILE_PHOTOS_BUCKET", "profile-photos")
	v.SetDefault("STORAGE_PROJECT_IMAGES_BUCKET", "project-images")
	v.SetDefault("STORAGE_RESUMES_BUCKET", "resumes")
	v.SetDefault("STORAGE_MAX_UPLOAD_BYTES", 10<<20)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_BASE_URL", "http://localhost:8080")
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	switch c.Storage.Type {
	case StorageGCS:
		if c.Storage.ProfilePhotosBucket == "" || c.Storage.ProjectImagesBucket == "" || c.Storage.ResumesBucket == "" {
			return fmt.Errorf("all three storage bucket names are required")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	if c.App.BaseURL == "" {
		return fmt.Errorf("app base URL is required")
	}
	return nil
}

func (c *ServerConfig) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Enabled reports whether a Redis host is configured
func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
