package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret               string `yaml:"secret" env:"JWT_SECRET"`
		VerificationTokenExp string `yaml:"verification_token_expiration" env:"JWT_VERIFICATION_TOKEN_EXPIRATION"`
		Issuer               string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	GenAI struct {
		APIKey  string `yaml:"api_key" env:"GEMINI_API_KEY"`
		BaseURL string `yaml:"base_url" env:"GEMINI_BASE_URL"`
		Model   string `yaml:"model" env:"GEMINI_MODEL"`
	} `yaml:"genai"`

	Storage struct {
		AccessKey string `yaml:"access_key" env:"STORAGE_ACCESS_KEY"`
		SecretKey string `yaml:"secret_key" env:"STORAGE_SECRET_KEY"`
		Bucket    string `yaml:"bucket" env:"STORAGE_BUCKET"`
		Region    string `yaml:"region" env:"STORAGE_REGION"`
		Endpoint  string `yaml:"endpoint" env:"STORAGE_ENDPOINT"`
		CDNURL    string `yaml:"cdn_url" env:"STORAGE_CDN_URL"`
	} `yaml:"storage"`

	Deepgram struct {
		APIKey  string `yaml:"api_key" env:"DEEPGRAM_API_KEY"`
		BaseURL string `yaml:"base_url" env:"DEEPGRAM_BASE_URL"`
	} `yaml:"deepgram"`

	SMTP struct {
		Host      string `yaml:"host" env:"SMTP_HOST"`
		Port      int    `yaml:"port" env:"SMTP_PORT"`
		Username  string `yaml:"username" env:"EMAIL_USER"`
		Password  string `yaml:"password" env:"EMAIL_PASS"`
		FromEmail string `yaml:"from_email" env:"EMAIL_FROM"`
		BaseURL   string `yaml:"base_url" env:"EMAIL_BASE_URL"`
	} `yaml:"smtp"`

	Moderation struct {
		Enabled bool `yaml:"enabled" env:"ENABLE_CONTENT_FILTER"`
	} `yaml:"moderation"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// A .env file is optional; environment variables win either way
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "5000"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "edunet"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.VerificationTokenExp = "1h"
	config.JWT.Issuer = "edunet.app"

	config.GenAI.BaseURL = "https://generativelanguage.googleapis.com"
	config.GenAI.Model = "gemini-1.5-flash"

	config.Storage.Region = "us-east-1"

	config.Deepgram.BaseURL = "https://api.deepgram.com"

	config.SMTP.Host = "smtp.gmail.com"
	config.SMTP.Port = 587
	config.SMTP.BaseURL = "http://localhost:5000"

	config.Moderation.Enabled = true

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures required settings are present. Startup halts on
// any missing required key.
func validateConfig(config *Config) error {
	if config.GenAI.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}

	if config.Database.Host == "" || config.Database.DBName == "" {
		return fmt.Errorf("database host and name are required")
	}

	if config.Storage.AccessKey == "" || config.Storage.SecretKey == "" || config.Storage.Bucket == "" {
		return fmt.Errorf("storage access key, secret key and bucket are required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	return nil
}

// GetPostgresConnectionString returns the postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
