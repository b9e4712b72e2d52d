package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Server
	Port string // default: 8080

	// Upstream
	OpenAIAPIKey   string
	OpenAIBaseURL  string        // default: https://api.openai.com
	RequestTimeout time.Duration // default: 0 (no timeout)
	Models         ModelDefaults

	// Database (optional, enables usage logging)
	PostgresDSN string

	// Logging
	LogLevel  string // default: info
	LogFormat string // "text" or "json"

	// Observability
	OTELExporterType     string // "stdout", "otlp" or "none"
	OTELExporterEndpoint string // default: "localhost:4317"
}

// ModelDefaults overrides the library's default model per operation. Empty keeps
// the library default.
type ModelDefaults struct {
	Completion string `yaml:"completion"`
	Edit       string `yaml:"edit"`
	Chat       string `yaml:"chat"`
	Embedding  string `yaml:"embedding"`
}

type fileConfig struct {
	BaseURL string        `yaml:"base_url"`
	Models  ModelDefaults `yaml:"models"`
}

func Load() (*Config, error) {
	// Load .env file if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:        getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		PostgresDSN:          os.Getenv("POSTGRES_DSN"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "text"),
		OTELExporterType:     getEnv("OTEL_EXPORTER_TYPE", "stdout"),
		OTELExporterEndpoint: getEnv("OTEL_EXPORTER_ENDPOINT", "localhost:4317"),
	}

	timeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}
	cfg.RequestTimeout = timeout

	// Optional YAML overlay
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	// Validation
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.RequestTimeout < 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must not be negative")
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %q: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %q: %w", path, err)
	}

	if fc.BaseURL != "" {
		c.OpenAIBaseURL = fc.BaseURL
	}
	c.Models = fc.Models
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
