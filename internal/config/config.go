package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port         string        `yaml:"port" env:"SERVER_PORT"`
		Mode         string        `yaml:"mode" env:"SERVER_MODE"`
		ReadTimeout  time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	} `yaml:"server"`

	Storage struct {
		CatalogPath string `yaml:"catalog_path" env:"CATALOG_PATH"`
	} `yaml:"storage"`

	Session struct {
		Secret string `yaml:"secret" env:"SESSION_SECRET"`
	} `yaml:"session"`

	Tracing struct {
		Enabled     bool   `yaml:"enabled" env:"TRACING_ENABLED"`
		Exporter    string `yaml:"exporter" env:"TRACING_EXPORTER"`
		Endpoint    string `yaml:"endpoint" env:"TRACING_ENDPOINT"`
		Insecure    bool   `yaml:"insecure" env:"TRACING_INSECURE"`
		ServiceName string `yaml:"service_name" env:"TRACING_SERVICE_NAME"`
	} `yaml:"tracing"`

	Metrics struct {
		Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
		Path    string `yaml:"path" env:"METRICS_PATH"`
	} `yaml:"metrics"`

	RateLimit struct {
		Enabled           bool    `yaml:"enabled" env:"RATE_LIMIT_ENABLED"`
		RequestsPerSecond float64 `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"`
		Burst             int     `yaml:"burst" env:"RATE_LIMIT_BURST"`
	} `yaml:"rate_limit"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults and environment still apply.
func LoadConfig(configPath string) (*Config, error) {
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

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = 10 * time.Second
	config.Server.WriteTimeout = 10 * time.Second
	config.Server.IdleTimeout = 120 * time.Second

	config.Storage.CatalogPath = "course_catalog.json"

	// Tracing is opt-in
	config.Tracing.Enabled = false
	config.Tracing.Exporter = "stdout"
	config.Tracing.Endpoint = "localhost:4318"
	config.Tracing.Insecure = true
	config.Tracing.ServiceName = "coursecatalog"

	config.Metrics.Enabled = true
	config.Metrics.Path = "/metrics"

	config.RateLimit.Enabled = false
	config.RateLimit.RequestsPerSecond = 10
	config.RateLimit.Burst = 20

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Server.Port) == "" {
		return fmt.Errorf("server port is required")
	}

	if strings.TrimSpace(config.Storage.CatalogPath) == "" {
		return fmt.Errorf("catalog path is required")
	}

	if config.Tracing.Enabled {
		switch config.Tracing.Exporter {
		case "stdout", "otlp":
		default:
			return fmt.Errorf("unsupported tracing exporter %q", config.Tracing.Exporter)
		}
		if config.Tracing.ServiceName == "" {
			return fmt.Errorf("tracing service name is required")
		}
	}

	if config.Metrics.Enabled && !strings.HasPrefix(config.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with '/'")
	}

	if config.RateLimit.Enabled && (config.RateLimit.RequestsPerSecond <= 0 || config.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit requires positive requests_per_second and burst")
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Server.Mode) == "production"
}
