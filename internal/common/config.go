package common

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/ternarybob/liber/internal/models"
)

// Config represents the application configuration. It is constructed once at
// process start and passed by reference into every component; core logic
// performs no ambient environment lookups.
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Gemini      GeminiConfig  `toml:"gemini"`
	Store       StoreConfig   `toml:"store"`
	Ingest      IngestConfig  `toml:"ingest"`
	Logging     LoggingConfig `toml:"logging"`
}

// GeminiConfig contains Google Gemini API configuration for the retrieval service.
type GeminiConfig struct {
	APIKey    string `toml:"api_key" validate:"required"` // Google Gemini API key
	Model     string `toml:"model"`                       // Generation model (default: "gemini-2.5-flash")
	Timeout   string `toml:"timeout"`                     // Per-call timeout as duration string (default: "5m")
	RateLimit string `toml:"rate_limit"`                  // Minimum interval between generation calls (default: "4s" for 15 RPM)
}

// StoreConfig contains default file search store settings.
type StoreConfig struct {
	Name        string `toml:"name"`         // Existing store identifier (fileSearchStores/...); empty = create on ingest
	DisplayName string `toml:"display_name"` // Display name used when creating a new store
}

// IngestConfig contains ingestion behavior settings.
type IngestConfig struct {
	PollInterval string `toml:"poll_interval"` // Import operation poll interval (default: "5s")
}

// LoggingConfig contains logging behavior settings.
type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// NewDefaultConfig returns the configuration defaults applied before any file
// or environment override.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Gemini: GeminiConfig{
			Model:     "gemini-2.5-flash",
			Timeout:   "5m",
			RateLimit: "4s",
		},
		Store: StoreConfig{
			DisplayName: "My Books Store",
		},
		Ingest: IngestConfig{
			PollInterval: "5s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2
// -> ... -> environment variables. Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
// LIBER_* variables take precedence over the unprefixed names kept for
// compatibility with existing deployments (GEMINI_API_KEY,
// FILE_SEARCH_STORE_NAME, PDF_STORE_DISPLAY_NAME).
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("LIBER_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if key := os.Getenv("LIBER_GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
	if model := os.Getenv("LIBER_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if timeout := os.Getenv("LIBER_GEMINI_TIMEOUT"); timeout != "" {
		config.Gemini.Timeout = timeout
	}
	if rateLimit := os.Getenv("LIBER_GEMINI_RATE_LIMIT"); rateLimit != "" {
		config.Gemini.RateLimit = rateLimit
	}

	if name := os.Getenv("LIBER_STORE_NAME"); name != "" {
		config.Store.Name = name
	} else if name := os.Getenv("FILE_SEARCH_STORE_NAME"); name != "" {
		config.Store.Name = name
	}
	if displayName := os.Getenv("LIBER_STORE_DISPLAY_NAME"); displayName != "" {
		config.Store.DisplayName = displayName
	} else if displayName := os.Getenv("PDF_STORE_DISPLAY_NAME"); displayName != "" {
		config.Store.DisplayName = displayName
	}

	if pollInterval := os.Getenv("LIBER_INGEST_POLL_INTERVAL"); pollInterval != "" {
		config.Ingest.PollInterval = pollInterval
	}

	if level := os.Getenv("LIBER_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// Validate checks the loaded configuration, returning a models.ErrConfig
// wrapped error describing the first problem found.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return fmt.Errorf("gemini api key is required (set LIBER_GEMINI_API_KEY, GEMINI_API_KEY, or gemini.api_key in config): %w", models.ErrConfig)
		}
		return fmt.Errorf("config validation: %v: %w", err, models.ErrConfig)
	}

	for name, value := range map[string]string{
		"gemini.timeout":       c.Gemini.Timeout,
		"gemini.rate_limit":    c.Gemini.RateLimit,
		"ingest.poll_interval": c.Ingest.PollInterval,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration for %s: %q: %w", name, value, models.ErrConfig)
		}
	}

	return nil
}

// PollInterval returns the parsed import poll interval. Validate must have
// been called first; an unparsable value falls back to 5 seconds.
func (c *Config) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.Ingest.PollInterval)
	if err != nil {
		return 5 * time.Second
	}
	return d
}
