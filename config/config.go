package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Search     SearchConfig     `mapstructure:"search"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Aggregator AggregatorConfig `mapstructure:"aggregator"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SearchConfig holds web search API configuration. The adapter is disabled
// unless both APIKey and EngineID are set.
type SearchConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	EngineID          string        `mapstructure:"engine_id"`
	BaseURL           string        `mapstructure:"base_url"`
	Domains           []string      `mapstructure:"domains"`
	NumResults        int           `mapstructure:"num_results"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether credentials for the search API are present
func (c SearchConfig) Enabled() bool {
	return c.APIKey != "" && c.EngineID != ""
}

// OpenAIConfig holds generative backend configuration. The adapter is
// disabled without an API key.
type OpenAIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

func (c OpenAIConfig) Enabled() bool {
	return c.APIKey != ""
}

// AggregatorConfig holds result limits and caching for searches
type AggregatorConfig struct {
	MaxResults    int           `mapstructure:"max_results"`
	PadCount      int           `mapstructure:"pad_count"`
	FallbackCount int           `mapstructure:"fallback_count"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
}

// CatalogConfig controls the built-in static catalogs
type CatalogConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	MaxDelay time.Duration `mapstructure:"max_delay"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// maxResultsLimit bounds aggregator.max_results
const maxResultsLimit = 50

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shopscout/")

	// SHOPSCOUT_SEARCH_API_KEY maps to search.api_key
	v.SetEnvPrefix("SHOPSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile copies variables from ./.env into the process environment
// without overriding ones already set. A missing file is not an error.
func loadEnvFile() error {
	err := gotenv.Load(".env")
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults registers every key so environment overrides are picked up
// by Unmarshal even when no config file mentions them.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "chrome-extension://*"})

	// Web search defaults
	v.SetDefault("search.api_key", "")
	v.SetDefault("search.engine_id", "")
	v.SetDefault("search.base_url", "https://www.googleapis.com")
	v.SetDefault("search.domains", []string{"amazon.com", "bestbuy.com"})
	v.SetDefault("search.num_results", 10)
	v.SetDefault("search.requests_per_second", 1.0)
	v.SetDefault("search.burst", 5)
	v.SetDefault("search.timeout", "10s")

	// Generative backend defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.timeout", "30s")

	// Aggregator defaults
	v.SetDefault("aggregator.max_results", 20)
	v.SetDefault("aggregator.pad_count", 10)
	v.SetDefault("aggregator.fallback_count", 10)
	v.SetDefault("aggregator.cache_ttl", "10m")

	// Static catalog defaults
	v.SetDefault("catalog.enabled", true)
	v.SetDefault("catalog.max_delay", "300ms")

	v.SetDefault("log.level", "info")
}

// validate validates the configuration. Missing credentials are not an
// error: the corresponding source is simply left out.
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	agg := config.Aggregator
	if agg.MaxResults <= 0 || agg.MaxResults > maxResultsLimit {
		return fmt.Errorf("aggregator max_results must be between 1 and %d, got: %d", maxResultsLimit, agg.MaxResults)
	}
	if agg.PadCount < 0 {
		return fmt.Errorf("aggregator pad_count must not be negative, got: %d", agg.PadCount)
	}
	if agg.FallbackCount <= 0 || agg.FallbackCount > agg.MaxResults {
		return fmt.Errorf("aggregator fallback_count must be between 1 and max_results (%d), got: %d", agg.MaxResults, agg.FallbackCount)
	}
	if agg.CacheTTL <= 0 {
		return fmt.Errorf("aggregator cache_ttl must be positive, got: %s", agg.CacheTTL)
	}

	if config.Search.NumResults < 1 || config.Search.NumResults > 10 {
		return fmt.Errorf("search num_results must be between 1 and 10, got: %d", config.Search.NumResults)
	}
	if config.Search.RequestsPerSecond <= 0 {
		return fmt.Errorf("search requests_per_second must be positive, got: %v", config.Search.RequestsPerSecond)
	}

	if config.Catalog.MaxDelay < 0 {
		return fmt.Errorf("catalog max_delay must not be negative, got: %s", config.Catalog.MaxDelay)
	}

	if _, err := zerolog.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("unknown log level %q", config.Log.Level)
	}

	return nil
}
