package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Store      StoreConfig
	UPC        UPCConfig
	Classifier ClassifierConfig
	Resolver   ResolverConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StoreConfig holds product store configuration
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // "memory" or "postgres"
	DSN    string `mapstructure:"dsn"`
}

// UPCConfig holds barcode lookup API configuration
type UPCConfig struct {
	Provider          string        `mapstructure:"provider"` // "upcitemdb" or "barcodespider"
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	RequestsPerWindow int           `mapstructure:"requests_per_window"`
	Window            time.Duration `mapstructure:"window"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// ClassifierConfig holds classifier model configuration
type ClassifierConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// ResolverConfig holds resolution pipeline configuration
type ResolverConfig struct {
	RefreshEnrichment bool `mapstructure:"refresh_enrichment"`
}

// RateLimitConfig holds inbound rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shelfaware/")

	// Environment variable settings
	v.SetEnvPrefix("SHELFAWARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Store defaults
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.dsn", "")

	// Lookup API defaults
	v.SetDefault("upc.provider", "upcitemdb")
	v.SetDefault("upc.api_key", "")
	v.SetDefault("upc.base_url", "")
	v.SetDefault("upc.requests_per_window", 1)
	v.SetDefault("upc.window", "1s")
	v.SetDefault("upc.timeout", "10s")

	// Classifier defaults
	v.SetDefault("classifier.api_key", "")
	v.SetDefault("classifier.model", "gemini-2.0-flash")

	// Resolver defaults
	v.SetDefault("resolver.refresh_enrichment", false)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Store.Driver != "memory" && config.Store.Driver != "postgres" {
		return fmt.Errorf("store driver must be 'memory' or 'postgres', got: %s", config.Store.Driver)
	}

	if config.Store.Driver == "postgres" && config.Store.DSN == "" {
		return fmt.Errorf("store DSN is required when store driver is 'postgres' (set SHELFAWARE_STORE_DSN)")
	}

	if config.UPC.Provider != "upcitemdb" && config.UPC.Provider != "barcodespider" {
		return fmt.Errorf("upc provider must be 'upcitemdb' or 'barcodespider', got: %s", config.UPC.Provider)
	}

	if config.UPC.RequestsPerWindow < 1 {
		return fmt.Errorf("upc requests_per_window must be at least 1, got: %d", config.UPC.RequestsPerWindow)
	}

	if config.Classifier.APIKey == "" {
		return fmt.Errorf("classifier API key is required (set SHELFAWARE_CLASSIFIER_API_KEY)")
	}

	return nil
}
