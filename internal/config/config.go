package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultIntervalMS        = 60000
	DefaultPort              = 10000
	DefaultRequestTimeoutMS  = 10000
	DefaultShutdownTimeoutMS = 15000
	DefaultMarker            = "GOLD"
	DefaultMarkupRate        = 0.10
	DefaultTaxRate           = 0.03
	DefaultCatalogBaseURL    = "https://services.leadconnectorhq.com"
	DefaultCatalogAPIVersion = "2021-07-28"
	DefaultRequestsPerSecond = 10
	DefaultHistorySize       = 50
)

// Config holds all application configuration.
type Config struct {
	Quote struct {
		URLTemplate string `yaml:"url_template"`
		APIKey      string `yaml:"api_key"`
		TimeoutMS   int    `yaml:"timeout_ms"`
	} `yaml:"quote"`
	Catalog struct {
		BaseURL           string  `yaml:"base_url"`
		APIToken          string  `yaml:"api_token"`
		LocationID        string  `yaml:"location_id"`
		APIVersion        string  `yaml:"api_version"`
		TimeoutMS         int     `yaml:"timeout_ms"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
		ResolvePrices     *bool   `yaml:"resolve_prices"`
	} `yaml:"catalog"`
	Pricing struct {
		Marker     string   `yaml:"marker"`
		MarkupRate *float64 `yaml:"markup_rate"`
		TaxRate    *float64 `yaml:"tax_rate"`
	} `yaml:"pricing"`
	Sync struct {
		IntervalMS  int   `yaml:"interval_ms"`
		Workers     int   `yaml:"workers"`
		HistorySize int   `yaml:"history_size"`
		RunOnStart  *bool `yaml:"run_on_start"`
	} `yaml:"sync"`
	Server struct {
		Port              int `yaml:"port"`
		ShutdownTimeoutMS int `yaml:"shutdown_timeout_ms"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// LoadDotEnv exports the variables of a .env file into the process
// environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("QUOTE_API_KEY"); v != "" {
		cfg.Quote.APIKey = v
	}
	if v := os.Getenv("QUOTE_URL_TEMPLATE"); v != "" {
		cfg.Quote.URLTemplate = v
	}
	if v := os.Getenv("CATALOG_API_TOKEN"); v != "" {
		cfg.Catalog.APIToken = v
	}
	if v := os.Getenv("CATALOG_BASE_URL"); v != "" {
		cfg.Catalog.BaseURL = v
	}
	if v := os.Getenv("CATALOG_LOCATION_ID"); v != "" {
		cfg.Catalog.LocationID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if err := intEnv("SYNC_INTERVAL_MS", &cfg.Sync.IntervalMS); err != nil {
		return nil, err
	}
	if err := intEnv("SYNC_WORKERS", &cfg.Sync.Workers); err != nil {
		return nil, err
	}
	if err := intEnv("PORT", &cfg.Server.Port); err != nil {
		return nil, err
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parse RUN_ON_START: %w", err)
		}
		cfg.Sync.RunOnStart = &b
	}

	cfg.applyDefaults()
	return cfg, nil
}

func intEnv(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = n
	return nil
}

func (c *Config) applyDefaults() {
	if c.Quote.TimeoutMS == 0 {
		c.Quote.TimeoutMS = DefaultRequestTimeoutMS
	}
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = DefaultCatalogBaseURL
	}
	if c.Catalog.APIVersion == "" {
		c.Catalog.APIVersion = DefaultCatalogAPIVersion
	}
	if c.Catalog.TimeoutMS == 0 {
		c.Catalog.TimeoutMS = DefaultRequestTimeoutMS
	}
	if c.Catalog.RequestsPerSecond == 0 {
		c.Catalog.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if c.Catalog.Burst == 0 {
		c.Catalog.Burst = int(c.Catalog.RequestsPerSecond)
		if c.Catalog.Burst < 1 {
			c.Catalog.Burst = 1
		}
	}
	if c.Catalog.ResolvePrices == nil {
		c.Catalog.ResolvePrices = boolPtr(true)
	}
	if c.Pricing.Marker == "" {
		c.Pricing.Marker = DefaultMarker
	}
	if c.Pricing.MarkupRate == nil {
		c.Pricing.MarkupRate = floatPtr(DefaultMarkupRate)
	}
	if c.Pricing.TaxRate == nil {
		c.Pricing.TaxRate = floatPtr(DefaultTaxRate)
	}
	if c.Sync.IntervalMS == 0 {
		c.Sync.IntervalMS = DefaultIntervalMS
	}
	if c.Sync.Workers == 0 {
		c.Sync.Workers = 1
	}
	if c.Sync.HistorySize == 0 {
		c.Sync.HistorySize = DefaultHistorySize
	}
	if c.Sync.RunOnStart == nil {
		c.Sync.RunOnStart = boolPtr(true)
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ShutdownTimeoutMS == 0 {
		c.Server.ShutdownTimeoutMS = DefaultShutdownTimeoutMS
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Quote.APIKey == "" {
		return fmt.Errorf("quote.api_key is required")
	}
	if c.Quote.URLTemplate == "" {
		return fmt.Errorf("quote.url_template is required")
	}
	if c.Catalog.APIToken == "" {
		return fmt.Errorf("catalog.api_token is required")
	}
	if c.Catalog.LocationID == "" {
		return fmt.Errorf("catalog.location_id is required")
	}
	if c.Sync.IntervalMS < 1000 {
		return fmt.Errorf("sync.interval_ms must be at least 1000")
	}
	if c.Sync.IntervalMS%1000 != 0 {
		return fmt.Errorf("sync.interval_ms %d must be a whole number of seconds", c.Sync.IntervalMS)
	}
	if c.Sync.Workers < 1 {
		return fmt.Errorf("sync.workers must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	if c.Catalog.RequestsPerSecond < 0 {
		return fmt.Errorf("catalog.requests_per_second must not be negative")
	}
	if *c.Pricing.MarkupRate < 0 || *c.Pricing.TaxRate < 0 {
		return fmt.Errorf("pricing rates must not be negative")
	}
	return nil
}

// Interval returns the sync period.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Sync.IntervalMS) * time.Millisecond
}

// QuoteTimeout returns the bound on a quote request.
func (c *Config) QuoteTimeout() time.Duration {
	return time.Duration(c.Quote.TimeoutMS) * time.Millisecond
}

// CatalogTimeout returns the bound on a catalog request.
func (c *Config) CatalogTimeout() time.Duration {
	return time.Duration(c.Catalog.TimeoutMS) * time.Millisecond
}

// ShutdownTimeout bounds graceful shutdown.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutMS) * time.Millisecond
}

// Addr is the status server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }
