package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultProductCount   = 50
	defaultShelfCount     = 5
	defaultShelfCapacity  = 20
	defaultMaxBenchmarkN  = 200
	defaultMaxProducts    = 5_000
	defaultMaxShelves     = 1_000
	defaultMaxCapacity    = 5_000
	defaultMaxDPCells     = 2_000_000
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

var logLevels = map[string]struct{}{
	"debug": {}, "info": {}, "warn": {}, "error": {},
}

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	// Defaults for catalog generation and placement requests.
	ProductCount  int    `yaml:"product_count"`
	ShelfCount    int    `yaml:"shelf_count"`
	ShelfCapacity int    `yaml:"shelf_capacity"`
	Seed          uint64 `yaml:"seed"`

	// Upper bounds enforced at the HTTP boundary. MaxKnapsackCells caps
	// (products+1) x (capacity+1), the size of one knapsack table.
	MaxProductCount  int `yaml:"max_product_count"`
	MaxShelfCount    int `yaml:"max_shelf_count"`
	MaxShelfCapacity int `yaml:"max_shelf_capacity"`
	MaxBenchmarkN    int `yaml:"max_benchmark_n"`
	MaxKnapsackCells int `yaml:"max_knapsack_cells"`

	ShutdownGracePeriod  time.Duration `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    time.Duration `yaml:"read_header_timeout"`
	WriteTimeout         time.Duration `yaml:"write_timeout"`
	IdleTimeout          time.Duration `yaml:"idle_timeout"`
	EnableRequestLogging bool          `yaml:"enable_request_logging"`
	EnableMetrics        bool          `yaml:"enable_metrics"`
	RateLimitRPS         float64       `yaml:"-"`
	RateLimitBurst       int           `yaml:"-"`
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Port                 string        `yaml:"port"`
	LogLevel             string        `yaml:"log_level"`
	Catalog              yamlCatalog   `yaml:"catalog"`
	Shelves              yamlShelves   `yaml:"shelves"`
	Limits               yamlLimits    `yaml:"limits"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	EnableMetrics        *bool         `yaml:"enable_metrics"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
}

type yamlCatalog struct {
	ProductCount *int    `yaml:"product_count"`
	Seed         *uint64 `yaml:"seed"`
}

type yamlShelves struct {
	Count    *int `yaml:"count"`
	Capacity *int `yaml:"capacity"`
}

type yamlLimits struct {
	MaxProductCount  int `yaml:"max_product_count"`
	MaxShelfCount    int `yaml:"max_shelf_count"`
	MaxShelfCapacity int `yaml:"max_shelf_capacity"`
	MaxBenchmarkN    int `yaml:"max_benchmark_n"`
	MaxKnapsackCells int `yaml:"max_knapsack_cells"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	LogLevel       *string
	ProductCount   *int
	ShelfCount     *int
	ShelfCapacity  *int
	Seed           *uint64
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := Default()

	// Apply environment variables
	applyEnvConfig(&cfg)

	// Load from YAML file if specified (overrides env)
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("apply YAML config: %w", err)
		}
	}

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	// Validate final configuration
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Default returns a Config with default values.
func Default() Config {
	return Config{
		Port:                 defaultPort,
		LogLevel:             defaultLogLevel,
		ProductCount:         defaultProductCount,
		ShelfCount:           defaultShelfCount,
		ShelfCapacity:        defaultShelfCapacity,
		MaxProductCount:      defaultMaxProducts,
		MaxShelfCount:        defaultMaxShelves,
		MaxShelfCapacity:     defaultMaxCapacity,
		MaxBenchmarkN:        defaultMaxBenchmarkN,
		MaxKnapsackCells:     defaultMaxDPCells,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         60 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		EnableMetrics:        true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	if v := yamlCfg.Catalog.ProductCount; v != nil {
		cfg.ProductCount = *v
	}
	if v := yamlCfg.Catalog.Seed; v != nil {
		cfg.Seed = *v
	}
	if v := yamlCfg.Shelves.Count; v != nil {
		cfg.ShelfCount = *v
	}
	if v := yamlCfg.Shelves.Capacity; v != nil {
		cfg.ShelfCapacity = *v
	}

	if yamlCfg.Limits.MaxProductCount > 0 {
		cfg.MaxProductCount = yamlCfg.Limits.MaxProductCount
	}
	if yamlCfg.Limits.MaxShelfCount > 0 {
		cfg.MaxShelfCount = yamlCfg.Limits.MaxShelfCount
	}
	if yamlCfg.Limits.MaxShelfCapacity > 0 {
		cfg.MaxShelfCapacity = yamlCfg.Limits.MaxShelfCapacity
	}
	if yamlCfg.Limits.MaxBenchmarkN > 0 {
		cfg.MaxBenchmarkN = yamlCfg.Limits.MaxBenchmarkN
	}
	if yamlCfg.Limits.MaxKnapsackCells > 0 {
		cfg.MaxKnapsackCells = yamlCfg.Limits.MaxKnapsackCells
	}

	durations := []struct {
		raw string
		dst *time.Duration
		key string
	}{
		{yamlCfg.ShutdownGracePeriod, &cfg.ShutdownGracePeriod, "shutdown_grace_period"},
		{yamlCfg.ReadHeaderTimeout, &cfg.ReadHeaderTimeout, "read_header_timeout"},
		{yamlCfg.WriteTimeout, &cfg.WriteTimeout, "write_timeout"},
		{yamlCfg.IdleTimeout, &cfg.IdleTimeout, "idle_timeout"},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}
	if yamlCfg.EnableMetrics != nil {
		cfg.EnableMetrics = *yamlCfg.EnableMetrics
	}

	if v := yamlCfg.RateLimit.RPS; v != nil && *v >= 0 {
		cfg.RateLimitRPS = *v
	}
	if v := yamlCfg.RateLimit.Burst; v != nil && *v >= 0 {
		cfg.RateLimitBurst = *v
	}

	return nil
}

// applyEnvConfig applies environment variable configuration. Malformed
// values are ignored and the previous value is kept.
func applyEnvConfig(cfg *Config) {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}
	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}

	envNonNegativeInt("PRODUCT_COUNT", &cfg.ProductCount)
	envNonNegativeInt("SHELF_COUNT", &cfg.ShelfCount)
	envNonNegativeInt("SHELF_CAPACITY", &cfg.ShelfCapacity)
	envNonNegativeInt("MAX_BENCHMARK_N", &cfg.MaxBenchmarkN)
	envNonNegativeInt("MAX_KNAPSACK_CELLS", &cfg.MaxKnapsackCells)
	envNonNegativeInt("RATE_LIMIT_BURST", &cfg.RateLimitBurst)

	if seed := strings.TrimSpace(os.Getenv("SEED")); seed != "" {
		if value, err := strconv.ParseUint(seed, 10, 64); err == nil {
			cfg.Seed = value
		}
	}

	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}
}

func envNonNegativeInt(key string, dst *int) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return
	}
	if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
		*dst = value
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}
	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(*overrides.LogLevel)
	}
	if overrides.ProductCount != nil {
		cfg.ProductCount = *overrides.ProductCount
	}
	if overrides.ShelfCount != nil {
		cfg.ShelfCount = *overrides.ShelfCount
	}
	if overrides.ShelfCapacity != nil {
		cfg.ShelfCapacity = *overrides.ShelfCapacity
	}
	if overrides.Seed != nil {
		cfg.Seed = *overrides.Seed
	}
	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}
	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if _, ok := logLevels[cfg.LogLevel]; !ok {
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", cfg.LogLevel)
	}
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	if cfg.MaxProductCount <= 0 || cfg.MaxShelfCount <= 0 || cfg.MaxShelfCapacity <= 0 || cfg.MaxBenchmarkN <= 0 || cfg.MaxKnapsackCells <= 0 {
		return fmt.Errorf("limits must be positive")
	}
	if cfg.ProductCount < 0 || cfg.ProductCount > cfg.MaxProductCount {
		return fmt.Errorf("product count must be between 0 and %d, got %d", cfg.MaxProductCount, cfg.ProductCount)
	}
	if cfg.ShelfCount < 0 || cfg.ShelfCount > cfg.MaxShelfCount {
		return fmt.Errorf("shelf count must be between 0 and %d, got %d", cfg.MaxShelfCount, cfg.ShelfCount)
	}
	if cfg.ShelfCapacity < 0 || cfg.ShelfCapacity > cfg.MaxShelfCapacity {
		return fmt.Errorf("shelf capacity must be between 0 and %d, got %d", cfg.MaxShelfCapacity, cfg.ShelfCapacity)
	}
	return nil
}
