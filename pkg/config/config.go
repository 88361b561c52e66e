package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External feeds
	Portal PortalConfig
	News   NewsConfig
	Ticker TickerConfig

	// Decision pipeline tuning
	Pipeline PipelineConfig

	// Oracles (credit check, road status, destination assignment)
	Oracle OracleConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	URL      string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// PortalConfig holds public-procurement portal API configuration
type PortalConfig struct {
	BaseURL    string
	WindowDays int
	CacheTTL   time.Duration
}

// NewsConfig holds the news scanner configuration
type NewsConfig struct {
	BaseURL  string
	CacheTTL time.Duration
}

// TickerConfig holds the steel price ticker configuration
type TickerConfig struct {
	URL     string
	Enabled bool
}

// PipelineConfig holds the decision pipeline constants.
// Defaults mirror the placeholder business assumptions the pipeline was
// calibrated with; production deployments override them per contract.
type PipelineConfig struct {
	BaseUnitPrice    float64 // USD per ton before supplier price factor
	OceanFreightRate float64 // fraction of FOB
	DutyRate         float64 // fraction of FOB
	InlandBaseCost   float64 // USD flat inland freight
	DetourSurcharge  float64 // USD added when the main corridor is closed
	SaleMargin       float64 // markup over landed cost
	MaxDecisions     int     // critical products priced per run
	MaxRoutes        int     // decisions routed per run
}

// OracleConfig selects the implementation of the business oracles
type OracleConfig struct {
	Mode string // simulated, fixed
	Seed int64  // RNG seed for simulated mode; 0 means time-based
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8084"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			Name:            getEnv("DB_NAME", "steelbrain"),
			User:            getEnv("DB_USER", "steelbrain"),
			Password:        getEnv("DB_PASSWORD", ""),
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		// External feeds
		Portal: PortalConfig{
			BaseURL:    getEnv("PORTAL_BASE_URL", "https://datosabiertos.compraspublicas.gob.ec"),
			WindowDays: getEnvAsInt("PORTAL_WINDOW_DAYS", 60),
			CacheTTL:   getEnvAsDuration("PORTAL_CACHE_TTL", "2h"),
		},
		News: NewsConfig{
			BaseURL:  getEnv("NEWS_BASE_URL", "https://news.google.com/rss/search"),
			CacheTTL: getEnvAsDuration("NEWS_CACHE_TTL", "1h"),
		},
		Ticker: TickerConfig{
			URL:     getEnv("TICKER_URL", ""),
			Enabled: getEnvAsBool("TICKER_ENABLED", false),
		},

		// Pipeline constants
		Pipeline: PipelineConfig{
			BaseUnitPrice:    getEnvAsFloat("PIPELINE_BASE_UNIT_PRICE", 1200),
			OceanFreightRate: getEnvAsFloat("PIPELINE_OCEAN_FREIGHT_RATE", 0.15),
			DutyRate:         getEnvAsFloat("PIPELINE_DUTY_RATE", 0.10),
			InlandBaseCost:   getEnvAsFloat("PIPELINE_INLAND_BASE_COST", 200),
			DetourSurcharge:  getEnvAsFloat("PIPELINE_DETOUR_SURCHARGE", 150),
			SaleMargin:       getEnvAsFloat("PIPELINE_SALE_MARGIN", 0.25),
			MaxDecisions:     getEnvAsInt("PIPELINE_MAX_DECISIONS", 5),
			MaxRoutes:        getEnvAsInt("PIPELINE_MAX_ROUTES", 3),
		},

		// Oracles
		Oracle: OracleConfig{
			Mode: getEnv("ORACLE_MODE", "simulated"),
			Seed: int64(getEnvAsInt("ORACLE_SEED", 0)),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Oracle.Mode != "simulated" && c.Oracle.Mode != "fixed" {
		return fmt.Errorf("ORACLE_MODE must be one of: simulated, fixed")
	}

	if c.Pipeline.BaseUnitPrice <= 0 {
		return fmt.Errorf("PIPELINE_BASE_UNIT_PRICE must be positive")
	}
	if c.Pipeline.SaleMargin < 0 {
		return fmt.Errorf("PIPELINE_SALE_MARGIN must not be negative")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
