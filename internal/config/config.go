// Package config provides configuration management for the prop-edge scanner.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	OddsAPI   OddsAPIConfig   `mapstructure:"odds_api" validate:"required"`
	Engine    EngineConfig    `mapstructure:"engine" validate:"required"`
	Stats     StatsConfig     `mapstructure:"stats" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
	API       APIConfig       `mapstructure:"api" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Port           int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required"`
	User           string `mapstructure:"user" validate:"required"`
	Password       string `mapstructure:"password" validate:"required"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"required,gt=0"`
}

// OddsAPIConfig represents odds provider configuration
type OddsAPIConfig struct {
	BaseURL           string  `mapstructure:"base_url" validate:"required,url"`
	APIKey            string  `mapstructure:"api_key" validate:"required"`
	Regions           string  `mapstructure:"regions" validate:"required"`
	LookaheadDays     int     `mapstructure:"lookahead_days" validate:"required,gt=0"`
	RateLimit         float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0"`
	CircuitBreakerMax int     `mapstructure:"circuit_breaker_max" validate:"required,gt=0"`
}

// EngineConfig represents scoring policy: book roles, the minimum EV to
// keep, and pass parallelism. Passed explicitly into the engine rather
// than read as ambient state.
type EngineConfig struct {
	SharpBooks   []string `mapstructure:"sharp_books" validate:"required,min=1"`
	SoftBooks    []string `mapstructure:"soft_books" validate:"required,min=1"`
	MinEVPercent float64  `mapstructure:"min_ev_percent"`
	Workers      int      `mapstructure:"workers" validate:"required,gt=0"`
}

// StatsSportConfig represents one sport's historical stats input.
type StatsSportConfig struct {
	Sport   string   `mapstructure:"sport" validate:"required,sportkey"`
	File    string   `mapstructure:"file" validate:"required"`
	Markets []string `mapstructure:"markets" validate:"required,min=1"`
	Enabled bool     `mapstructure:"enabled"`
}

// StatsConfig represents historical stats configuration
type StatsConfig struct {
	Sports          []StatsSportConfig `mapstructure:"sports" validate:"required,min=1,dive"`
	CacheTTLSeconds int                `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
}

// SchedulerConfig represents the recompute cycle configuration
type SchedulerConfig struct {
	IntervalMinutes     int  `mapstructure:"interval_minutes" validate:"required,gt=0"`
	RunOnStart          bool `mapstructure:"run_on_start"`
	StaleBetHours       int  `mapstructure:"stale_bet_hours" validate:"required,gt=0"`
	CycleTimeoutMinutes int  `mapstructure:"cycle_timeout_minutes" validate:"required,gt=0"`
}

// APIConfig represents the query API configuration
type APIConfig struct {
	Port           int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	Key            string   `mapstructure:"key" validate:"required"`
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"required,min=1"`
	DefaultLimit   int      `mapstructure:"default_limit" validate:"required,gt=0"`
	MaxLimit       int      `mapstructure:"max_limit" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// CycleTimeout returns the per-cycle time budget.
func (c *Config) CycleTimeout() time.Duration {
	return time.Duration(c.Scheduler.CycleTimeoutMinutes) * time.Minute
}

// StatsCacheTTL returns the stats lookup cache TTL.
func (c *Config) StatsCacheTTL() time.Duration {
	return time.Duration(c.Stats.CacheTTLSeconds) * time.Second
}
