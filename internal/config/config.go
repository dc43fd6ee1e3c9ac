package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gyeh/chargecompare/internal/catalog"
	"github.com/gyeh/chargecompare/internal/db"
)

// Keys shared by flags, environment variables (CHARGES_ prefix, dashes as
// underscores) and defaults.
const (
	KeyInpatientDSN     = "inpatient-dsn"
	KeyOutpatientDSN    = "outpatient-dsn"
	KeyLogFormat        = "log-format"
	KeyLogLevel         = "log-level"
	KeyCatalog          = "catalog"
	KeyMaxConns         = "max-conns"
	KeyMinConns         = "min-conns"
	KeyMaxConnLifetime  = "max-conn-lifetime"
	KeyMaxConnIdleTime  = "max-conn-idle-time"
	KeyAcquireTimeout   = "acquire-timeout"
	KeyStatementTimeout = "statement-timeout"
)

// Config holds all runtime configuration for a chargecmp run.
type Config struct {
	InpatientDSN  string
	OutpatientDSN string // defaults to InpatientDSN
	LogFormat     string // "text" or "json"
	LogLevel      string
	CatalogPath   string // optional YAML override of procedure names
	Pool          PoolConfig
}

// PoolConfig bounds each connection pool.
type PoolConfig struct {
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	AcquireTimeout   time.Duration
	StatementTimeout time.Duration
}

// Load resolves configuration from flags, CHARGES_* environment variables and
// defaults, in that order of precedence. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CHARGES")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyMaxConns, 10)
	v.SetDefault(KeyMinConns, 0)
	v.SetDefault(KeyMaxConnLifetime, time.Hour)
	v.SetDefault(KeyMaxConnIdleTime, 30*time.Minute)
	v.SetDefault(KeyAcquireTimeout, 10*time.Second)
	v.SetDefault(KeyStatementTimeout, 30*time.Second)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	cfg := &Config{
		InpatientDSN:  v.GetString(KeyInpatientDSN),
		OutpatientDSN: v.GetString(KeyOutpatientDSN),
		LogFormat:     v.GetString(KeyLogFormat),
		LogLevel:      v.GetString(KeyLogLevel),
		CatalogPath:   v.GetString(KeyCatalog),
		Pool: PoolConfig{
			MaxConns:         v.GetInt32(KeyMaxConns),
			MinConns:         v.GetInt32(KeyMinConns),
			MaxConnLifetime:  v.GetDuration(KeyMaxConnLifetime),
			MaxConnIdleTime:  v.GetDuration(KeyMaxConnIdleTime),
			AcquireTimeout:   v.GetDuration(KeyAcquireTimeout),
			StatementTimeout: v.GetDuration(KeyStatementTimeout),
		},
	}
	if cfg.OutpatientDSN == "" {
		cfg.OutpatientDSN = cfg.InpatientDSN
	}
	return cfg, nil
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.InpatientDSN == "" {
		return fmt.Errorf("--%s or CHARGES_INPATIENT_DSN is required", KeyInpatientDSN)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log format must be \"text\" or \"json\", got %q", c.LogFormat)
	}
	if c.Pool.MaxConns < 1 {
		return fmt.Errorf("max conns must be at least 1, got %d", c.Pool.MaxConns)
	}
	if c.Pool.MinConns < 0 || c.Pool.MinConns > c.Pool.MaxConns {
		return fmt.Errorf("min conns must be between 0 and max conns (%d), got %d", c.Pool.MaxConns, c.Pool.MinConns)
	}
	if c.Pool.AcquireTimeout < 0 || c.Pool.StatementTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}

// Catalog returns the procedure catalog: the built-in one, or the YAML
// override at CatalogPath merged over it.
func (c *Config) Catalog() (catalog.Catalog, error) {
	if c.CatalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(c.CatalogPath)
}

// PoolOptions converts the pool section for db.NewPool.
func (c *Config) PoolOptions() db.PoolOptions {
	return db.PoolOptions{
		MaxConns:         c.Pool.MaxConns,
		MinConns:         c.Pool.MinConns,
		MaxConnLifetime:  c.Pool.MaxConnLifetime,
		MaxConnIdleTime:  c.Pool.MaxConnIdleTime,
		StatementTimeout: c.Pool.StatementTimeout,
		ApplicationName:  "chargecmp",
	}
}
