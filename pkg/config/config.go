package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/multierr"
)

type Config struct {
	ListenAddr       string        `env:"LISTEN_ADDR" envDefault:":3000"`
	DatabaseURL      string        `env:"DATABASE_URL"`
	RedisURL         string        `env:"REDIS_URL"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	StatsKey         string        `env:"STATS_KEY" envDefault:"roll_stats"`
	FlushEnabled     bool          `env:"FLUSH_ENABLED" envDefault:"true"`
	FlushEvery       time.Duration `env:"FLUSH_EVERY" envDefault:"1m"`
	FlushTimeout     time.Duration `env:"FLUSH_TIMEOUT" envDefault:"30s"`
	FlushResumeStale bool          `env:"FLUSH_RESUME_STALE" envDefault:"false"`
	RecordTimeout    time.Duration `env:"RECORD_TIMEOUT" envDefault:"2s"`
	MaxCPU           int           `env:"MAX_CPU" envDefault:"0"`
	ShutdownWait     time.Duration `env:"SHUTDOWN_WAIT" envDefault:"5s"`
}

// Driver names the durable store backend selected by DATABASE_URL.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

func Parse() (*Config, error) {
	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	c := &Config{}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	var err error
	if c.DatabaseURL == "" {
		err = multierr.Append(err, fmt.Errorf("DATABASE_URL is required"))
	} else if _, _, derr := c.Database(); derr != nil {
		err = multierr.Append(err, derr)
	}
	if c.RedisURL == "" {
		err = multierr.Append(err, fmt.Errorf("REDIS_URL is required"))
	}
	if c.StatsKey == "" {
		err = multierr.Append(err, fmt.Errorf("STATS_KEY must not be empty"))
	}
	for name, d := range map[string]time.Duration{
		"FLUSH_EVERY":    c.FlushEvery,
		"FLUSH_TIMEOUT":  c.FlushTimeout,
		"RECORD_TIMEOUT": c.RecordTimeout,
		"SHUTDOWN_WAIT":  c.ShutdownWait,
	} {
		if d <= 0 {
			err = multierr.Append(err, fmt.Errorf("%s must be > 0", name))
		}
	}
	if c.MaxCPU < 0 {
		err = multierr.Append(err, fmt.Errorf("MAX_CPU must be >= 0"))
	}
	return err
}

// Database splits DATABASE_URL into a driver and the DSN that driver expects.
// postgres:// and postgresql:// go to pgx unchanged; sqlite://<path> and
// file:<path> go to the embedded store as a file path.
func (c *Config) Database() (Driver, string, error) {
	u := c.DatabaseURL
	switch {
	case strings.HasPrefix(u, "postgres://"), strings.HasPrefix(u, "postgresql://"):
		return DriverPostgres, u, nil
	case strings.HasPrefix(u, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(u, "sqlite://"), nil
	case strings.HasPrefix(u, "file:"):
		return DriverSQLite, strings.TrimPrefix(u, "file:"), nil
	}
	return "", "", fmt.Errorf("DATABASE_URL: unsupported scheme in %q", u)
}
