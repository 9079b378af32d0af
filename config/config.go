// Package config loads solver settings from a .env file, the environment
// and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/FabianaFerreira/modified-newton/system"
)

const defaultEnvFile = ".env"

// Config holds the command configuration. X, Y and Precision are kept as
// text; an empty value is asked for interactively.
type Config struct {
	X             string `env:"NEWTON_X"`
	Y             string `env:"NEWTON_Y"`
	Precision     string `env:"NEWTON_PRECISION"`
	MaxIterations int    `env:"NEWTON_MAX_ITERATIONS" envDefault:"6"`
	BatchFile     string `env:"NEWTON_BATCH_FILE"`
	Workers       int    `env:"NEWTON_WORKERS"        envDefault:"4"`
	TraceFormat   string `env:"NEWTON_TRACE_FORMAT"   envDefault:"lines"`
	LogLevel      string `env:"NEWTON_LOG_LEVEL"      envDefault:"info"`
	LogFormat     string `env:"NEWTON_LOG_FORMAT"     envDefault:"text"`
	MetricsFile   string `env:"NEWTON_METRICS_FILE"`
	Quiet         bool   `env:"NEWTON_QUIET"`
}

// ParseConfig loads the optional .env file named by NEWTON_ENV_FILE, parses
// the environment and then applies flags from args.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	if err := LoadDotEnv(os.Getenv("NEWTON_ENV_FILE")); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.X, "x", cfg.X, "initial x (prompted when empty)")
	fs.StringVar(&cfg.Y, "y", cfg.Y, "initial y (prompted when empty)")
	fs.StringVar(&cfg.Precision, "precision", cfg.Precision, "precision E (prompted when empty)")
	fs.IntVar(&cfg.MaxIterations, "max-iterations", cfg.MaxIterations, "iteration counter bound")
	fs.StringVar(&cfg.BatchFile, "batch", cfg.BatchFile, "netlist or YAML file of problems to solve in parallel")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent solves in batch mode")
	fs.StringVar(&cfg.TraceFormat, "trace", cfg.TraceFormat, "trace format: lines or table")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "write Prometheus metrics to this file on exit")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "do not print the equations banner")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxIterations < 1 {
		return fmt.Errorf("max iterations %d: %w", c.MaxIterations, system.ErrInvalidMaxIterations)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

// LoadDotEnv loads path (or .env when empty) without overriding variables
// already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
