// Package config loads the simulator settings from the environment and from
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sarchlab/pagesim/refstring"
)

// The environment variables read by Load.
const (
	EnvMaxPage     = "PAGESIM_MAX_PAGE"
	EnvMaxLength   = "PAGESIM_MAX_LENGTH"
	EnvMaxFrames   = "PAGESIM_MAX_FRAMES"
	EnvSeed        = "PAGESIM_SEED"
	EnvLogLevel    = "PAGESIM_LOG_LEVEL"
	EnvTraceFile   = "PAGESIM_TRACE_FILE"
	EnvRecordDB    = "PAGESIM_RECORD_DB"
	EnvMonitorPort = "PAGESIM_MONITOR_PORT"
)

// Config holds the settings shared by all commands.
type Config struct {
	Limits refstring.Limits

	// Seed is only meaningful when HasSeed is set. Otherwise the random
	// source is seeded from the clock.
	Seed    int64
	HasSeed bool

	LogLevel    slog.Level
	TraceFile   string
	RecordDB    string
	MonitorPort int
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Limits:   refstring.DefaultLimits(),
		LogLevel: slog.LevelInfo,
	}
}

// Load reads envFile, if it exists, into the environment and then builds the
// configuration from the environment. Variables already set in the
// environment take precedence over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		_, err := os.Stat(envFile)
		if err == nil {
			err = godotenv.Load(envFile)
			if err != nil {
				return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	return FromEnv()
}

// FromEnv builds the configuration from the environment only.
func FromEnv() (Config, error) {
	c := Default()

	var errs []error

	intVar := func(name string, dst *int) {
		if err := lookupInt(name, dst); err != nil {
			errs = append(errs, err)
		}
	}

	intVar(EnvMaxPage, &c.Limits.MaxPage)
	intVar(EnvMaxLength, &c.Limits.MaxLength)
	intVar(EnvMaxFrames, &c.Limits.MaxFrames)
	intVar(EnvMonitorPort, &c.MonitorPort)

	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSeed, err))
		} else {
			c.Seed = seed
			c.HasSeed = true
		}
	}

	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		err := c.LogLevel.UnmarshalText([]byte(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvLogLevel, err))
		}
	}

	c.TraceFile = os.Getenv(EnvTraceFile)
	c.RecordDB = os.Getenv(EnvRecordDB)

	errs = append(errs, c.validate())

	err := errors.Join(errs...)
	if err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c Config) validate() error {
	switch {
	case c.Limits.MaxPage < 0:
		return fmt.Errorf("%s must not be negative", EnvMaxPage)
	case c.Limits.MaxLength < 1:
		return fmt.Errorf("%s must be positive", EnvMaxLength)
	case c.Limits.MaxFrames < 1:
		return fmt.Errorf("%s must be positive", EnvMaxFrames)
	case c.MonitorPort < 0 || c.MonitorPort > 65535:
		return fmt.Errorf("%s must be a port number", EnvMonitorPort)
	}

	return nil
}

func lookupInt(name string, dst *int) error {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	*dst = i

	return nil
}
