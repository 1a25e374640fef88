// Package config loads runtime settings for the formcheck CLI and server.
//
// Sources, lowest precedence first: built-in defaults, a .env file in the
// working directory, FORMCHECK_* environment variables, then command-line
// overrides.
package config

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds server and logging settings.
type Config struct {
	Server struct {
		Addr         string        `env:"ADDR" envDefault:":8080"`
		MaxBodyBytes int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
		ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	} `envPrefix:"SERVER_"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

var dotenvLoaded sync.Once

// Load reads the environment and applies overrides on top. Zero-valued fields
// in overrides are ignored. overrides may be nil.
func Load(overrides *Config) (*Config, error) {
	dotenvLoaded.Do(func() {
		// a missing .env file is fine
		_ = godotenv.Load()
	})

	cfg := new(Config)
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "FORMCHECK_"}); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}

	if overrides != nil {
		if err := mergo.Merge(cfg, overrides, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, fmt.Errorf("%w: empty address", ErrInvalidServerConfig))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("%w: max body bytes must be positive", ErrInvalidServerConfig))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: read timeout must be positive", ErrInvalidServerConfig))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidLogConfig, err))
	}
	return errors.Join(errs...)
}
