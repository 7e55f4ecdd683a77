// Package config loads the service configuration from the environment.
//
// Variables use the BMI_ prefix. The first underscore after the prefix
// separates the section from the field, so BMI_SERVER_READ_TIMEOUT maps to
// server.read_timeout. A .env file in the working directory is loaded first
// when present. PORT is honored as a fallback for BMI_SERVER_PORT.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const prefix = "BMI_"

// Config is the root configuration object.
type Config struct {
	Env     string        `koanf:"env" validate:"required"`
	Server  ServerConfig  `koanf:"server" validate:"required"`
	Admin   AdminConfig   `koanf:"admin"`
	Logging LoggingConfig `koanf:"logging" validate:"required"`
}

// ServerConfig groups settings of the public HTTP listener.
type ServerConfig struct {
	Port            string        `koanf:"port" validate:"required,numeric"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// AdminConfig configures the optional listener serving /metrics and the API
// documentation. An empty Addr disables it.
type AdminConfig struct {
	Addr string `koanf:"addr" validate:"omitempty,hostname_port"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"required,oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"required,oneof=json console"`
}

// Default returns the configuration used when no variable is set.
func Default() *Config {
	return &Config{
		Env: "development",
		Server: ServerConfig{
			Port:            "3000",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the environment over the defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider("PORT", ".", func(s string) string {
		if s != "PORT" {
			return ""
		}
		return "server.port"
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load PORT: %w", err)
	}

	err = k.Load(env.Provider(prefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("load %s variables: %w", prefix, err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// envKey maps BMI_SERVER_READ_TIMEOUT to server.read_timeout.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, prefix))
	return strings.Replace(key, "_", ".", 1)
}

// Addr is the listen address of the public server.
func (c ServerConfig) Addr() string {
	return ":" + c.Port
}
