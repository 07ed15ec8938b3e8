package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Drivers soportados para el historial del chat.
const (
	StoreDriverMemory   = "memory"
	StoreDriverRedis    = "redis"
	StoreDriverPostgres = "postgres"
)

var (
	ErrUnknownStoreDriver = errors.New("unknown store driver")
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required for the postgres store")
	ErrMissingRedisAddr   = errors.New("REDIS_ADDR is required for the redis store")
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"8080"`
	AppEnv        string `env:"APP_ENV" envDefault:"production"`
	StoreDriver   string `env:"STORE_DRIVER" envDefault:"memory"`
	DatabaseURL   string `env:"DATABASE_URL"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"chat:"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate revisa los requisitos propios de cada driver.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverMemory:
		return nil
	case StoreDriverRedis:
		if c.RedisAddr == "" {
			return ErrMissingRedisAddr
		}
		return nil
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return ErrMissingDatabaseURL
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStoreDriver, c.StoreDriver)
	}
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// CLIConfig es la configuración del cliente de terminal.
type CLIConfig struct {
	APIURL   string `env:"CHAT_API_URL" envDefault:"http://localhost:8080"`
	Username string `env:"CHAT_USERNAME"`
}

func LoadCLIConfig() (*CLIConfig, error) {
	var cfg CLIConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
