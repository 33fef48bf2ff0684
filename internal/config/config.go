// Package config loads shop-api settings from defaults, an optional YAML
// file, the environment and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "SHOP"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Store     StoreConfig     `mapstructure:"store"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`

	// TrustProxy reads the client address from forwarding headers.
	TrustProxy bool `mapstructure:"trust_proxy"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// StoreConfig controls the in-memory collections. Seed loads the two sample
// products and albums at startup.
type StoreConfig struct {
	Seed bool `mapstructure:"seed"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
}

type CORSConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	MaxAge         int      `mapstructure:"max_age" validate:"min=0"`
}

// RateLimitConfig limits requests per client IP. Requests=0 disables it.
type RateLimitConfig struct {
	Requests      int `mapstructure:"requests" validate:"min=0"`
	WindowSeconds int `mapstructure:"window_seconds" validate:"min=1"`
}

// flagToViperKey maps CLI flag names to viper keys.
var flagToViperKey = map[string]string{
	"port":      "server.port",
	"log-level": "log.level",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.trust_proxy", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("store.seed", true)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.token", "")

	v.SetDefault("cors.enabled", false)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type", "X-Request-Id"})
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("ratelimit.requests", 0)
	v.SetDefault("ratelimit.window_seconds", 60)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		key, ok := flagToViperKey[f.Name]
		if !ok || !f.Changed {
			return
		}
		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = errors.Join(err, bindErr)
		}
	})
	return err
}

// Load builds a validated Config. configFile may be empty, in which case
// ./config.yaml is read if it exists. flags may be nil.
//
// The listening port also honours the bare PORT variable, after
// SHOP_SERVER_PORT.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", envPrefix+"_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Addr is the listen address for the configured port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
