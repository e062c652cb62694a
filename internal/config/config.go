// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Package config loads searchspot's typed configuration from a TOML file
// or from environment variables, with fail-fast validation so the
// service never serves traffic under a partial configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every section of searchspot's configuration.
type Config struct {
	HTTP    HTTPConfig    `mapstructure:"http"`
	ES      ESConfig      `mapstructure:"es"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Tokens  TokensConfig  `mapstructure:"tokens"`
	Monitor MonitorConfig `mapstructure:"monitor"`
}

// HTTPConfig is the mandatory [http] section.
type HTTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// ESConfig is the mandatory [es] section.
type ESConfig struct {
	URL   string `mapstructure:"url"`
	Index string `mapstructure:"index"`
}

// AuthConfig is the [auth] section. When it is absent, auth is disabled
// and no secrets are required; the section is not checked for presence.
type AuthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Read    string `mapstructure:"read"`
	Write   string `mapstructure:"write"`
}

// TokensConfig is the defaulted [tokens.lifetime] section.
type TokensConfig struct {
	Lifetime TokensLifetimeConfig `mapstructure:"lifetime"`
}

// TokensLifetimeConfig holds the TOTP step size in seconds for each
// scope, matching the plain-integer seconds shape used on the wire
// (TOML `read = 30` / env `TOKEN_READ_LIFETIME=30`).
type TokensLifetimeConfig struct {
	ReadSeconds  int `mapstructure:"read"`
	WriteSeconds int `mapstructure:"write"`
}

// Read returns the read-scope TOTP step as a time.Duration.
func (t TokensLifetimeConfig) Read() time.Duration {
	return time.Duration(t.ReadSeconds) * time.Second
}

// Write returns the write-scope TOTP step as a time.Duration.
func (t TokensLifetimeConfig) Write() time.Duration {
	return time.Duration(t.WriteSeconds) * time.Second
}

// MonitorConfig is the optional [monitor] section.
type MonitorConfig struct {
	Provider    string `mapstructure:"provider"`
	Enabled     bool   `mapstructure:"enabled"`
	AccessToken string `mapstructure:"access_token"`
	Environment string `mapstructure:"environment"`
}

const defaultTokenLifetimeSeconds = 30

// FromFile loads Config from a TOML file at path.
func FromFile(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	return unmarshalAndValidate(v)
}

// FromEnv loads Config entirely from environment variables (§6.4):
// HTTP_HOST, HTTP_PORT (or PORT), ES_URL, ES_INDEX, AUTH_ENABLED,
// AUTH_READ, AUTH_WRITE, TOKEN_READ_LIFETIME, TOKEN_WRITE_LIFETIME,
// MONITOR_*.
func FromEnv() (Config, error) {
	v := newViper()

	v.BindEnv("http.host", "HTTP_HOST")
	v.BindEnv("http.port", "HTTP_PORT", "PORT")
	v.BindEnv("es.url", "ES_URL")
	v.BindEnv("es.index", "ES_INDEX")
	v.BindEnv("auth.enabled", "AUTH_ENABLED")
	v.BindEnv("auth.read", "AUTH_READ")
	v.BindEnv("auth.write", "AUTH_WRITE")
	v.BindEnv("tokens.lifetime.read", "TOKEN_READ_LIFETIME")
	v.BindEnv("tokens.lifetime.write", "TOKEN_WRITE_LIFETIME")
	v.BindEnv("monitor.provider", "MONITOR_PROVIDER")
	v.BindEnv("monitor.enabled", "MONITOR_ENABLED")
	v.BindEnv("monitor.access_token", "MONITOR_ACCESS_TOKEN")
	v.BindEnv("monitor.environment", "MONITOR_ENVIRONMENT")

	return unmarshalAndValidate(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("tokens.lifetime.read", defaultTokenLifetimeSeconds)
	v.SetDefault("tokens.lifetime.write", defaultTokenLifetimeSeconds)
	v.SetDefault("http.host", "0.0.0.0")

	return v
}

func unmarshalAndValidate(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: failed to decode: %w", err)
	}
	if cfg.Tokens.Lifetime.ReadSeconds == 0 {
		cfg.Tokens.Lifetime.ReadSeconds = defaultTokenLifetimeSeconds
	}
	if cfg.Tokens.Lifetime.WriteSeconds == 0 {
		cfg.Tokens.Lifetime.WriteSeconds = defaultTokenLifetimeSeconds
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate enforces the mandatory [http] and [es] keys, and the read and
// write secrets when auth is enabled. A missing required key
// here means the process should abort rather than serve traffic under a
// partial configuration (§4.A, §6.5 exit codes).
func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Host) == "" {
		return fmt.Errorf("config: http.host is required")
	}
	if c.HTTP.Port <= 0 {
		return fmt.Errorf("config: http.port is required")
	}
	if strings.TrimSpace(c.ES.URL) == "" {
		return fmt.Errorf("config: es.url is required")
	}
	if strings.TrimSpace(c.ES.Index) == "" {
		return fmt.Errorf("config: es.index is required")
	}
	if c.Auth.Enabled {
		if strings.TrimSpace(c.Auth.Read) == "" {
			return fmt.Errorf("config: auth.read is required when auth is enabled")
		}
		if strings.TrimSpace(c.Auth.Write) == "" {
			return fmt.Errorf("config: auth.write is required when auth is enabled")
		}
	}
	return nil
}
