// SPDX-License-Identifier: MIT
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	applog "audioendpoints/internal/log"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file specified by path. If path is
// empty it looks for "config.yaml" in the working directory and falls back to
// built-in defaults when there is none. A ".env" file in the working directory
// is loaded into the process environment (existing variables win), then ENV_*
// overrides are applied and the final configuration is validated.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := loadEnvFile(DefaultEnvFile); err != nil {
		return nil, err
	}

	// Apply environment variable overrides AFTER loading from file.
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadEnvFile loads name into the environment if it exists.
func loadEnvFile(name string) error {
	if _, err := os.Stat(name); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(name); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", name, err)
	}
	return nil
}

// Validate checks the configuration for values the commands cannot use.
func (c *Config) Validate() error {
	if _, ok := applog.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel)
	}

	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("output.format %q must be %q or %q", c.Output.Format, FormatText, FormatJSON)
	}

	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		return fmt.Errorf("server.addr %q: %w", c.Server.Addr, err)
	}
	if !strings.HasPrefix(c.Server.Path, "/") {
		return fmt.Errorf("server.path %q must start with '/'", c.Server.Path)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive")
	}

	return nil
}

// Level returns the effective log level. Debug overrides log_level.
func (c *Config) Level() applog.LogLevel {
	if c.Debug {
		return applog.LevelDebug
	}
	level, _ := applog.ParseLevel(c.LogLevel)
	return level
}

// applyEnvOverrides replaces config values with ENV_* variables when set.
// Unparseable values are ignored.
func (c *Config) applyEnvOverrides() {
	// ENV_DEBUG
	if val, ok := os.LookupEnv("ENV_DEBUG"); ok {
		if bVal, err := strconv.ParseBool(val); err == nil {
			c.Debug = bVal
			applog.Debugf("configuration: overriding debug from env: %v", bVal)
		}
	}
	// ENV_LOG_LEVEL
	if val, ok := os.LookupEnv("ENV_LOG_LEVEL"); ok {
		c.LogLevel = val
		applog.Debugf("configuration: overriding log_level from env: %s", val)
	}
	// ENV_OUTPUT_FORMAT
	if val, ok := os.LookupEnv("ENV_OUTPUT_FORMAT"); ok {
		c.Output.Format = strings.ToLower(val)
		applog.Debugf("configuration: overriding output.format from env: %s", val)
	}

	// ENV_SERVER_{...}
	// These are specific to the serve command.

	// ENV_SERVER_ADDR
	if val, ok := os.LookupEnv("ENV_SERVER_ADDR"); ok {
		c.Server.Addr = val
		applog.Debugf("configuration: overriding server.addr from env: %s", val)
	}
	// ENV_SERVER_PATH
	if val, ok := os.LookupEnv("ENV_SERVER_PATH"); ok {
		c.Server.Path = val
		applog.Debugf("configuration: overriding server.path from env: %s", val)
	}
}
