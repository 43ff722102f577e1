// SPDX-License-Identifier: MIT
package config

import "time"

// Defaults and limits for the endpoint lister.
const (
	DefaultDebug        = false
	DefaultLogLevel     = "info"
	DefaultFormat       = FormatText
	DefaultServerAddr   = "127.0.0.1:8765" // Loopback only; hosts run on the same machine.
	DefaultServerPath   = "/ws"
	DefaultWriteTimeout = 5 * time.Second
	DefaultConfigFile   = "config.yaml"
	DefaultEnvFile      = ".env"
)

// Output formats accepted by the list command.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config represents the application configuration, loaded from YAML.
type Config struct {
	Debug    bool         `yaml:"debug"`     // Force DEBUG logging.
	LogLevel string       `yaml:"log_level"` // debug, info, warn, error.
	Output   OutputConfig `yaml:"output"`    // Settings for the list command.
	Server   ServerConfig `yaml:"server"`    // Settings for the serve command.
}

// OutputConfig controls how endpoint lists are printed.
type OutputConfig struct {
	Format string `yaml:"format"` // "text" or "json".
}

// ServerConfig controls the WebSocket server host applications connect to.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`          // Listen address, host:port.
	Path         string        `yaml:"path"`          // HTTP path upgraded to WebSocket.
	WriteTimeout time.Duration `yaml:"write_timeout"` // Deadline for a single reply.
}

// NewConfig returns a Config holding the built-in defaults. It is the base
// onto which the config file, environment and command line are applied.
func NewConfig() *Config {
	return &Config{
		Debug:    DefaultDebug,
		LogLevel: DefaultLogLevel,
		Output: OutputConfig{
			Format: DefaultFormat,
		},
		Server: ServerConfig{
			Addr:         DefaultServerAddr,
			Path:         DefaultServerPath,
			WriteTimeout: DefaultWriteTimeout,
		},
	}
}
