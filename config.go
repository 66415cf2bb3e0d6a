package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// BindAddress is the address the HTTP API listens on (e.g. "0.0.0.0:8080")
	BindAddress string `yaml:"bind_address"`
	// SerialPort is the path to the device's serial port (e.g. "/dev/ttyUSB0")
	SerialPort string `yaml:"serial_port"`
	// BaudRate is the baud rate for serial communication (e.g. 115200)
	BaudRate int `yaml:"baud_rate"`
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string `yaml:"log_level"`
	// Delimiters are the characters separating command tokens (e.g. ",")
	Delimiters string `yaml:"delimiters"`
	// Terminator is the end-of-command character (e.g. ";")
	Terminator string `yaml:"terminator"`
	// Header prefixes every reply the gateway composes (e.g. "R")
	Header string `yaml:"header"`
	// Decimals is the number of decimal places in floating point replies
	Decimals int `yaml:"decimals"`
	// BufferSize is the longest accepted command line in bytes
	BufferSize int `yaml:"buffer_size"`
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	if len(config.Terminator) != 1 {
		return nil, fmt.Errorf("terminator must be a single character, got %q", config.Terminator)
	}

	return config, nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.BindAddress = "0.0.0.0:8080"
		c.SerialPort = "/dev/ttyUSB0"
		c.BaudRate = 115200
		c.LogLevel = "info"
		c.Delimiters = ","
		c.Terminator = ";"
		c.Decimals = 2
		c.BufferSize = 64
		return nil
	}
}

// WithFile overlays the settings present in a YAML file. An empty path is
// a no-op.
func WithFile(path string) ConfigOption {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
		return nil
	}
}

// WithEnv loads configuration from environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
			c.BindAddress = addr
		}

		if serial := os.Getenv("SERIAL_PORT"); serial != "" {
			c.SerialPort = serial
		}

		if baud := os.Getenv("BAUD_RATE"); baud != "" {
			if b, err := strconv.Atoi(baud); err == nil {
				c.BaudRate = b
			}
		}

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}

		if delims := os.Getenv("CMD_DELIMITERS"); delims != "" {
			c.Delimiters = delims
		}

		if term := os.Getenv("CMD_TERMINATOR"); term != "" {
			c.Terminator = term
		}

		if header := os.Getenv("CMD_HEADER"); header != "" {
			c.Header = header
		}

		if decimals := os.Getenv("CMD_DECIMALS"); decimals != "" {
			if d, err := strconv.Atoi(decimals); err == nil {
				c.Decimals = d
			}
		}

		if size := os.Getenv("CMD_BUFFER_SIZE"); size != "" {
			if s, err := strconv.Atoi(size); err == nil {
				c.BufferSize = s
			}
		}

		return nil
	}
}

// WithFlags loads configuration from command-line flags
func WithFlags(fSet *flag.FlagSet) ConfigOption {
	return func(c *Config) error {
		fSet.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "bind-address":
				c.BindAddress = f.Value.String()
			case "serial-port":
				c.SerialPort = f.Value.String()
			case "baud-rate":
				if b, err := strconv.Atoi(f.Value.String()); err == nil {
					c.BaudRate = b
				}
			case "log-level":
				c.LogLevel = f.Value.String()
			case "delimiters":
				c.Delimiters = f.Value.String()
			case "terminator":
				c.Terminator = f.Value.String()
			case "header":
				c.Header = f.Value.String()
			case "decimals":
				if d, err := strconv.Atoi(f.Value.String()); err == nil {
					c.Decimals = d
				}
			case "buffer-size":
				if s, err := strconv.Atoi(f.Value.String()); err == nil {
					c.BufferSize = s
				}
			}
		})
		return nil
	}
}
