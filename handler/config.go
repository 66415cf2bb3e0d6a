package handler

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"i4.energy/across/cmdgw/cmdline"
)

// Config describes the protocol a Handler speaks and the resources it is
// given. Build one with NewConfigBuilder. The zero Config is valid and uses
// the cmdline defaults.
type Config struct {
	delimiters       string
	terminator       byte
	bufferSize       int
	maxCommandLength int
	decimals         int
	decimalsSet      bool
	logger           *slog.Logger
	input            Source
	output           io.Writer
}

func (c *Config) setDefaults() {
	if c.delimiters == "" {
		c.delimiters = cmdline.DefaultDelimiters
	}
	if c.terminator == 0 {
		c.terminator = cmdline.DefaultTerminator
	}
	if c.bufferSize == 0 {
		c.bufferSize = cmdline.DefaultBufferSize
	}
	if c.maxCommandLength == 0 {
		c.maxCommandLength = cmdline.DefaultMaxCommandLength
	}
	if !c.decimalsSet {
		c.decimals = cmdline.DefaultDecimals
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
}

func (c *Config) validate() error {
	if c.bufferSize < 0 {
		return fmt.Errorf("%w: buffer size %d", ErrInvalidConfig, c.bufferSize)
	}
	if c.maxCommandLength < 0 {
		return fmt.Errorf("%w: max command length %d", ErrInvalidConfig, c.maxCommandLength)
	}
	if c.decimals < 0 {
		return fmt.Errorf("%w: decimals %d", ErrInvalidConfig, c.decimals)
	}
	if strings.IndexByte(c.delimiters, c.terminator) >= 0 {
		return fmt.Errorf("%w: terminator %q is also a delimiter", ErrInvalidConfig, c.terminator)
	}
	return nil
}

// ConfigBuilder assembles a Config step by step.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder returns a builder for a Config with default settings.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

// WithDelimiters sets the characters that split tokens. An empty set keeps
// the default.
func (b *ConfigBuilder) WithDelimiters(delims string) *ConfigBuilder {
	b.config.delimiters = delims
	return b
}

// WithTerminator sets the end-of-command character.
func (b *ConfigBuilder) WithTerminator(term byte) *ConfigBuilder {
	b.config.terminator = term
	return b
}

// WithBufferSize sets the line buffer capacity. Longer lines are truncated.
func (b *ConfigBuilder) WithBufferSize(n int) *ConfigBuilder {
	b.config.bufferSize = n
	return b
}

// WithMaxCommandLength sets how many leading characters of a command name
// are significant when matching.
func (b *ConfigBuilder) WithMaxCommandLength(n int) *ConfigBuilder {
	b.config.maxCommandLength = n
	return b
}

// WithDecimals sets the default number of decimal places for floating
// point fields in outgoing commands.
func (b *ConfigBuilder) WithDecimals(n int) *ConfigBuilder {
	b.config.decimals = n
	b.config.decimalsSet = true
	return b
}

// WithLogger sets the logger used for debug tracing.
func (b *ConfigBuilder) WithLogger(logger *slog.Logger) *ConfigBuilder {
	b.config.logger = logger
	return b
}

// WithInput sets the default byte source read by ProcessInput.
func (b *ConfigBuilder) WithInput(src Source) *ConfigBuilder {
	b.config.input = src
	return b
}

// WithOutput sets the default sink written by Send.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.config.output = w
	return b
}

// Build validates and returns the Config.
func (b *ConfigBuilder) Build() (Config, error) {
	config := b.config
	config.setDefaults()
	if err := config.validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}
