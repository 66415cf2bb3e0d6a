// Package handler implements a line oriented command dispatcher for ASCII
// command streams.
//
// Characters are fed one at a time into a fixed-capacity line buffer. When
// the terminator arrives the line is split into a command token and its
// arguments and the handler registered for the token is invoked. Handlers
// read their arguments through the typed readers on Handler and answer
// through its Composer.
//
// A Handler is not safe for concurrent use. Feed it from a single goroutine,
// or run Loop and hand work to it with Do and Submit.
package handler

import (
	"io"
	"log/slog"
	"sync"

	"i4.energy/across/cmdgw/cmdline"
)

// Handler tokenizes incoming characters and dispatches complete lines to
// the registered command, relay and default handlers.
type Handler struct {
	config Config
	logger *slog.Logger

	// line accumulates characters until the terminator arrives
	line *cmdline.Buffer
	// cursor splits the frozen line; shared by dispatch and argument reads
	cursor *cmdline.Cursor
	// overflowed is set once the current line has dropped a character
	overflowed bool
	// argOK reports whether the most recent typed read found a token
	argOK bool

	commands []commandEntry
	relays   []relayEntry

	defaultFunc DefaultFunc
	defaultWith DefaultFunc

	input    Source
	composer *Composer

	// Loop coordination
	mu   sync.Mutex
	quit chan struct{}
	work chan func()
}

// New creates a Handler for the given configuration.
//
// Returns an error wrapping ErrInvalidConfig if the configuration is not
// usable.
func New(config Config) (*Handler, error) {
	config.setDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}

	h := &Handler{
		config:   config,
		logger:   config.logger,
		line:     cmdline.NewBuffer(config.bufferSize),
		cursor:   cmdline.NewCursor(config.delimiters, config.terminator),
		commands: make([]commandEntry, 0, 8),
		relays:   make([]relayEntry, 0, 8),
		input:    config.input,
		work:     make(chan func()),
	}
	h.composer = newComposer(config)
	return h, nil
}

// Delimiters returns the delimiter set.
func (h *Handler) Delimiters() string { return h.config.delimiters }

// BufferSize returns the line buffer capacity.
func (h *Handler) BufferSize() int { return h.config.bufferSize }

// Terminator returns the end-of-command character.
func (h *Handler) Terminator() byte { return h.config.terminator }

// Composer returns the outgoing command composer.
func (h *Handler) Composer() *Composer { return h.composer }

// SetInput sets the default source drained by ProcessInput.
func (h *Handler) SetInput(src Source) { h.input = src }

// SetOutput sets the default sink used by Composer.Send.
func (h *Handler) SetOutput(w io.Writer) { h.composer.SetOutput(w) }

// ClearBuffer discards the partially received line and any tokens left
// under the argument cursor.
func (h *Handler) ClearBuffer() {
	h.line.Reset()
	h.cursor.Reset()
	h.overflowed = false
}
