package handler

import (
	"fmt"

	"i4.energy/across/cmdgw/cmdline"
)

// Process feeds one character into the line buffer.
//
// The terminator dispatches the buffered line and clears the buffer.
// Printable characters are appended while there is room and silently
// dropped once the buffer is full, so an overlong line is dispatched as its
// leading prefix. Any other character is ignored.
func (h *Handler) Process(c byte) {
	if c == h.config.terminator {
		h.dispatch()
		return
	}
	if !cmdline.IsPrint(c) {
		return
	}
	if !h.line.Append(c) && !h.overflowed {
		h.overflowed = true
		h.logger.Debug("Line buffer is full, dropping input", "capacity", h.line.Cap())
	}
}

// ProcessString feeds every byte of s to Process.
func (h *Handler) ProcessString(s string) {
	for i := 0; i < len(s); i++ {
		h.Process(s[i])
	}
}

// ProcessBytes feeds every byte of p to Process.
func (h *Handler) ProcessBytes(p []byte) {
	for _, c := range p {
		h.Process(c)
	}
}

// ProcessSource feeds the bytes src has buffered to Process. It returns
// once src reports nothing buffered and never waits for more.
func (h *Handler) ProcessSource(src Source) error {
	for src.Buffered() > 0 {
		c, err := src.ReadByte()
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		h.Process(c)
	}
	return nil
}

// ProcessInput drains the default source set with SetInput or WithInput.
func (h *Handler) ProcessInput() error {
	if h.input == nil {
		return ErrNoInput
	}
	return h.ProcessSource(h.input)
}

// dispatch runs the buffered line through the command table, then the
// relay table, then the default handler. The buffer is cleared afterwards
// whatever the outcome.
func (h *Handler) dispatch() {
	defer h.ClearBuffer()

	// The line is frozen into the cursor so a handler that feeds more
	// input starts from an empty buffer.
	line := h.line.String()
	h.line.Reset()
	h.overflowed = false
	h.logger.Debug("Received", "line", line)

	h.cursor.Load(line)
	token, ok := h.cursor.First()
	if !ok {
		return
	}

	for _, e := range h.commands {
		if h.matches(token, e.name) {
			h.logger.Debug("Matched command", "command", token)
			e.fn()
			return
		}
	}

	for _, e := range h.relays {
		if h.matches(token, e.name) {
			h.logger.Debug("Matched relay", "command", token)
			e.fn(h.Remainder())
			return
		}
	}

	switch {
	case h.defaultFunc != nil:
		h.defaultFunc(token)
	case h.defaultWith != nil:
		h.defaultWith(token)
	default:
		h.logger.Debug("Unmatched command", "command", token)
	}
}
