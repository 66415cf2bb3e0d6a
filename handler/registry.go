package handler

import "i4.energy/across/cmdgw/cmdline"

// CommandFunc handles a command. It reads its arguments from the Handler
// that invoked it.
type CommandFunc func()

// RelayFunc receives the untokenized remainder of a command line, ending
// with the terminator.
type RelayFunc func(remainder string)

// DefaultFunc receives the command token of a line no entry matched.
type DefaultFunc func(token string)

type commandEntry struct {
	name string
	fn   CommandFunc
}

type relayEntry struct {
	name string
	fn   RelayFunc
}

// AddCommand registers fn for the command name. Only the first
// max-command-length characters of name are kept. Entries are searched in
// registration order, so a later duplicate is never reached.
func (h *Handler) AddCommand(name string, fn CommandFunc) {
	if fn == nil {
		h.logger.Warn("Ignoring command without handler", "command", name)
		return
	}
	name = cmdline.CapName(name, h.config.maxCommandLength)
	h.logger.Debug("Adding command", "index", len(h.commands), "command", name)
	h.commands = append(h.commands, commandEntry{name: name, fn: fn})
}

// AddRelayFunc registers fn as relay for the command name. A relay is
// handed the rest of the line verbatim instead of reading arguments.
// Commands registered with AddCommand take priority over relays.
func (h *Handler) AddRelayFunc(name string, fn RelayFunc) {
	if fn == nil {
		h.logger.Warn("Ignoring relay without handler", "command", name)
		return
	}
	name = cmdline.CapName(name, h.config.maxCommandLength)
	h.logger.Debug("Adding relay", "index", len(h.relays), "command", name)
	h.relays = append(h.relays, relayEntry{name: name, fn: fn})
}

// AddRelay registers fn as relay for the command name and passes it ctx on
// every call. The Handler does not own ctx.
//
// A typical use is forwarding the rest of a line to a second Handler:
//
//	handler.AddRelay(h, "MOTOR", func(rem string, motor *handler.Handler) {
//		motor.ProcessString(rem)
//	}, motorHandler)
func AddRelay[T any](h *Handler, name string, fn func(remainder string, ctx T), ctx T) {
	if fn == nil {
		h.AddRelayFunc(name, nil)
		return
	}
	h.AddRelayFunc(name, func(remainder string) { fn(remainder, ctx) })
}

// SetDefault sets the handler invoked with the command token when no
// command or relay matches. It takes precedence over a handler set with
// SetDefaultWith. A nil fn removes it.
func (h *Handler) SetDefault(fn DefaultFunc) {
	h.defaultFunc = fn
}

// SetDefaultWith sets a default handler that also receives ctx. It is used
// only when no handler was set with SetDefault. A nil fn removes it.
func SetDefaultWith[T any](h *Handler, fn func(token string, ctx T), ctx T) {
	if fn == nil {
		h.defaultWith = nil
		return
	}
	h.defaultWith = func(token string) { fn(token, ctx) }
}

// matches compares a received token against a registered name on their
// first max-command-length characters.
func (h *Handler) matches(token, name string) bool {
	return cmdline.CapName(token, h.config.maxCommandLength) == name
}
