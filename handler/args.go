package handler

import "i4.energy/across/cmdgw/cmdline"

// Next returns the next argument token of the line being dispatched. ok is
// false when no token is left, including outside of a dispatch.
func (h *Handler) Next() (token string, ok bool) {
	return h.cursor.Next()
}

// Remainder returns the rest of the line being dispatched, verbatim and
// followed by the terminator, then clears the buffer. Nothing is left for
// later reads. With no arguments left the result is the terminator alone.
func (h *Handler) Remainder() string {
	rest := h.cursor.Remainder()
	h.ClearBuffer()
	return rest
}

// ArgOK reports whether the most recent Read call found a token. It says
// nothing about whether the token was a well formed number.
func (h *Handler) ArgOK() bool { return h.argOK }

func (h *Handler) nextArg() (string, bool) {
	tok, ok := h.cursor.Next()
	h.argOK = ok
	return tok, ok
}

// ReadInt reads the next argument as a decimal integer. Text that is not a
// number reads as 0, see cmdline.ParseInt.
func (h *Handler) ReadInt() int {
	return int(h.ReadLong())
}

// ReadLong reads the next argument as a 64-bit decimal integer.
func (h *Handler) ReadLong() int64 {
	tok, ok := h.nextArg()
	if !ok {
		return 0
	}
	return cmdline.ParseInt(tok)
}

// ReadBool reads the next argument as an integer and reports whether it is
// non-zero.
func (h *Handler) ReadBool() bool {
	return h.ReadInt() != 0
}

// ReadFloat reads the next argument as a float32.
func (h *Handler) ReadFloat() float32 {
	return float32(h.ReadDouble())
}

// ReadDouble reads the next argument as a float64. Text that is not a
// number reads as 0, see cmdline.ParseFloat.
func (h *Handler) ReadDouble() float64 {
	tok, ok := h.nextArg()
	if !ok {
		return 0
	}
	return cmdline.ParseFloat(tok)
}

// ReadString returns the next argument unmodified, or "" if none is left.
func (h *Handler) ReadString() string {
	tok, _ := h.nextArg()
	return tok
}

// CompareString consumes the next argument and reports whether it equals
// expected. It does not touch ArgOK.
func (h *Handler) CompareString(expected string) bool {
	tok, ok := h.cursor.Next()
	return ok && tok == expected
}
