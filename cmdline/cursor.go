package cmdline

import "strings"

// Cursor splits a frozen line into delimiter separated tokens. It keeps a
// single scan position shared by every token request, so the dispatcher
// looking up the command name and a handler reading its arguments advance
// the same cursor.
//
// Runs of delimiters count as one separator and leading delimiters are
// skipped, so empty tokens are never produced.
type Cursor struct {
	delims string
	term   byte

	line string
	pos  int
}

// NewCursor creates an empty cursor for the given delimiter set and
// terminator.
func NewCursor(delims string, term byte) *Cursor {
	return &Cursor{delims: delims, term: term}
}

// Load replaces the line under the cursor and rewinds to its start.
func (c *Cursor) Load(line string) {
	c.line = line
	c.pos = 0
}

// Reset drops the line. Every later request reports no token until the
// next Load.
func (c *Cursor) Reset() {
	c.line = ""
	c.pos = 0
}

// First rewinds to the start of the line and returns its leading token,
// the candidate command name.
func (c *Cursor) First() (string, bool) {
	c.pos = 0
	return c.Next()
}

// Next returns the token following the cursor and moves past it and the
// delimiter that ended it. ok is false once the line is exhausted.
func (c *Cursor) Next() (token string, ok bool) {
	c.skipDelims()
	if c.pos >= len(c.line) {
		return "", false
	}

	start := c.pos
	end := start
	for end < len(c.line) && !c.isDelim(c.line[end]) {
		end++
	}

	c.pos = end
	if end < len(c.line) {
		c.pos++
	}
	return c.line[start:end], true
}

// Remainder returns the untokenized rest of the line followed by the
// terminator and exhausts the cursor. Only the delimiters directly after
// the cursor are skipped, the rest is kept verbatim. With nothing left the
// result is the terminator alone.
func (c *Cursor) Remainder() string {
	c.skipDelims()

	var b strings.Builder
	if c.pos < len(c.line) {
		b.Grow(len(c.line) - c.pos + 1)
		b.WriteString(c.line[c.pos:])
	}
	b.WriteByte(c.term)

	c.pos = len(c.line)
	return b.String()
}

func (c *Cursor) skipDelims() {
	for c.pos < len(c.line) && c.isDelim(c.line[c.pos]) {
		c.pos++
	}
}

func (c *Cursor) isDelim(b byte) bool {
	return strings.IndexByte(c.delims, b) >= 0
}
