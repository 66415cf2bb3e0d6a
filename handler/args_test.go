package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"i4.energy/across/cmdgw/handler"
)

// readArgs dispatches line to a SET command and hands the handler to read
// while the arguments are still available.
func readArgs(t *testing.T, line string, read func(h *handler.Handler)) {
	t.Helper()
	h := newHandler(t, handler.NewConfigBuilder())
	called := false
	h.AddCommand("SET", func() {
		called = true
		read(h)
	})
	h.ProcessString(line)
	if !called {
		t.Fatalf("SET was not dispatched for %q", line)
	}
}

func TestReadIntPermissive(t *testing.T) {
	readArgs(t, "SET,3,abc;", func(h *handler.Handler) {
		assert.Equal(t, 3, h.ReadInt())
		assert.True(t, h.ArgOK())

		// The token is present, the conversion reads it as zero.
		assert.Equal(t, 0, h.ReadInt())
		assert.True(t, h.ArgOK())

		assert.Equal(t, 0, h.ReadInt())
		assert.False(t, h.ArgOK())
	})
}

func TestReadTypedArgs(t *testing.T) {
	readArgs(t, "SET,-12,9000000000,1,0,2.5,-0.125,hello,12abc;", func(h *handler.Handler) {
		assert.Equal(t, -12, h.ReadInt())
		assert.Equal(t, int64(9000000000), h.ReadLong())
		assert.True(t, h.ReadBool())
		assert.False(t, h.ReadBool())
		assert.True(t, h.ArgOK())
		assert.Equal(t, float32(2.5), h.ReadFloat())
		assert.Equal(t, -0.125, h.ReadDouble())
		assert.Equal(t, "hello", h.ReadString())
		assert.Equal(t, 12, h.ReadInt())
		assert.True(t, h.ArgOK())

		assert.Equal(t, "", h.ReadString())
		assert.False(t, h.ArgOK())
		assert.False(t, h.ReadBool())
		assert.Equal(t, float32(0), h.ReadFloat())
		assert.Equal(t, 0.0, h.ReadDouble())
		assert.Equal(t, int64(0), h.ReadLong())
		assert.False(t, h.ArgOK())
	})
}

func TestReadBoolNonNumeric(t *testing.T) {
	readArgs(t, "SET,yes,-1;", func(h *handler.Handler) {
		assert.False(t, h.ReadBool(), "non-numeric text reads as zero")
		assert.True(t, h.ArgOK())
		assert.True(t, h.ReadBool())
	})
}

func TestCompareString(t *testing.T) {
	readArgs(t, "SET,on,OFF;", func(h *handler.Handler) {
		h.ReadInt() // consumes "on"
		assert.True(t, h.ArgOK())

		assert.False(t, h.CompareString("off"))
		assert.False(t, h.CompareString("OFF"), "the token was consumed by the previous compare")

		// CompareString leaves ArgOK alone.
		assert.True(t, h.ArgOK())
	})

	readArgs(t, "SET,on;", func(h *handler.Handler) {
		assert.True(t, h.CompareString("on"))
	})
}

func TestNextAndRemainder(t *testing.T) {
	readArgs(t, "SET,a,b,,c;", func(h *handler.Handler) {
		tok, ok := h.Next()
		assert.True(t, ok)
		assert.Equal(t, "a", tok)

		assert.Equal(t, "b,,c;", h.Remainder())

		_, ok = h.Next()
		assert.False(t, ok)
		assert.Equal(t, ";", h.Remainder())
	})
}
