package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"i4.energy/across/cmdgw/handler"
)

func newHandler(t *testing.T, b *handler.ConfigBuilder) *handler.Handler {
	t.Helper()
	config, err := b.Build()
	require.NoError(t, err)
	h, err := handler.New(config)
	require.NoError(t, err)
	return h
}

func TestDispatchCommand(t *testing.T) {
	h := newHandler(t, handler.NewConfigBuilder())

	calls := 0
	h.AddCommand("PING", func() { calls++ })

	h.ProcessString("PING;")
	assert.Equal(t, 1, calls)

	// The buffer was cleared, a bare terminator is an empty line.
	h.ProcessString(";")
	assert.Equal(t, 1, calls)

	h.ProcessString("PI")
	h.ProcessString("NG;")
	assert.Equal(t, 2, calls)
}

func TestDispatchRelay(t *testing.T) {
	h := newHandler(t, handler.NewConfigBuilder())

	type device struct{ name string }
	target := &device{name: "motor"}

	var gotRemainder string
	var gotDevice *device
	handler.AddRelay(h, "FWD", func(remainder string, d *device) {
		gotRemainder = remainder
		gotDevice = d
	}, target)

	h.ProcessString("FWD,A,B;")
	assert.Equal(t, "A,B;", gotRemainder)
	assert.Same(t, target, gotDevice)

	h.ProcessString("FWD;")
	assert.Equal(t, ";", gotRemainder)
}

func TestDispatchRelayConsumesLine(t *testing.T) {
	h := newHandler(t, handler.NewConfigBuilder())

	var afterRelay bool
	h.AddRelayFunc("FWD", func(string) {
		_, afterRelay = h.Next()
	})

	h.ProcessString("FWD,A,B;")
	assert.False(t, afterRelay, "no token may remain once the remainder is taken")
}

func TestDispatchCommandBeforeRelay(t *testing.T) {
	h := newHandler(t, handler.NewConfigBuilder())

	var order []string
	h.AddRelayFunc("X", func(string) { order = append(order, "relay") })
	h.AddCommand("X", func() { order = append(order, "command") })
	h.SetDefault(func(string) { order = append(order, "default") })

	h.ProcessString("X,1;")
	assert.Equal(t, []string{"command"}, order)
}

func TestDispatchFirstRegistrationWins(t *testing.T) {
	h := newHandler(t, handler.NewConfigBuilder())

	var got []int
	h.AddCommand("DUP", func() { got = append(got, 1) })
	h.AddCommand("DUP", func() { got = append(got, 2) })

	h.ProcessString("DUP;DUP;")
	assert.Equal(t, []int{1, 1}, got)
}

func TestDispatchDefault(t *testing.T) {
	t.Run("Plain default receives the token", func(t *testing.T) {
		h := newHandler(t, handler.NewConfigBuilder())

		var token string
		h.SetDefault(func(tok string) { token = tok })

		h.ProcessString("NOPE,1,2;")
		assert.Equal(t, "NOPE", token)
	})

	t.Run("Default with context", func(t *testing.T) {
		h := newHandler(t, handler.NewConfigBuilder())

		var unknown []string
		handler.SetDefaultWith(h, func(tok string, seen *[]string) {
			*seen = append(*seen, tok)
		}, &unknown)

		h.ProcessString("A;B,1;")
		assert.Equal(t, []string{"A", "B"}, unknown)
	})

	t.Run("Plain default takes precedence", func(t *testing.T) {
		h := newHandler(t, handler.NewConfigBuilder())

		var plain, withCtx int
		handler.SetDefaultWith(h, func(string, int) { withCtx++ }, 0)
		h.SetDefault(func(string) { plain++ })

		h.ProcessString("NOPE;")
		assert.Equal(t, 1, plain)
		assert.Equal(t, 0, withCtx)

		h.SetDefault(nil)
		h.ProcessString("NOPE;")
		assert.Equal(t, 1, plain)
		assert.Equal(t, 1, withCtx)
	})

	t.Run("Empty line invokes nothing", func(t *testing.T) {
		h := newHandler(t, handler.NewConfigBuilder())

		called := false
		h.SetDefault(func(string) { called = true })

		h.ProcessString(";,,;")
		assert.False(t, called)
	})
}

func TestDispatchUnmatchedClearsBuffer(t *testing.T) {
	h := newHandler(t, handler.NewConfigBuilder())

	h.ProcessString("NOPE,1,2;")

	_, ok := h.Next()
	assert.False(t, ok)
	assert.Equal(t, 0, h.ReadInt())
	assert.False(t, h.ArgOK())
}

func TestDispatchClearsAfterArgumentReads(t *testing.T) {
	h := newHandler(t, handler.NewConfigBuilder())

	var first int
	h.AddCommand("SET", func() { first = h.ReadInt() })

	h.ProcessString("SET,1,2,3;")
	assert.Equal(t, 1, first)

	_, ok := h.Next()
	assert.False(t, ok, "unread arguments must not leak past the dispatch")
	h.ReadString()
	assert.False(t, h.ArgOK())
}

func TestDispatchOverflow(t *testing.T) {
	t.Run("Arguments truncated", func(t *testing.T) {
		h := newHandler(t, handler.NewConfigBuilder().WithBufferSize(8))

		var value int64
		h.AddCommand("ABCD", func() { value = h.ReadLong() })

		h.ProcessString("ABCD,123456789;")
		assert.Equal(t, int64(123), value)
	})

	t.Run("Command truncated", func(t *testing.T) {
		h := newHandler(t, handler.NewConfigBuilder().WithBufferSize(4))

		calls := 0
		h.AddCommand("PING", func() { calls++ })

		h.ProcessString("PINGPONG;")
		assert.Equal(t, 1, calls)

		// The next line starts fresh.
		h.ProcessString("PING;")
		assert.Equal(t, 2, calls)
	})
}

func TestDispatchIgnoresNonPrintable(t *testing.T) {
	h := newHandler(t, handler.NewConfigBuilder())

	calls := 0
	h.AddCommand("PING", func() { calls++ })

	h.ProcessString("\r\nPI\x00NG\x7f;\n")
	assert.Equal(t, 1, calls)
}

func TestDispatchMatching(t *testing.T) {
	tests := []struct {
		name     string
		register string
		input    string
		matched  bool
	}{
		{name: "Exact", register: "LED", input: "LED;", matched: true},
		{name: "Case sensitive", register: "LED", input: "led;", matched: false},
		{name: "No prefix match", register: "LED", input: "LE;", matched: false},
		{name: "No extension match", register: "LED", input: "LEDS;", matched: false},
		{name: "Capped long name", register: "TEMPERATURE", input: "TEMPERAT;", matched: true},
		{name: "Capped long token", register: "TEMPERATURE", input: "TEMPERATXYZ;", matched: true},
		{name: "Capped short token", register: "TEMPERATURE", input: "TEMPERA;", matched: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(t, handler.NewConfigBuilder())

			matched := false
			h.AddCommand(tt.register, func() { matched = true })

			h.ProcessString(tt.input)
			assert.Equal(t, tt.matched, matched)
		})
	}
}

func TestDispatchCustomProtocol(t *testing.T) {
	h := newHandler(t, handler.NewConfigBuilder().
		WithDelimiters(" ,").
		WithTerminator('\n'))

	var x, y int
	h.AddCommand("MOVE", func() {
		x = h.ReadInt()
		y = h.ReadInt()
	})

	h.ProcessString("MOVE 10, -20\n")
	assert.Equal(t, 10, x)
	assert.Equal(t, -20, y)
}

func TestDispatchReentrantProcess(t *testing.T) {
	h := newHandler(t, handler.NewConfigBuilder())

	var inner int
	h.AddCommand("OUTER", func() { h.ProcessString("INNER,7;") })
	h.AddCommand("INNER", func() { inner = h.ReadInt() })

	h.ProcessString("OUTER;")
	assert.Equal(t, 7, inner)

	_, ok := h.Next()
	assert.False(t, ok)
}

func TestAddNilHandlers(t *testing.T) {
	h := newHandler(t, handler.NewConfigBuilder())

	h.AddCommand("A", nil)
	h.AddRelayFunc("B", nil)
	handler.AddRelay[int](h, "C", nil, 0)

	var unknown []string
	h.SetDefault(func(tok string) { unknown = append(unknown, tok) })

	assert.NotPanics(t, func() { h.ProcessString("A;B;C;") })
	assert.Equal(t, []string{"A", "B", "C"}, unknown)
}

func TestClearBuffer(t *testing.T) {
	h := newHandler(t, handler.NewConfigBuilder())

	calls := 0
	h.AddCommand("PING", func() { calls++ })

	h.ProcessString("GARBAGE")
	h.ClearBuffer()
	h.ProcessString("PING;")
	assert.Equal(t, 1, calls)
}
