package main

import (
	"log/slog"

	"i4.energy/across/cmdgw/handler"
)

// Device holds the state the built-in commands act on. It is only touched
// from handlers, which run on the handler loop.
type Device struct {
	Logger *slog.Logger
	LED    bool
}

// registerCommands installs the built-in command set on h.
//
//	PING;            -> PONG;
//	ECHO,<text>;     -> <text>;
//	SUM,<n>,<n>...;  -> SUM,<total>;
//	AVG,<x>,<x>...;  -> AVG,<mean>;
//	LED,<0|1>;       -> LED,<0|1>;
//	<other>;         -> ERR,<other>;
func registerCommands(h *handler.Handler, dev *Device) {
	h.AddCommand("PING", func() {
		reply(h, dev, func(c *handler.Composer) {
			c.AppendString("PONG")
		})
	})

	handler.AddRelay(h, "ECHO", func(remainder string, dev *Device) {
		// The remainder already ends with the terminator.
		c := h.Composer()
		c.Begin()
		c.AppendString(remainder)
		send(c, dev)
	}, dev)

	h.AddCommand("SUM", func() {
		var total int64
		for v := h.ReadLong(); h.ArgOK(); v = h.ReadLong() {
			total += v
		}
		reply(h, dev, func(c *handler.Composer) {
			c.AppendString("SUM")
			c.AppendDelimiter()
			c.AppendLong(total)
		})
	})

	h.AddCommand("AVG", func() {
		var sum float64
		n := 0
		for v := h.ReadDouble(); h.ArgOK(); v = h.ReadDouble() {
			sum += v
			n++
		}
		if n == 0 {
			replyError(h, dev, "AVG")
			return
		}
		reply(h, dev, func(c *handler.Composer) {
			c.AppendString("AVG")
			c.AppendDelimiter()
			c.AppendDouble(sum / float64(n))
		})
	})

	h.AddCommand("LED", func() {
		on := h.ReadBool()
		if !h.ArgOK() {
			replyError(h, dev, "LED")
			return
		}
		dev.LED = on
		dev.Logger.Info("LED switched", "on", on)
		reply(h, dev, func(c *handler.Composer) {
			c.AppendString("LED")
			c.AppendDelimiter()
			c.AppendBool(on)
		})
	})

	handler.SetDefaultWith(h, func(token string, dev *Device) {
		dev.Logger.Warn("Unknown command", "command", token)
		replyError(h, dev, token)
	}, dev)
}

// reply sends header, the fields written by fill and the terminator.
func reply(h *handler.Handler, dev *Device, fill func(c *handler.Composer)) {
	c := h.Composer()
	c.Begin()
	fill(c)
	c.AppendTerminator()
	send(c, dev)
}

func replyError(h *handler.Handler, dev *Device, token string) {
	reply(h, dev, func(c *handler.Composer) {
		c.AppendString("ERR")
		c.AppendDelimiter()
		c.AppendString(token)
	})
}

func send(c *handler.Composer, dev *Device) {
	if err := c.Send(); err != nil {
		dev.Logger.Error("Failed to send reply", "error", err, "message", c.Message())
	}
}
