package handler

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Composer builds an outgoing command field by field. Nothing is inserted
// implicitly: callers append delimiters and the terminator themselves.
//
//	c.Begin()
//	c.AppendInt(5)
//	c.AppendDelimiter()
//	c.AppendString("ok")
//	c.AppendTerminator()
//	err := c.Send()
type Composer struct {
	delimiter  byte
	terminator byte
	capacity   int
	decimals   int

	header string
	msg    strings.Builder
	output io.Writer
}

func newComposer(config Config) *Composer {
	return &Composer{
		delimiter:  config.delimiters[0],
		terminator: config.terminator,
		capacity:   config.bufferSize,
		decimals:   config.decimals,
		output:     config.output,
	}
}

// SetHeader sets the text every message starts with after Begin. With
// delim set the header is followed by the first delimiter character.
func (c *Composer) SetHeader(text string, delim bool) {
	if delim {
		text += string(c.delimiter)
	}
	c.header = text
}

// Begin resets the message to the header.
func (c *Composer) Begin() {
	c.msg.Reset()
	c.msg.WriteString(c.header)
}

// Clear empties the message, header included.
func (c *Composer) Clear() {
	c.msg.Reset()
}

// SetDecimals sets the default number of decimal places for AppendFloat
// and AppendDouble. Negative values are ignored.
func (c *Composer) SetDecimals(n int) {
	if n >= 0 {
		c.decimals = n
	}
}

// AppendDelimiter appends the first delimiter character.
func (c *Composer) AppendDelimiter() { c.msg.WriteByte(c.delimiter) }

// AppendTerminator appends the terminator.
func (c *Composer) AppendTerminator() { c.msg.WriteByte(c.terminator) }

// AppendBool appends 1 for true and 0 for false, the form ReadBool accepts.
func (c *Composer) AppendBool(v bool) {
	if v {
		c.msg.WriteByte('1')
	} else {
		c.msg.WriteByte('0')
	}
}

// AppendInt appends v in decimal.
func (c *Composer) AppendInt(v int) {
	c.msg.WriteString(strconv.Itoa(v))
}

// AppendLong appends v in decimal.
func (c *Composer) AppendLong(v int64) {
	c.msg.WriteString(strconv.FormatInt(v, 10))
}

// AppendFloat appends v with the default number of decimal places.
func (c *Composer) AppendFloat(v float32) {
	c.AppendFloatPrec(v, c.decimals)
}

// AppendFloatPrec appends v with the given number of decimal places.
func (c *Composer) AppendFloatPrec(v float32, decimals int) {
	c.msg.WriteString(strconv.FormatFloat(float64(v), 'f', max(decimals, 0), 32))
}

// AppendDouble appends v with the default number of decimal places.
func (c *Composer) AppendDouble(v float64) {
	c.AppendDoublePrec(v, c.decimals)
}

// AppendDoublePrec appends v with the given number of decimal places.
func (c *Composer) AppendDoublePrec(v float64, decimals int) {
	c.msg.WriteString(strconv.FormatFloat(v, 'f', max(decimals, 0), 64))
}

// AppendString appends s as is.
func (c *Composer) AppendString(s string) {
	c.msg.WriteString(s)
}

// Len returns the length of the composed text before any truncation.
func (c *Composer) Len() int { return c.msg.Len() }

// Message returns the composed text, cut to the line buffer capacity.
func (c *Composer) Message() string {
	s := c.msg.String()
	if len(s) > c.capacity {
		return s[:c.capacity]
	}
	return s
}

// SetOutput sets the sink used by Send.
func (c *Composer) SetOutput(w io.Writer) { c.output = w }

// Send writes the composed text to the default sink. The message is kept,
// so calling Send again repeats it until the next Begin.
func (c *Composer) Send() error {
	if c.output == nil {
		return ErrNoOutput
	}
	return c.SendTo(c.output)
}

// SendTo writes the composed text to w.
func (c *Composer) SendTo(w io.Writer) error {
	if _, err := io.WriteString(w, c.msg.String()); err != nil {
		return fmt.Errorf("send %q: %w", c.msg.String(), err)
	}
	return nil
}
