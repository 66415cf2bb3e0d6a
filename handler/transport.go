package handler

//go:generate go tool mockgen -source=transport.go -destination=mock_transport.go -package=handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// Source is a byte source that can tell how many bytes are ready without
// blocking. *bufio.Reader satisfies it.
type Source interface {
	// Buffered returns the number of bytes that can be read right away.
	Buffered() int
	// ReadByte reads a single byte.
	ReadByte() (byte, error)
}

// Transport represents an established, bidirectional byte stream to the
// remote end of the command channel.
//
// Typical implementations are serial ports, TCP connections to simulators,
// or in-memory fakes used for testing.
type Transport interface {
	io.ReadWriteCloser
}

// Dialer opens a Transport.
//
// Dial may block and should respect cancellation of ctx. It returns an
// error if the transport cannot be established.
type Dialer interface {
	Dial(ctx context.Context) (Transport, error)
}

// SerialDialer opens the command channel on a serial port.
type SerialDialer struct {
	// PortName is the device path, e.g. "/dev/ttyUSB0" or "COM3".
	PortName string
	// Mode is the line configuration. Nil means 115200 8N1.
	Mode *serial.Mode
	// ReadTimeout bounds a single Read. Zero blocks until data arrives.
	ReadTimeout time.Duration
}

// Dial opens the serial port.
func (d SerialDialer) Dial(ctx context.Context) (Transport, error) {
	if d.PortName == "" {
		return nil, ErrPortNameRequired
	}
	if ctx == nil {
		return nil, errors.New("context is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := d.Mode
	if mode == nil {
		mode = &serial.Mode{
			BaudRate: 115200,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}
	}

	port, err := serial.Open(d.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", d.PortName, err)
	}

	if d.ReadTimeout > 0 {
		if err := port.SetReadTimeout(d.ReadTimeout); err != nil {
			port.Close()
			return nil, fmt.Errorf("set read timeout on %s: %w", d.PortName, err)
		}
	}
	return port, nil
}
