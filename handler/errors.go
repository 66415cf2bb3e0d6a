package handler

import "errors"

var (
	// ErrInvalidConfig is returned by ConfigBuilder.Build and New when the
	// configuration cannot describe a working protocol.
	//
	// The returned error wraps ErrInvalidConfig with the offending setting.
	ErrInvalidConfig = errors.New("invalid handler config")

	// ErrNoOutput is returned by Send when no output sink has been
	// configured with SetOutput or WithOutput.
	ErrNoOutput = errors.New("no output configured")

	// ErrNoInput is returned by ProcessInput when no input source has been
	// configured with SetInput or WithInput.
	ErrNoInput = errors.New("no input configured")

	// ErrLoopRunning is returned when Loop is called while another Loop on
	// the same Handler has not returned yet.
	ErrLoopRunning = errors.New("loop already running")

	// ErrLoopStopped is returned by Do and Submit when no Loop is running
	// to execute the work, or when the Loop exits before it could.
	ErrLoopStopped = errors.New("loop not running")

	// ErrPortNameRequired is returned by SerialDialer.Dial when the dialer
	// has no port name.
	ErrPortNameRequired = errors.New("serial port name is required")
)
