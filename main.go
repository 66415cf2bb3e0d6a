package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.bug.st/serial"

	"i4.energy/across/cmdgw/handler"
)

func main() {
	configFile := flag.String("config", "", "Path to a YAML configuration file")
	flag.String("serial-port", "/dev/ttyUSB0", "Serial port the command stream arrives on")
	flag.Int("baud-rate", 115200, "Baud rate for serial communication")
	flag.String("bind-address", "0.0.0.0:8080", "Bind address for the HTTP server")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.String("delimiters", ",", "Characters separating command tokens")
	flag.String("terminator", ";", "End-of-command character")
	flag.String("header", "", "Prefix for composed replies")
	flag.Int("decimals", 2, "Decimal places for floating point replies")
	flag.Int("buffer-size", 64, "Longest accepted command line in bytes")
	flag.Parse()

	config, err := LoadConfig(WithDefaults(), WithFile(*configFile), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(config.LogLevel)}))

	h, err := newHandler(config, logger)
	if err != nil {
		logger.Error("Failed to create command handler", "error", err)
		os.Exit(1)
	}
	registerCommands(h, &Device{Logger: logger.With("component", "device")})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dialer := handler.SerialDialer{
		PortName: config.SerialPort,
		Mode: &serial.Mode{
			BaudRate: config.BaudRate,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		},
	}
	transport, err := dialer.Dial(ctx)
	if err != nil {
		logger.Error("Failed to open serial port", "error", err, "port", config.SerialPort)
		os.Exit(1)
	}
	h.SetOutput(transport)

	logger.Info("Starting command gateway", "port", config.SerialPort, "baud_rate", config.BaudRate)

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- h.Loop(ctx, transport)
	}()

	httpServer := &http.Server{
		Addr: config.BindAddress,
		Handler: &Server{
			Logger:  logger.With("component", "server"),
			Handler: h,
		},
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal or loss of the serial line
	select {
	case sig := <-sigChan:
		logger.Info("Received shutdown signal", "signal", sig)
	case err := <-loopErr:
		logger.Error("Command loop stopped", "error", err)
	}

	cancel()

	logger.Info("Closing serial port")
	if err := transport.Close(); err != nil {
		logger.Error("Failed to close serial port", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Info("Closing HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Failed to gracefully shutdown server", "error", err)
		os.Exit(1)
	}
}

// newHandler builds the command handler for the configured protocol
func newHandler(config *Config, logger *slog.Logger) (*handler.Handler, error) {
	handlerConfig, err := handler.NewConfigBuilder().
		WithDelimiters(config.Delimiters).
		WithTerminator(config.Terminator[0]).
		WithBufferSize(config.BufferSize).
		WithDecimals(config.Decimals).
		WithLogger(logger.With("component", "handler")).
		Build()
	if err != nil {
		return nil, err
	}

	h, err := handler.New(handlerConfig)
	if err != nil {
		return nil, err
	}
	h.Composer().SetHeader(config.Header, config.Header != "")
	return h, nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
