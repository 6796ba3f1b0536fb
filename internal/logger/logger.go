// Package logger provides structured logging using log/slog. It sets up a
// JSON handler with the binary's name embedded so runs of the three
// simulator commands are distinguishable in aggregated logs.
package logger

import (
	"log/slog"
	"os"
)

// Init creates and returns a structured logger for the given service.
// The logger outputs JSON to stdout with the service name embedded.
func Init(service string, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(handler).With(
		slog.String("service", service),
	)

	// Set as default so log/slog.Info() etc. also use structured output
	slog.SetDefault(logger)

	return logger
}
