// Package logging configures log/slog and provides the Fiber request logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Setup builds a logger for the given level and format and installs it as the
// slog default.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string) *slog.Logger {
	logger := New(os.Stdout, level, format)
	slog.SetDefault(logger)
	return logger
}

// New builds a logger writing to w.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FromCtx returns logger enriched with the request id assigned by Fiber's
// requestid middleware, if any.
func FromCtx(c *fiber.Ctx, logger *slog.Logger) *slog.Logger {
	if id, ok := c.Locals("requestid").(string); ok && id != "" {
		return logger.With("request_id", id)
	}
	return logger
}
