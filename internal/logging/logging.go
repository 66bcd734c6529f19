// Package logging builds the slog logger shared by both services. Output is
// JSON by default so log shippers can ingest it without a parse step; set
// LOG_FORMAT=text for local development.
package logging

import (
	"log/slog"
	"os"
)

// New returns a structured logger tagged with the service name.
func New(service, format string) *slog.Logger {
	var handler slog.Handler
	switch format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, nil)
	default:
		handler = slog.NewJSONHandler(os.Stdout, nil)
	}
	return slog.New(handler).With("service", service)
}
