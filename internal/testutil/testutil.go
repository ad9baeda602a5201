// Package testutil holds fixtures shared by the service, host and API tests.
package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a JSON logger writing to io.Discard
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
