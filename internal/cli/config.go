package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("QUARTO_SERVER", "http://127.0.0.1:8080"),
		Output:    getEnvOrDefault("QUARTO_OUTPUT", FormatText),
		Verbose:   false,
	}
}

// Validate checks the output format
func (c *Config) Validate() error {
	if c.Output != FormatText && c.Output != FormatJSON {
		return fmt.Errorf("unknown output format %q (want text or json)", c.Output)
	}
	return nil
}

// Logger returns a JSON logger writing to w at the given level, or at debug
// level when verbose output is requested
func (c *Config) Logger(w io.Writer, level slog.Level) *slog.Logger {
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
