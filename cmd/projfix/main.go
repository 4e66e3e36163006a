// Command projfix validates and repairs Microsoft Project XML files so they
// import cleanly into the target scheduling application.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// errValidationFailed signals a clean run that found violations: exit code 1,
// no error banner (the report has already been printed).
var errValidationFailed = errors.New("validation failed")

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errValidationFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// newLogger builds the process logger. Logs go to stderr so stdout stays
// clean for reports (and for JSON-RPC in serve mode); PROJFIX_LOG_PATH
// redirects them to a file instead.
func newLogger(level string) *slog.Logger {
	logWriter := io.Writer(os.Stderr)
	if logPath := os.Getenv("PROJFIX_LOG_PATH"); logPath != "" {
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			logWriter = file
		}
	}
	return slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
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
