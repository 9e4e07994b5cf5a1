package logger

import (
	"log/slog"
	"os"
	"path/filepath"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// SetupLogger builds the process logger for the given environment.
// Local runs log human-readable text to stdout at debug level; dev and
// prod write JSON records to a file under logPath.
func SetupLogger(env string, logPath string) *slog.Logger {
	switch env {
	case envDev, envProd:
		level := slog.LevelInfo
		if env == envDev {
			level = slog.LevelDebug
		}

		file, err := os.OpenFile(
			filepath.Join(logPath, "tinyclient.log"),
			os.O_CREATE|os.O_APPEND|os.O_WRONLY,
			0o644,
		)
		if err != nil {
			// Fall back to stdout so startup errors are still visible.
			lg := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
			lg.Warn("failed to open log file, logging to stdout", slog.String("error", err.Error()))
			return lg
		}
		return slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
