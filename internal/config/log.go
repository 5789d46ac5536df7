package config

import (
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logMaxSizeMB  = 5
	logMaxBackups = 3
)

// InitializeLogger routes the default slog logger to a rotated log
// file in the data directory. Terminal output stays reserved for
// pterm so reports are never interleaved with log lines.
func InitializeLogger() {
	writer := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		Compress:   true,
	}

	logger := slog.New(slog.NewJSONHandler(writer, nil))

	slog.SetDefault(logger)
}
