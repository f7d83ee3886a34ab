package app

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/mkr/internal/logging"
)

// newLogger creates the application logger. The level was validated with
// the configuration, so a parse failure falls back to info.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level, err := logging.ParseLevel(levelStr)
	if err != nil {
		level = slog.LevelInfo
	}
	return logging.New(outW, formatStr, level)
}
