package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// New returns a logger writing human-readable diagnostics to w.
// Colors are only used when w is a terminal.
func New(w io.Writer, level slog.Level, appName string) *slog.Logger {
	h := tint.NewHandler(w, &tint.Options{
		Level:      level,
		AddSource:  level <= slog.LevelDebug,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	})
	return slog.New(h).With("app", appName)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
