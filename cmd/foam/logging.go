package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// newLogger returns a tint handler on w. Colour is only used when w is a
// terminal.
func newLogger(w io.Writer, level string) *slog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      parseLevel(level),
		TimeFormat: "15:04:05",
		NoColor:    noColor,
	}))
}
