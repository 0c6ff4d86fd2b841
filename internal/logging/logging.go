// Package logging configures the process-wide structured logger.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/phuslu/log"
)

var levels = map[string]log.Level{
	"trace": log.TraceLevel,
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
}

// ParseLevel maps a level name to a log level.
func ParseLevel(name string) (log.Level, error) {
	l, ok := levels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return log.InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
	return l, nil
}

// Setup replaces log.DefaultLogger with a console logger writing to w.
// Colour is used only when w is a terminal.
func Setup(w io.Writer, level string) error {
	l, err := ParseLevel(level)
	if err != nil {
		return err
	}
	color := false
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		color = isatty.IsTerminal(f.Fd())
	}
	log.DefaultLogger = log.Logger{
		Level:      l,
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			ColorOutput:    color,
			EndWithMessage: true,
			Writer:         w,
		},
	}
	return nil
}
