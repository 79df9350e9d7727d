package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/maruel/ksid"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// newLogger returns a tint logger writing to w at level, tagged with a run
// identifier.
func newLogger(w io.Writer, level string, color bool) (*slog.Logger, error) {
	ll := &slog.LevelVar{}
	if err := ll.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:       ll,
		TimeFormat:  "15:04:05.000", // Like time.TimeOnly plus milliseconds.
		NoColor:     !color,
		ReplaceAttr: dropEmpty,
	}))
	return logger.With("run", ksid.NewID().String()), nil
}

// stderrLogger returns the logger used by the commands.
func stderrLogger(level string) (*slog.Logger, error) {
	return newLogger(colorable.NewColorable(os.Stderr), level, isatty.IsTerminal(os.Stderr.Fd()))
}

// dropEmpty removes zero valued attributes.
func dropEmpty(_ []string, a slog.Attr) slog.Attr {
	skip := false
	switch t := a.Value.Any().(type) {
	case string:
		skip = t == ""
	case bool:
		skip = !t
	case uint64:
		skip = t == 0
	case int64:
		skip = t == 0
	case float64:
		skip = t == 0
	case time.Time:
		skip = t.IsZero()
	case time.Duration:
		skip = t == 0
	case nil:
		skip = true
	}
	if skip {
		return slog.Attr{}
	}
	return a
}
