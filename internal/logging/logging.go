// Package logging sets up the CLI's structured diagnostics: a
// log/slog.Logger backed by lmittmann/tint for colored, leveled output.
// Nothing under internal/ other than cmd/ and internal/storage calls
// into this package — the pure core never logs.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// New builds the CLI's default logger, writing to w (typically
// os.Stderr so --json output on stdout stays clean).
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

// Default is the process-wide logger used by cmd/ and internal/storage.
// It is reassigned once at startup in cmd/root.go's OnInitialize hook;
// cmd/root.go and internal/storage read it directly as a package
// variable — this var exists only as the single mutable seam the
// teacher's own packages never needed, since lazaro had no structured
// logger at all.
var Default = New(os.Stderr, false)
