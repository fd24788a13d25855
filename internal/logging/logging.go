package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/PolarWolf314/n8nsync/internal/ui"
	"github.com/PolarWolf314/n8nsync/internal/utils"
)

// Logger writes leveled diagnostics to stderr through a tint handler.
// The zero value logs critical warnings and errors only.
type Logger struct {
	Verbose bool
	Debug   bool

	// Out receives log lines. Defaults to os.Stderr.
	Out io.Writer
}

// Level returns the minimum level the logger emits.
func (l Logger) Level() slog.Level {
	switch {
	case l.Debug:
		return slog.LevelDebug
	case l.Verbose:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// Slog returns a *slog.Logger sharing this logger's level and output.
func (l Logger) Slog() *slog.Logger {
	w := l.Out
	if w == nil {
		w = os.Stderr
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      l.Level(),
		TimeFormat: time.TimeOnly,
		NoColor:    ui.NoColor() || !utils.IsTerminalWriter(w),
	}))
}

func (l Logger) logf(level slog.Level, msg string, args ...any) {
	if level < l.Level() {
		return
	}
	l.Slog().Log(context.Background(), level, fmt.Sprintf(msg, args...))
}

// Infof is shown with --verbose or --debug.
func (l Logger) Infof(msg string, args ...any) {
	l.logf(slog.LevelInfo, msg, args...)
}

func (l Logger) chatty() bool { return l.Verbose || l.Debug }

// Debugf is shown only with --debug.
func (l Logger) Debugf(msg string, args ...any) {
	l.logf(slog.LevelDebug, msg, args...)
}

// Warnf is shown with --verbose or --debug.
func (l Logger) Warnf(msg string, args ...any) {
	if l.chatty() {
		l.logf(slog.LevelWarn, msg, args...)
	}
}

// WarnfAlways is shown regardless of verbosity. Use it for warnings the user
// must act on, such as skipped pages or overwritten files.
func (l Logger) WarnfAlways(msg string, args ...any) {
	l.logf(slog.LevelWarn, msg, args...)
}

// Errorf is always shown.
func (l Logger) Errorf(msg string, args ...any) {
	l.logf(slog.LevelError, msg, args...)
}

// ErrorfAndReturn logs at debug level and returns the formatted error, for
// call sites that hand the error back to the command for display.
func (l Logger) ErrorfAndReturn(msg string, args ...any) error {
	err := fmt.Errorf(msg, args...)
	l.logf(slog.LevelDebug, "%v", err)
	return err
}
