// Package logging builds the slog loggers used by the CLI and the editor.
//
// The editor owns the terminal while it runs, so interactive sessions log to
// a file under the log directory and only one-shot commands write to stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/user/caption-timeline-cli/config"
)

// FileName is the log file written inside the log directory.
const FileName = "caption-timeline.log"

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Path is a log file to append to. Empty writes to Writer.
	Path   string
	Writer io.Writer
}

// New constructs a logger. The returned closer releases the log file and is
// never nil.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	var out io.Writer = opts.Writer
	var closer io.Closer = nopCloser{}
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("ensure log directory: %w", err)
		}
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	handlerOpts.AddSource = handlerOpts.Level.Level() <= slog.LevelDebug

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "json":
		handler = slog.NewJSONHandler(out, handlerOpts)
	case "text", "":
		handler = slog.NewTextHandler(out, handlerOpts)
	default:
		closer.Close()
		return nil, nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
	return slog.New(handler), closer, nil
}

// NewFromConfig creates a logger from config. Interactive sessions, or any
// run whose stderr is a terminal that the caller is about to take over, log
// to the file in cfg.Paths.LogDir.
func NewFromConfig(cfg *config.Config, interactive bool) (*slog.Logger, io.Closer, error) {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	opts := Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}
	if interactive && cfg.Paths.LogDir != "" {
		opts.Path = filepath.Join(cfg.Paths.LogDir, FileName)
	}
	return New(opts)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
