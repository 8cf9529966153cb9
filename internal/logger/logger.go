package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Options configures Setup.
type Options struct {
	// Path of the JSON log file. Empty discards log output.
	Path    string
	Verbose bool
	Version string
}

// Setup installs a JSON slog handler as the default logger. Every record
// carries a run_id so lines from one invocation can be grouped. The returned
// closer flushes and closes the log file.
func Setup(opts Options) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	var (
		w      io.Writer = io.Discard
		closer io.Closer = nopCloser{}
	)
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}

	runID := uuid.NewString()
	setRunID(runID)
	if opts.Version != "" {
		SetVersion(opts.Version)
	}

	l := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})).
		With("run_id", runID)
	slog.SetDefault(l)
	return l, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
