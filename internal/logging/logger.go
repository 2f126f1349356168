package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Logger appends timestamped lines to a log file. The TUI owns the
// terminal while it runs, so diagnostics that the user never sees on
// screen (the real cause behind a generic error message, store failures)
// end up here instead.
type Logger struct {
	mu  sync.Mutex
	out io.WriteCloser
	now func() time.Time
}

// New opens (or creates) the log file at path, creating parent
// directories as needed.
func New(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{out: f, now: time.Now}, nil
}

// NewWriter builds a Logger on top of an arbitrary writer. Close closes w.
func NewWriter(w io.WriteCloser) *Logger {
	return &Logger{out: w, now: time.Now}
}

// DefaultPath resolves the log file location:
// 1. SKILLFORGE_LOG environment variable
// 2. $XDG_STATE_HOME/skillforge/skillforge.log
// 3. ~/.local/state/skillforge/skillforge.log
func DefaultPath() (string, error) {
	if p := os.Getenv("SKILLFORGE_LOG"); p != "" {
		return p, nil
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "skillforge", "skillforge.log"), nil
}

// Close releases the underlying file.
func (l *Logger) Close() error {
	if l == nil || l.out == nil {
		return nil
	}
	return l.out.Close()
}

// Printf writes a single timestamped line. Safe on a nil Logger.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.out == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	line = strings.TrimRight(line, "\n")

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[%s] %s\n", l.now().Format(time.RFC3339), line)
}
