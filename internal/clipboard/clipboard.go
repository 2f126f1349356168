// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no system clipboard is reachable, for
// example over SSH or on a headless Linux box without xclip/xsel.
var ErrUnsupported = errors.New("clipboard: system clipboard unavailable")

// Writer copies text somewhere the user can paste it from.
type Writer interface {
	Write(text string) error
}

// System writes through github.com/atotto/clipboard.
type System struct{}

func (System) Write(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}

// Memory is an in-process clipboard. It is safe for concurrent use.
type Memory struct {
	mu     sync.Mutex
	text   string
	writes int
	Err    error // returned from every Write when set
}

func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.text = text
	m.writes++
	return nil
}

// Text returns the last text written.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Writes returns how many writes succeeded.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
