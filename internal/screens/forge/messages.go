package forge

import (
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"

	fg "github.com/abhisek/skillforge/internal/forge"
)

// copiedFor is how long the "Copied!" notice stays up.
const copiedFor = 2 * time.Second

// Non-key messages are broadcast to every screen on the stack, so each
// message carries the ID of the screen that started the work.
var lastScreenID atomic.Int64

func nextScreenID() int64 {
	return lastScreenID.Add(1)
}

// resultMsg is sent when a forge request finishes.
type resultMsg struct {
	screen int64
	fg.Result
}

// copyDoneMsg reports a clipboard write. A failed write falls back to
// the terminal clipboard.
type copyDoneMsg struct {
	screen int64
	text   string
	err    error
}

// copyExpiredMsg hides the "Copied!" notice unless a newer copy happened.
type copyExpiredMsg struct {
	screen int64
	gen    int
}

func expireCopy(screen int64, gen int) tea.Cmd {
	return tea.Tick(copiedFor, func(time.Time) tea.Msg {
		return copyExpiredMsg{screen: screen, gen: gen}
	})
}
