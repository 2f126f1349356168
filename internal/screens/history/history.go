// Package history lists past plan submissions from the event store.
package history

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillforge/internal/router"
	"github.com/abhisek/skillforge/internal/screen"
	"github.com/abhisek/skillforge/internal/store"
	"github.com/abhisek/skillforge/internal/ui/components"
	"github.com/abhisek/skillforge/internal/ui/layout"
	"github.com/abhisek/skillforge/internal/ui/theme"
)

// Limit is how many submissions the screen loads.
const Limit = 100

var lastScreenID atomic.Int64

type loadedMsg struct {
	screen int64
	events []store.ForgeEvent
	err    error
}

// HistoryScreen displays past submissions. Selecting one opens a new
// forge screen with that goal filled in.
type HistoryScreen struct {
	id     int64
	repo   store.EventRepo
	open   func(goal string) screen.Screen
	events []store.ForgeEvent
	menu   components.Menu
	loaded bool
	errMsg string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen. open builds the screen pushed for a goal.
func New(repo store.EventRepo, open func(goal string) screen.Screen) *HistoryScreen {
	return &HistoryScreen{
		id:   lastScreenID.Add(1),
		repo: repo,
		open: open,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load()
}

func (s *HistoryScreen) load() tea.Cmd {
	id, repo := s.id, s.repo
	return func() tea.Msg {
		events, err := repo.QueryForgeEvents(context.Background(), store.QueryOpts{Limit: Limit})
		return loadedMsg{screen: id, events: events, err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Forge again"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "R", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.screen != s.id {
			return s, nil
		}
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.events = msg.events
		s.menu = components.NewMenu(s.items())
		return s, nil

	case tea.KeyPressMsg:
		if msg.String() == "r" {
			return s, s.load()
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *HistoryScreen) items() []components.MenuItem {
	items := make([]components.MenuItem, len(s.events))
	for i, ev := range s.events {
		goal := ev.Goal
		items[i] = components.MenuItem{
			Label:  goal,
			Detail: Describe(ev),
			Action: func() tea.Cmd {
				next := s.open(goal)
				return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			},
		}
	}
	return items
}

// Describe summarizes an event's outcome on one line.
func Describe(ev store.ForgeEvent) string {
	outcome := "failed"
	if ev.Success {
		outcome = fmt.Sprintf("%d modules", ev.ModuleCount)
	}
	return fmt.Sprintf("%s · %s · %s · %s",
		outcome, ev.Source, (time.Duration(ev.LatencyMs) * time.Millisecond).Round(100*time.Millisecond),
		ev.Timestamp.Local().Format("Jan 02 15:04"))
}

func (s *HistoryScreen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return centered.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	case !s.loaded:
		return centered.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	case len(s.events) == 0:
		return centered.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing forged yet. Enter a goal to get started!")
	}

	heading := theme.Heading.Render(fmt.Sprintf("  Recent goals (%d)", len(s.events)))
	list := s.menu.View(width-2, max(height-3, 1))
	return "\n" + heading + "\n\n" + list
}
