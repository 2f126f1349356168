package history

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillforge/internal/router"
	"github.com/abhisek/skillforge/internal/screen"
	"github.com/abhisek/skillforge/internal/store"
)

type fakeRepo struct {
	store.EventRepo
	events []store.ForgeEvent
	err    error
	opts   store.QueryOpts
}

func (f *fakeRepo) QueryForgeEvents(_ context.Context, opts store.QueryOpts) ([]store.ForgeEvent, error) {
	f.opts = opts
	return f.events, f.err
}

type goalScreen struct {
	screen.Screen
	goal string
}

func (g goalScreen) Title() string { return g.goal }

func events() []store.ForgeEvent {
	ts := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	return []store.ForgeEvent{
		{ID: 2, Timestamp: ts, ForgeEventData: store.ForgeEventData{Goal: "Learn Rust", Source: "backend", Success: true, ModuleCount: 5, LatencyMs: 2400}},
		{ID: 1, Timestamp: ts, ForgeEventData: store.ForgeEventData{Goal: "Learn Go", Source: "llm", ErrorMessage: "boom"}},
	}
}

func loadedScreen(t *testing.T, repo *fakeRepo) *HistoryScreen {
	t.Helper()
	s := New(repo, func(goal string) screen.Screen { return goalScreen{goal: goal} })
	s.Update(s.Init()())
	require.True(t, s.loaded)
	return s
}

func TestLoadAndList(t *testing.T) {
	repo := &fakeRepo{events: events()}
	s := loadedScreen(t, repo)

	assert.Equal(t, Limit, repo.opts.Limit)
	view := ansi.Strip(s.View(100, 20))
	assert.Contains(t, view, "Learn Rust")
	assert.Contains(t, view, "5 modules · backend")
	assert.Contains(t, view, "failed · llm")
}

func TestEnterOpensGoal(t *testing.T) {
	s := loadedScreen(t, &fakeRepo{events: events()})

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Learn Go", push.Screen.Title())
}

func TestLoadError(t *testing.T) {
	s := loadedScreen(t, &fakeRepo{err: errors.New("disk gone")})
	assert.Contains(t, ansi.Strip(s.View(80, 20)), "disk gone")
}

func TestEmpty(t *testing.T) {
	s := loadedScreen(t, &fakeRepo{})
	assert.Contains(t, ansi.Strip(s.View(80, 20)), "Nothing forged yet")
}

func TestIgnoresOtherScreensResults(t *testing.T) {
	a := New(&fakeRepo{events: events()}, nil)
	b := New(&fakeRepo{}, nil)

	b.Update(a.Init()())
	assert.False(t, b.loaded)
}

func TestDescribe(t *testing.T) {
	ev := events()[0]
	assert.Contains(t, Describe(ev), "5 modules · backend · 2.4s")
}
