// Package forge is the main screen: a goal input, the submit button, and
// the rendered plan below them.
package forge

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillforge/internal/clipboard"
	"github.com/abhisek/skillforge/internal/export"
	fg "github.com/abhisek/skillforge/internal/forge"
	"github.com/abhisek/skillforge/internal/logging"
	"github.com/abhisek/skillforge/internal/plan"
	"github.com/abhisek/skillforge/internal/router"
	"github.com/abhisek/skillforge/internal/screen"
	"github.com/abhisek/skillforge/internal/screens/history"
	"github.com/abhisek/skillforge/internal/store"
	"github.com/abhisek/skillforge/internal/ui/components"
	"github.com/abhisek/skillforge/internal/ui/layout"
	"github.com/abhisek/skillforge/internal/ui/theme"
)

// Placeholder is shown in the empty goal input.
const Placeholder = "e.g., Learn Rust for Systems Programming..."

type focusArea int

const (
	focusInput focusArea = iota
	focusPlan
)

// Options configures a ForgeScreen. Only Forger is required.
type Options struct {
	Forger    fg.Forger
	Clipboard clipboard.Writer
	Repo      store.EventRepo // enables the history screen when set
	Logger    *logging.Logger
	Goal      string // pre-filled goal
}

// ForgeScreen implements screen.Screen for goal entry and plan display.
type ForgeScreen struct {
	id    int64
	opts  Options
	cycle *fg.Cycle

	input   components.TextInput
	spinner spinner.Model
	vp      viewport.Model
	focus   focusArea

	copied  bool
	copyGen int

	// what the viewport currently holds
	shownPlan  *plan.LearningPlan
	shownWidth int
}

var _ screen.Screen = (*ForgeScreen)(nil)
var _ screen.KeyHintProvider = (*ForgeScreen)(nil)

// New creates a ForgeScreen.
func New(opts Options) *ForgeScreen {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.System{}
	}

	input := components.NewTextInput(Placeholder, components.GoalCharLimit)
	if opts.Goal != "" {
		input.SetValue(opts.Goal)
	}

	return &ForgeScreen{
		id:    nextScreenID(),
		opts:  opts,
		cycle: fg.NewCycle(),
		input: input,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(theme.Notice),
		),
		vp: viewport.New(),
	}
}

func (s *ForgeScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ForgeScreen) Title() string {
	return "Forge"
}

func (s *ForgeScreen) KeyHints() []layout.KeyHint {
	if s.cycle.Loading {
		return []layout.KeyHint{
			{Key: "…", Description: "Forging"},
		}
	}
	if s.focus == focusPlan {
		hints := []layout.KeyHint{
			{Key: "↑↓←→", Description: "Scroll"},
			{Key: "C", Description: "Copy JSON"},
			{Key: "Tab", Description: "Edit goal"},
		}
		if s.opts.Repo != nil {
			hints = append(hints, layout.KeyHint{Key: "H", Description: "History"})
		}
		return hints
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Forge"},
	}
	if s.cycle.Plan != nil {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Plan"})
	}
	if s.opts.Repo != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+H", Description: "History"})
	}
	return hints
}

// Cycle exposes the request state, mostly for tests.
func (s *ForgeScreen) Cycle() *fg.Cycle {
	return s.cycle
}

func (s *ForgeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		return s.handleResult(msg)

	case copyDoneMsg:
		return s.handleCopied(msg)

	case copyExpiredMsg:
		if msg.screen == s.id && msg.gen == s.copyGen {
			s.copied = false
		}
		return s, nil

	case spinner.TickMsg:
		// The tick chain ends once nothing is loading.
		if !s.cycle.Loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ForgeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+h" {
		return s, s.openHistory()
	}

	if s.focus == focusPlan {
		switch key {
		case "tab", "i", "/":
			return s, s.focusInput()
		case "c", "y":
			return s, s.copyPlan()
		case "h":
			return s, s.openHistory()
		}
		var cmd tea.Cmd
		s.vp, cmd = s.vp.Update(msg)
		return s, cmd
	}

	switch key {
	case "enter":
		return s, s.submit()
	case "tab":
		if s.cycle.Plan != nil && !s.cycle.Loading {
			s.focusPlan()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ForgeScreen) submit() tea.Cmd {
	req, ok := s.cycle.Begin(s.input.Value())
	if !ok {
		return nil
	}
	s.input.ReadOnly = true
	s.copied = false

	return tea.Batch(s.spinner.Tick, s.run(req))
}

func (s *ForgeScreen) run(req fg.Request) tea.Cmd {
	id, f := s.id, s.opts.Forger
	return func() tea.Msg {
		return resultMsg{screen: id, Result: fg.Run(context.Background(), f, req)}
	}
}

func (s *ForgeScreen) handleResult(msg resultMsg) (screen.Screen, tea.Cmd) {
	if msg.screen != s.id || !s.cycle.Resolve(msg.Result) {
		return s, nil
	}
	s.input.ReadOnly = false

	if s.cycle.Plan != nil {
		s.focusPlan()
	}
	return s, nil
}

// copyPlan writes the plan JSON off the event loop; the system clipboard
// may shell out to xclip or pbcopy.
func (s *ForgeScreen) copyPlan() tea.Cmd {
	if s.cycle.Plan == nil {
		return nil
	}
	text, err := export.JSON(s.cycle.Plan)
	if err != nil {
		s.opts.Logger.Printf("copy: %v", err)
		return nil
	}
	id, clip := s.id, s.opts.Clipboard
	return func() tea.Msg {
		return copyDoneMsg{screen: id, text: text, err: clip.Write(text)}
	}
}

func (s *ForgeScreen) handleCopied(msg copyDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.screen != s.id {
		return s, nil
	}
	var fallback tea.Cmd
	if msg.err != nil {
		// OSC52 works over SSH where the system clipboard does not.
		s.opts.Logger.Printf("copy: system clipboard failed, using terminal: %v", msg.err)
		fallback = tea.SetClipboard(msg.text)
	}

	s.copyGen++
	s.copied = true
	return s, tea.Batch(fallback, expireCopy(s.id, s.copyGen))
}

func (s *ForgeScreen) openHistory() tea.Cmd {
	if s.opts.Repo == nil || s.cycle.Loading {
		return nil
	}
	opts := s.opts
	h := history.New(opts.Repo, func(goal string) screen.Screen {
		o := opts
		o.Goal = goal
		return New(o)
	})
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: h}
	}
}

func (s *ForgeScreen) focusInput() tea.Cmd {
	s.focus = focusInput
	return s.input.Focus()
}

func (s *ForgeScreen) focusPlan() {
	s.focus = focusPlan
	s.input.Blur()
}
