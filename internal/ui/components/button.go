package components

import (
	"github.com/abhisek/skillforge/internal/ui/theme"
)

// Button is a styled, display-only button. Key handling belongs to the
// screen that owns it.
type Button struct {
	Label   string
	Active  bool
	Busy    bool
	BusyFor string // rendered in place of Label while Busy, e.g. a spinner frame
}

// NewButton creates a new button.
func NewButton(label string, active bool) Button {
	return Button{Label: label, Active: active}
}

// View renders the button.
func (b Button) View() string {
	if b.Busy {
		return theme.ButtonInactive.Render(b.BusyFor)
	}
	if b.Active {
		return theme.ButtonActive.Render(b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}
