package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillforge/internal/ui/theme"
)

// GoalCharLimit caps the goal text. The backend accepts anything, but a
// goal longer than this is no longer a goal.
const GoalCharLimit = 280

// TextInput wraps bubbles/textinput with a bordered box and a read-only
// mode used while a request is in flight.
type TextInput struct {
	Model    textinput.Model
	ReadOnly bool
}

// NewTextInput creates a new styled, focused text input.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()

	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Key presses are dropped while ReadOnly.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.ReadOnly {
		switch msg.(type) {
		case tea.KeyPressMsg, tea.PasteMsg:
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input inside a rounded box of the given outer width.
func (t TextInput) View(width int) string {
	border := theme.Border
	if t.Model.Focused() && !t.ReadOnly {
		border = theme.Primary
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	m := t.Model
	m.SetWidth(max(width-box.GetHorizontalFrameSize()-lipgloss.Width(m.Prompt)-1, 1))
	return box.Width(width).Render(m.View())
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value and moves the cursor to the end.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
	t.Model.CursorEnd()
}
