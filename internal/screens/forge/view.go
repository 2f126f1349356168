package forge

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillforge/internal/render"
	"github.com/abhisek/skillforge/internal/screens/welcome"
	"github.com/abhisek/skillforge/internal/ui/components"
	"github.com/abhisek/skillforge/internal/ui/layout"
	"github.com/abhisek/skillforge/internal/ui/theme"
)

const (
	maxContentWidth = 110
	buttonGap       = 1
)

func (s *ForgeScreen) View(width, height int) string {
	inner := max(min(width-4, maxContentWidth), 20)

	var top []string
	if !layout.IsCompactHeight(height) {
		top = append(top,
			theme.Title.Render("Skill Forge AI"),
			theme.Subtitle.Width(inner).Render(welcome.Tagline),
			"",
		)
	}
	top = append(top, s.renderInputRow(inner))
	if status := s.renderStatus(inner); status != "" {
		top = append(top, status)
	}
	head := lipgloss.JoinVertical(lipgloss.Left, top...)

	bodyHeight := max(height-lipgloss.Height(head)-1, 1)
	body := s.renderBody(inner, bodyHeight)

	content := head + "\n" + body
	return lipgloss.NewStyle().
		Width(width).
		PaddingLeft(max((width-inner)/2, 0)).
		Render(content)
}

func (s *ForgeScreen) renderInputRow(width int) string {
	btn := components.NewButton("Forge Plan", strings.TrimSpace(s.input.Value()) != "")
	if s.cycle.Loading {
		btn.Busy = true
		btn.BusyFor = s.spinner.View() + " Forging"
	}
	button := btn.View()

	inputWidth := max(width-lipgloss.Width(button)-buttonGap, 10)
	box := s.input.View(inputWidth)

	// Center the button against the three-line input box.
	button = lipgloss.PlaceVertical(lipgloss.Height(box), lipgloss.Center, button)
	return lipgloss.JoinHorizontal(lipgloss.Top, box, strings.Repeat(" ", buttonGap), button)
}

func (s *ForgeScreen) renderStatus(width int) string {
	switch {
	case s.cycle.Loading:
		return theme.Notice.Render(s.spinner.View() + " Architecting your learning path...")
	case s.cycle.Err != "":
		return render.Error(s.cycle.Err, width)
	case s.copied:
		return theme.Check.Render("✓ Copied!")
	}
	return ""
}

func (s *ForgeScreen) renderBody(width, height int) string {
	if s.cycle.Plan == nil {
		if s.cycle.Loading || s.cycle.Err != "" {
			return ""
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Enter a skill above and press Enter to forge a plan."))
	}

	s.syncViewport(width, height)

	view := s.vp.View()
	if s.vp.TotalLineCount() > height {
		pct := theme.Hint.Render(fmt.Sprintf("%3.f%%", s.vp.ScrollPercent()*100))
		view = lipgloss.JoinHorizontal(lipgloss.Bottom, view, " ", pct)
	}
	return view
}

// syncViewport re-renders the plan when it or the width changed.
func (s *ForgeScreen) syncViewport(width, height int) {
	planWidth := width - 5 // room for the scroll percentage
	s.vp.SetWidth(planWidth)
	s.vp.SetHeight(height)

	if s.shownPlan == s.cycle.Plan && s.shownWidth == planWidth {
		return
	}
	fresh := s.shownPlan != s.cycle.Plan
	s.vp.SetContent(render.Plan(s.cycle.Plan, planWidth).String())
	s.shownPlan = s.cycle.Plan
	s.shownWidth = planWidth
	if fresh {
		s.vp.GotoTop()
	}
}
