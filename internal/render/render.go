// Package render maps a LearningPlan onto styled terminal sections: one
// overview card followed by one timeline entry per module.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/skillforge/internal/plan"
	"github.com/abhisek/skillforge/internal/ui/theme"
)

// View is a rendered plan. Timeline has exactly one entry per module, in
// the order the modules were received.
type View struct {
	Overview string
	Timeline []string
}

// String joins the overview and the timeline into one block.
func (v View) String() string {
	if v.Overview == "" && len(v.Timeline) == 0 {
		return ""
	}
	parts := make([]string, 0, len(v.Timeline)+1)
	parts = append(parts, v.Overview)
	parts = append(parts, v.Timeline...)
	return strings.Join(parts, "\n")
}

// Plan renders p for a terminal of the given width. A nil plan renders
// nothing.
func Plan(p *plan.LearningPlan, width int) View {
	if p == nil {
		return View{}
	}
	width = max(width, 20)

	v := View{
		Overview: overview(p, width),
		Timeline: make([]string, len(p.Modules)),
	}
	for i, m := range p.Modules {
		v.Timeline[i] = module(i, m, width)
	}
	return v
}

// Error renders the error banner.
func Error(msg string, width int) string {
	return theme.ErrorBanner.Width(max(width, 20)).Render(msg)
}

func overview(p *plan.LearningPlan, width int) string {
	inner := cardInner(width)

	badges := []string{}
	if p.DifficultyLevel != "" {
		badges = append(badges, theme.BadgePrimary.Render(p.DifficultyLevel))
	}
	badges = append(badges, theme.BadgeSuccess.Render("AI Generated"))
	if p.TotalEstimatedWeeks > 0 {
		badges = append(badges, theme.BadgeMuted.Render(Weeks(p.TotalEstimatedWeeks)))
	}
	if total := p.TotalHours(); total > 0 {
		badges = append(badges, theme.BadgeMuted.Render(Hours(total)+" total"))
	}

	lines := []string{
		theme.Heading.Width(inner).Render(p.Goal),
		lipgloss.JoinHorizontal(lipgloss.Top, spaced(badges)...),
	}
	if p.SummaryMotivation != "" {
		lines = append(lines, "", theme.Quote.Width(inner).Render(p.SummaryMotivation))
	}
	if len(p.Prerequisites) > 0 {
		lines = append(lines, "", section("Prerequisites"))
		for _, pre := range p.Prerequisites {
			lines = append(lines, bullet("•", theme.Body, pre, inner))
		}
	}

	return theme.Card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func module(i int, m plan.Module, width int) string {
	inner := cardInner(width)

	index := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("%02d.", i+1))
	hours := theme.Hint.Render(Hours(m.EstimatedHours))
	title := index + " " + theme.Heading.Render(m.Title)

	gap := max(inner-lipgloss.Width(title)-lipgloss.Width(hours), 1)
	head := title + strings.Repeat(" ", gap) + hours
	if lipgloss.Width(head) > inner {
		head = lipgloss.JoinVertical(lipgloss.Left, title, hours)
	}

	lines := []string{head}
	if m.Description != "" {
		lines = append(lines, "", theme.Body.Width(inner).Render(m.Description))
	}

	if len(m.KeyTopics) > 0 {
		lines = append(lines, "", section("Key Topics"))
		for _, topic := range m.KeyTopics {
			lines = append(lines, bullet("✓", theme.Check, topic, inner))
		}
	}

	cardWidth := width
	if len(m.Resources) > 0 {
		lines = append(lines, "", section("Resources"))
		for _, r := range m.Resources {
			label, link := resource(r)
			lines = append(lines, label, link)
			// Links never wrap; the card grows and the viewport scrolls.
			cardWidth = max(cardWidth, lipgloss.Width(link)+theme.Card.GetHorizontalFrameSize())
		}
	}

	if m.ProjectIdea != "" {
		lines = append(lines, "", section("Project"), theme.Body.Width(inner).Render(m.ProjectIdea))
	}

	return theme.Card.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func resource(r plan.Resource) (label, link string) {
	label = theme.Body.Render(r.Title)
	if r.Type != "" {
		label += "  " + theme.Hint.Render("["+r.Type+"]")
	}
	return "  " + label, "    " + Link(plan.ResourceLink(r.URL))
}

// Link renders target as a single unbroken token wrapped in an OSC 8
// hyperlink, so terminals that support it can open it directly.
func Link(target string) string {
	return ansi.SetHyperlink(target) + theme.Link.Render(target) + ansi.ResetHyperlink()
}

func section(name string) string {
	return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(name)
}

func bullet(mark string, markStyle lipgloss.Style, text string, inner int) string {
	body := theme.Body.Width(max(inner-4, 10)).Render(text)
	return lipgloss.JoinHorizontal(lipgloss.Top, "  "+markStyle.Render(mark)+" ", body)
}

func spaced(items []string) []string {
	out := make([]string, 0, len(items)*2)
	for i, it := range items {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, it)
	}
	return out
}

// cardInner is the text width inside a theme.Card of the given outer width.
func cardInner(width int) int {
	return max(width-theme.Card.GetHorizontalFrameSize(), 10)
}

// Hours formats an hour estimate the way the timeline shows it.
func Hours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + " Hours"
}

// Weeks formats a week estimate.
func Weeks(w float64) string {
	unit := "weeks"
	if w == 1 {
		unit = "week"
	}
	return strconv.FormatFloat(w, 'f', -1, 64) + " " + unit
}
