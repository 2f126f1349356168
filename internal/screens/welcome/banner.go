package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillforge/internal/ui/theme"
)

const bannerArt = `
 ███████╗ ██████╗ ██████╗  ██████╗ ███████╗
 ██╔════╝██╔═══██╗██╔══██╗██╔════╝ ██╔════╝
 █████╗  ██║   ██║██████╔╝██║  ███╗█████╗
 ██╔══╝  ██║   ██║██╔══██╗██║   ██║██╔══╝
 ██║     ╚██████╔╝██║  ██║╚██████╔╝███████╗
 ╚═╝      ╚═════╝ ╚═╝  ╚═╝ ╚═════╝ ╚══════╝`

const bannerCompact = "F O R G E"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 48

// RenderBanner returns the FORGE banner under a spaced "SKILL" kicker.
// Terminals narrower than bannerMinWidth get a single-line fallback.
func RenderBanner(width int) string {
	kicker := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("S  K  I  L  L")

	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return lipgloss.JoinVertical(lipgloss.Center, kicker, style.Render(bannerCompact))
	}
	return lipgloss.JoinVertical(lipgloss.Center, kicker, style.Render(bannerArt))
}
