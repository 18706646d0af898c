package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpilot/internal/ui/theme"
)

const bannerArt = `
  ___                       ___ _ _     _
 / __|__ _ _ _ ___ ___ _ _| _ (_) |___| |_
| (__/ _' | '_/ -_) -_) '_|  _/ | / _ \  _|
 \___\__,_|_| \___\___|_| |_| |_|_\___/\__|`

const bannerCompact = "C A R E E R P I L O T"

// RenderBanner returns the banner styled in the primary color, falling back
// to a single line on terminals narrower than 48 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 48 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
