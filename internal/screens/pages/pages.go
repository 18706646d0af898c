// Package pages renders the catalog-backed guidance screens.
package pages

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpilot/internal/router"
)

func pop() tea.Msg { return router.PopScreenMsg{} }

// stack joins sections with a blank line and centres them horizontally.
func stack(width int, sections ...string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n"))
}
