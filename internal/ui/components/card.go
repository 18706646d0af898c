package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpilot/internal/ui/theme"
)

// ContentWidth returns the width page sections render at, capped so long
// lines stay readable on wide terminals.
func ContentWidth(width int) int {
	w := width - 6
	if w > 90 {
		w = 90
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded border with an optional heading.
func Card(heading, content string, cw int) string {
	return card(theme.Card, heading, content, cw)
}

// MilestoneCard is Card with the accent border.
func MilestoneCard(heading, content string, cw int) string {
	return card(theme.MilestoneCard, heading, content, cw)
}

func card(style lipgloss.Style, heading, content string, cw int) string {
	body := content
	if heading != "" {
		body = theme.Title.Render(heading) + "\n" + content
	}
	return style.Width(cw).Render(strings.TrimRight(body, "\n"))
}

// Bullets renders items as a bulleted list.
func Bullets(items []string) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString("• " + it + "\n")
	}
	return b.String()
}

// Tags renders items inline, separated by dots.
func Tags(items []string) string {
	return lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Join(items, " · "))
}
