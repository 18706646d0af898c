package pages

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerpilot/internal/catalog"
	"github.com/abhisek/careerpilot/internal/screen"
	"github.com/abhisek/careerpilot/internal/ui/components"
	"github.com/abhisek/careerpilot/internal/ui/layout"
	"github.com/abhisek/careerpilot/internal/ui/theme"
)

// CareersScreen shows the phased career tracks.
type CareersScreen struct {
	cat   *catalog.Catalog
	track int
}

var _ screen.Screen = (*CareersScreen)(nil)
var _ screen.KeyHintProvider = (*CareersScreen)(nil)

// NewCareers creates a CareersScreen.
func NewCareers(cat *catalog.Catalog) *CareersScreen {
	return &CareersScreen{cat: cat}
}

func (s *CareersScreen) Init() tea.Cmd { return nil }

func (s *CareersScreen) Title() string { return "Career Mapping" }

func (s *CareersScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Switch track"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CareersScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	n := len(s.cat.Careers.Tracks)
	switch kmsg.String() {
	case "esc":
		return s, pop
	case "right", "l", "tab":
		s.track = (s.track + 1) % n
	case "left", "h", "shift+tab":
		s.track = (s.track - 1 + n) % n
	}
	return s, nil
}

// Track returns the track on display.
func (s *CareersScreen) Track() catalog.Track {
	return s.cat.Careers.Tracks[s.track]
}

func (s *CareersScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	tabs := make([]string, len(s.cat.Careers.Tracks))
	for i, t := range s.cat.Careers.Tracks {
		if i == s.track {
			tabs[i] = theme.Selected.Render("[" + t.Name + "]")
		} else {
			tabs[i] = theme.Hint.Render(" " + t.Name + " ")
		}
	}

	var b strings.Builder
	for i, p := range s.Track().Phases {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  %s  %s\n",
			theme.Label.Render(fmt.Sprintf("%d. %s", i+1, p.Phase)),
			theme.Body.Bold(true).Render(p.Title),
			theme.Hint.Render(p.Duration))
		b.WriteString(theme.Body.Render(p.Description) + "\n")
		b.WriteString(components.Tags(p.Skills) + "\n")
	}

	return stack(width,
		strings.Join(tabs, "  "),
		"",
		components.Card(s.Track().Name, b.String(), cw),
	)
}
