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

// maxInterests is how many interests the hybrid lookup considers.
const maxInterests = 2

// MultiPathScreen combines two interests into a hybrid career.
type MultiPathScreen struct {
	cat  *catalog.Catalog
	list components.Checklist
}

var _ screen.Screen = (*MultiPathScreen)(nil)
var _ screen.KeyHintProvider = (*MultiPathScreen)(nil)

// NewMultiPath creates a MultiPathScreen.
func NewMultiPath(cat *catalog.Catalog) *MultiPathScreen {
	items := make([]components.ChecklistItem, len(cat.MultiPath.Interests))
	for i, in := range cat.MultiPath.Interests {
		items[i] = components.ChecklistItem{ID: in.ID, Label: in.Name, Detail: in.Description}
	}
	return &MultiPathScreen{cat: cat, list: components.NewChecklist(items, maxInterests)}
}

func (s *MultiPathScreen) Init() tea.Cmd { return nil }

func (s *MultiPathScreen) Title() string { return "Multi-Path Careers" }

func (s *MultiPathScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Toggle"},
		{Key: "c", Description: "Clear"},
		{Key: "Esc", Description: "Back"},
	}
}

// Hybrid returns the hybrid for the current selection, or nil.
func (s *MultiPathScreen) Hybrid() *catalog.Hybrid {
	return s.cat.HybridPath(s.list.Checked())
}

func (s *MultiPathScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "esc":
			return s, pop
		case "c":
			s.list.Clear()
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *MultiPathScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	sections := []string{components.Card("Pick two interests", s.list.View(), cw)}

	if len(s.list.Checked()) < maxInterests {
		sections = append(sections, theme.Hint.Render("Choose two interests to discover a hybrid career."))
		return stack(width, sections...)
	}

	h := s.Hybrid()
	if h == nil {
		sections = append(sections, theme.Hint.Render("No hybrid path combines these interests yet. Try another pair."))
		return stack(width, sections...)
	}

	var b strings.Builder
	b.WriteString(theme.Body.Render(h.Description) + "\n\n")
	b.WriteString(components.NewProgressBar("Overlap", float64(h.Overlap)/100, true, cw-24).View() + "\n\n")
	fmt.Fprintf(&b, "%s %s   %s %s\n\n",
		theme.Label.Render("Timeline"), h.Timeline,
		theme.Label.Render("Salary"), h.Salary)
	b.WriteString(theme.Label.Render("Key skills") + "\n" + components.Tags(h.Skills) + "\n\n")
	b.WriteString(theme.Label.Render("Hiring companies") + "\n" + components.Bullets(h.Companies))

	sections = append(sections, components.MilestoneCard(h.Title, b.String(), cw))
	return stack(width, sections...)
}
