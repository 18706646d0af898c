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

type scenarioMsg struct{ id string }

// ResilienceScreen lists disruption scenarios and their fallback plans.
type ResilienceScreen struct {
	cat      *catalog.Catalog
	menu     components.Menu
	selected string
}

var _ screen.Screen = (*ResilienceScreen)(nil)
var _ screen.KeyHintProvider = (*ResilienceScreen)(nil)

// NewResilience creates a ResilienceScreen.
func NewResilience(cat *catalog.Catalog) *ResilienceScreen {
	items := make([]components.MenuItem, len(cat.Resilience.Scenarios))
	for i, sc := range cat.Resilience.Scenarios {
		id := sc.ID
		items[i] = components.MenuItem{
			Label: sc.Title,
			Hint:  sc.Impact + " impact · " + sc.Probability + " probability",
			Action: func() tea.Cmd {
				return func() tea.Msg { return scenarioMsg{id: id} }
			},
		}
	}
	return &ResilienceScreen{cat: cat, menu: components.NewMenu(items)}
}

func (s *ResilienceScreen) Init() tea.Cmd { return nil }

func (s *ResilienceScreen) Title() string { return "Resilience Planning" }

func (s *ResilienceScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Show plans"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selected returns the id of the scenario whose plans are shown.
func (s *ResilienceScreen) Selected() string { return s.selected }

func (s *ResilienceScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scenarioMsg:
		s.selected = msg.id
		return s, nil
	case tea.KeyPressMsg:
		if msg.String() == "esc" {
			if s.selected != "" {
				s.selected = ""
				return s, nil
			}
			return s, pop
		}
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ResilienceScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	sections := []string{components.Card("What could change?", s.menu.View(), cw)}

	if s.selected == "" {
		sections = append(sections, theme.Hint.Render("Pick a scenario to see your backup plans."))
		return stack(width, sections...)
	}

	sc, _ := s.cat.Scenario(s.selected)
	sections = append(sections, theme.Body.Render(sc.Description))

	plan := s.cat.Plan(s.selected)
	if plan == nil {
		sections = append(sections, theme.Hint.Render("No contingency plan has been prepared for this scenario yet."))
		return stack(width, sections...)
	}
	sections = append(sections,
		components.MilestoneCard("Plan B: "+plan.PlanB.Title, contingency(plan.PlanB), cw),
		components.Card("Plan C: "+plan.PlanC.Title, contingency(plan.PlanC), cw),
	)
	return stack(width, sections...)
}

func contingency(c catalog.Contingency) string {
	var b strings.Builder
	b.WriteString(theme.Body.Render(c.Description) + "\n")
	fmt.Fprintf(&b, "%s %s\n\n", theme.Label.Render("Timeline"), c.Timeline)
	b.WriteString(theme.Label.Render("Steps") + "\n")
	for i, step := range c.Steps {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
	}
	b.WriteString("\n" + theme.Label.Render("Resources") + "\n" + components.Bullets(c.Resources))
	return b.String()
}
