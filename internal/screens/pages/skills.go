package pages

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerpilot/internal/catalog"
	"github.com/abhisek/careerpilot/internal/screen"
	"github.com/abhisek/careerpilot/internal/ui/components"
	"github.com/abhisek/careerpilot/internal/ui/layout"
	"github.com/abhisek/careerpilot/internal/ui/theme"
)

// SkillsScreen lets the user pick skills and shows how the fixed
// assessment rates them.
type SkillsScreen struct {
	cat  *catalog.Catalog
	list components.Checklist
}

var _ screen.Screen = (*SkillsScreen)(nil)
var _ screen.KeyHintProvider = (*SkillsScreen)(nil)

// NewSkills creates a SkillsScreen.
func NewSkills(cat *catalog.Catalog) *SkillsScreen {
	items := make([]components.ChecklistItem, len(cat.Skills.Available))
	for i, sk := range cat.Skills.Available {
		items[i] = components.ChecklistItem{ID: sk.ID, Label: sk.Name, Detail: sk.Category}
	}
	return &SkillsScreen{cat: cat, list: components.NewChecklist(items, 0)}
}

func (s *SkillsScreen) Init() tea.Cmd { return nil }

func (s *SkillsScreen) Title() string { return "Skill Analysis" }

func (s *SkillsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Toggle"},
		{Key: "c", Description: "Clear"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selected returns the checked skill ids in the order they were checked.
func (s *SkillsScreen) Selected() []string {
	return s.list.Checked()
}

func (s *SkillsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
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

func (s *SkillsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	sections := []string{components.Card("Your skills", s.list.View(), cw)}

	selected := s.list.Checked()
	if len(selected) == 0 {
		sections = append(sections, theme.Hint.Render("Select the skills you have to see your gap analysis."))
		return stack(width, sections...)
	}

	analysis := s.cat.Analyze(selected)
	var b strings.Builder
	groups := []struct {
		status catalog.SkillStatus
		label  string
		render func(...string) string
	}{
		{catalog.StatusStrong, "Strong", theme.Good.Render},
		{catalog.StatusDeveloping, "Developing", theme.Fair.Render},
		{catalog.StatusMissing, "Missing", theme.Bad.Render},
		{catalog.StatusUnassessed, "Not assessed", theme.Hint.Render},
	}
	for _, g := range groups {
		skills := analysis[g.status]
		if len(skills) == 0 {
			continue
		}
		names := make([]string, len(skills))
		for i, sk := range skills {
			names[i] = sk.Name
		}
		b.WriteString(g.render(g.label) + "  " + strings.Join(names, ", ") + "\n")
	}
	sections = append(sections, components.Card("Gap analysis", b.String(), cw))

	var paths strings.Builder
	for _, lp := range s.cat.Skills.LearningPaths {
		paths.WriteString(theme.Label.Render(lp.Skill) + "  " +
			theme.Hint.Render(lp.Priority+" priority · "+lp.Duration+" · "+lp.Provider) + "\n")
		paths.WriteString(components.Bullets(lp.Courses))
	}
	sections = append(sections, components.Card("Suggested learning", paths.String(), cw))

	return stack(width, sections...)
}
