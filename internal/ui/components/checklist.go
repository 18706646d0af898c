package components

import (
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpilot/internal/ui/theme"
)

// ChecklistItem is one toggleable entry.
type ChecklistItem struct {
	ID     string
	Label  string
	Detail string
}

// Checklist is a multi-select list. It remembers the order in which items
// were checked.
type Checklist struct {
	Items   []ChecklistItem
	Cursor  int
	Max     int // 0 = no limit
	checked []string
}

// NewChecklist creates a checklist with nothing checked.
func NewChecklist(items []ChecklistItem, max int) Checklist {
	return Checklist{Items: items, Max: max}
}

// Checked returns the checked ids in the order they were checked.
func (c Checklist) Checked() []string {
	return slices.Clone(c.checked)
}

// IsChecked reports whether id is checked.
func (c Checklist) IsChecked(id string) bool {
	return slices.Contains(c.checked, id)
}

// Toggle flips the item with the given id. Checking beyond Max is ignored.
func (c *Checklist) Toggle(id string) {
	if i := slices.Index(c.checked, id); i >= 0 {
		c.checked = slices.Delete(c.checked, i, i+1)
		return
	}
	if c.Max > 0 && len(c.checked) >= c.Max {
		return
	}
	c.checked = append(c.checked, id)
}

// Clear unchecks everything.
func (c *Checklist) Clear() {
	c.checked = nil
}

// Update handles cursor movement and toggling with space or enter.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(c.Items) == 0 {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Items)-1 {
			c.Cursor++
		}
	case "space", " ", "enter", "x":
		c.Toggle(c.Items[c.Cursor].ID)
	}
	return c, nil
}

// View renders the checklist.
func (c Checklist) View() string {
	var b strings.Builder
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	for i, item := range c.Items {
		box := "[ ]"
		if c.IsChecked(item.ID) {
			box = "[x]"
		}
		prefix := "  "
		style := theme.Unselected
		if i == c.Cursor {
			prefix = "▸ "
			style = theme.Selected
		}
		line := style.Render(prefix + box + " " + item.Label)
		if item.Detail != "" {
			line += dim.Render("  " + item.Detail)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
