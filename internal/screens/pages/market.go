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

const (
	viewSkills = iota
	viewSalaries
	viewTrends
	viewCount
)

// MarketScreen shows the market summary and one detail table at a time.
type MarketScreen struct {
	cat  *catalog.Catalog
	view int
}

var _ screen.Screen = (*MarketScreen)(nil)
var _ screen.KeyHintProvider = (*MarketScreen)(nil)

// NewMarket creates a MarketScreen.
func NewMarket(cat *catalog.Catalog) *MarketScreen {
	return &MarketScreen{cat: cat}
}

func (s *MarketScreen) Init() tea.Cmd { return nil }

func (s *MarketScreen) Title() string { return "Market Insights" }

func (s *MarketScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next table"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *MarketScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc":
		return s, pop
	case "tab", "right", "l":
		s.view = (s.view + 1) % viewCount
	case "shift+tab", "left", "h":
		s.view = (s.view - 1 + viewCount) % viewCount
	}
	return s, nil
}

func (s *MarketScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	m := s.cat.Market

	summary := fmt.Sprintf("%s %s   %s %s   %s %s\n%s %s   %s %s",
		theme.Label.Render("Job growth"), m.Summary.JobGrowth,
		theme.Label.Render("Average salary"), m.Summary.AverageSalary,
		theme.Label.Render("Openings"), m.Summary.TotalOpenings,
		theme.Label.Render("Demand"), m.Summary.DemandTrend,
		theme.Label.Render("Competition"), m.Summary.CompetitionLevel,
	)

	var title string
	var b strings.Builder
	barWidth := cw - 6
	switch s.view {
	case viewSkills:
		title = "In-demand skills"
		for _, sk := range m.TopSkills {
			bar := components.NewProgressBar(fmt.Sprintf("%-16s", sk.Skill), float64(sk.Demand)/100, true, barWidth-14)
			b.WriteString(bar.View() + "  " + theme.Good.Render(sk.Growth) + "\n")
		}
	case viewSalaries:
		title = "Salary ranges"
		for _, r := range m.SalaryRanges {
			fmt.Fprintf(&b, "%-26s %-16s %s\n", r.Level, r.Range, theme.Hint.Render("median "+r.Median))
		}
	case viewTrends:
		title = "Jobs vs applications"
		peak := 0
		for _, t := range m.Trends {
			peak = max(peak, t.Jobs)
		}
		for _, t := range m.Trends {
			bar := components.NewProgressBar(t.Month, float64(t.Jobs)/float64(peak), false, barWidth-40)
			b.WriteString(bar.View() + theme.Hint.Render(fmt.Sprintf("  %d jobs / %d applicants", t.Jobs, t.Applications)) + "\n")
		}
	}

	return stack(width,
		components.Card("Market summary", summary, cw),
		components.Card(title, b.String(), cw),
	)
}
