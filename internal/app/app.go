package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpilot/internal/auth"
	"github.com/abhisek/careerpilot/internal/catalog"
	"github.com/abhisek/careerpilot/internal/roadmap"
	"github.com/abhisek/careerpilot/internal/router"
	"github.com/abhisek/careerpilot/internal/screen"
	"github.com/abhisek/careerpilot/internal/screens/activity"
	"github.com/abhisek/careerpilot/internal/screens/home"
	"github.com/abhisek/careerpilot/internal/screens/login"
	"github.com/abhisek/careerpilot/internal/screens/notice"
	"github.com/abhisek/careerpilot/internal/screens/pages"
	"github.com/abhisek/careerpilot/internal/screens/roadmaps"
	"github.com/abhisek/careerpilot/internal/screens/welcome"
	"github.com/abhisek/careerpilot/internal/store"
	"github.com/abhisek/careerpilot/internal/ui/layout"
)

// Deps holds everything the screens need. Activity and Progress are nil
// when the local database could not be opened.
type Deps struct {
	Auth       *auth.Manager
	Catalog    *catalog.Catalog
	Roadmap    *roadmap.Graph
	Activity   store.ActivityRepo
	Progress   store.ProgressRepo
	SkipSplash bool
}

// flow builds the screens of the sign-in gate and the home menu.
type flow struct {
	deps Deps
}

func (f flow) login() screen.Screen {
	return login.New(f.deps.Auth, f.home)
}

func (f flow) home() screen.Screen {
	cat := f.deps.Catalog
	dests := []home.Destination{
		{Label: "Career Mapping", Hint: "Phased tracks", Open: func() screen.Screen { return pages.NewCareers(cat) }},
		{Label: "Skill Analysis", Hint: "Find your gaps", Open: func() screen.Screen { return pages.NewSkills(cat) }},
		{Label: "Market Insights", Hint: "Demand and salaries", Open: func() screen.Screen { return pages.NewMarket(cat) }},
		{Label: "Multi-Path", Hint: "Hybrid careers", Open: func() screen.Screen { return pages.NewMultiPath(cat) }},
		{Label: "Resilience", Hint: "Plan B and C", Open: func() screen.Screen { return pages.NewResilience(cat) }},
		{Label: "Roadmaps", Hint: "Walk a career flowchart", Open: func() screen.Screen {
			return roadmaps.New(f.deps.Roadmap, f.deps.Progress)
		}},
		{Label: "Activity", Hint: "Recent sign-ins", Open: f.activity},
	}
	return home.New(f.deps.Auth, dests, f.login)
}

func (f flow) activity() screen.Screen {
	if f.deps.Activity == nil {
		return notice.New("Activity", "Sign-in activity is not recorded because the local database is unavailable.")
	}
	return activity.New(f.deps.Activity)
}

func (f flow) initial() screen.Screen {
	if f.deps.SkipSplash {
		return f.login()
	}
	return welcome.New(f.login)
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	auth   *auth.Manager
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the splash screen, or at
// the sign-in gate when the splash is skipped.
func newAppModel(deps Deps) AppModel {
	f := flow{deps: deps}
	return AppModel{
		router: router.New(f.initial()),
		auth:   deps.Auth,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the header, the active screen and the footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	user := ""
	if s := m.auth.Session(); s.User != nil {
		user = s.User.DisplayName
	}
	header := layout.RenderHeader(title, user, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

var quitHint = layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		hints := p.KeyHints()
		for _, h := range hints {
			if h == quitHint {
				return hints
			}
		}
		return append(hints, quitHint)
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			quitHint,
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		quitHint,
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(newAppModel(deps), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
