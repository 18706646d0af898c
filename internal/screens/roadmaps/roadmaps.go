package roadmaps

import (
	"context"
	"log"
	"strings"
	"sync"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpilot/internal/roadmap"
	"github.com/abhisek/careerpilot/internal/router"
	"github.com/abhisek/careerpilot/internal/screen"
	"github.com/abhisek/careerpilot/internal/store"
	"github.com/abhisek/careerpilot/internal/ui/components"
	"github.com/abhisek/careerpilot/internal/ui/layout"
	"github.com/abhisek/careerpilot/internal/ui/theme"
)

// keepProgress is how many saved positions survive a prune.
const keepProgress = 20

// progressVersion is written with every saved position.
const progressVersion = 1

type progressLoadedMsg struct {
	progress *store.Progress
	err      error
}

type progressSavedMsg struct {
	err error
}

// progressWriter serialises saves. Each save carries a generation taken in
// Update; a save older than the last one written is dropped, so the latest
// stored position is always the latest move.
type progressWriter struct {
	repo    store.ProgressRepo
	mu      sync.Mutex
	written uint64
}

func (w *progressWriter) write(gen uint64, p *store.Progress) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if gen <= w.written {
		return nil
	}
	ctx := context.Background()
	if err := w.repo.Save(ctx, p); err != nil {
		return err
	}
	w.written = gen
	return w.repo.Prune(ctx, keepProgress)
}

type chooseMsg struct {
	optionID string
}

type followMsg struct {
	key string
}

// RoadmapScreen walks the roadmap graph. Every move is saved so the walk
// resumes where it was left.
type RoadmapScreen struct {
	nav      *roadmap.Navigator
	progress store.ProgressRepo
	writer   *progressWriter
	saveGen  uint64
	menu     components.Menu
	loaded   bool
	status   string
}

var _ screen.Screen = (*RoadmapScreen)(nil)
var _ screen.KeyHintProvider = (*RoadmapScreen)(nil)

// New creates a RoadmapScreen. progress may be nil, in which case nothing
// is saved or resumed.
func New(g *roadmap.Graph, progress store.ProgressRepo) *RoadmapScreen {
	s := &RoadmapScreen{
		nav:      roadmap.NewNavigator(g),
		progress: progress,
	}
	if progress != nil {
		s.writer = &progressWriter{repo: progress}
	}
	s.rebuildMenu()
	return s
}

func (s *RoadmapScreen) Init() tea.Cmd {
	if s.progress == nil {
		s.loaded = true
		return nil
	}
	repo := s.progress
	return func() tea.Msg {
		p, err := repo.Latest(context.Background())
		return progressLoadedMsg{progress: p, err: err}
	}
}

func (s *RoadmapScreen) Title() string {
	return "Roadmaps"
}

func (s *RoadmapScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Choose"},
	}
	if s.nav.CanGoBack() {
		hints = append(hints, layout.KeyHint{Key: "b", Description: "Back"})
	}
	if !s.nav.AtStart() {
		hints = append(hints, layout.KeyHint{Key: "r", Description: "Start over"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

func (s *RoadmapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		s.loaded = true
		switch {
		case msg.err != nil:
			log.Printf("warning: failed to load roadmap progress: %v", msg.err)
		case msg.progress != nil:
			if err := s.nav.Restore(msg.progress.Data.Roadmap); err != nil {
				log.Printf("warning: discarding saved roadmap progress: %v", err)
			} else if !s.nav.AtStart() {
				s.status = "Resumed where you left off."
			}
		}
		s.rebuildMenu()
		return s, nil

	case chooseMsg:
		if !s.loaded {
			return s, nil
		}
		if err := s.nav.Choose(msg.optionID); err != nil {
			log.Printf("warning: %v", err)
			return s, nil
		}
		return s, s.moved()

	case followMsg:
		if !s.loaded {
			return s, nil
		}
		if err := s.nav.FollowNextStep(msg.key); err != nil {
			log.Printf("warning: %v", err)
			return s, nil
		}
		return s, s.moved()

	case progressSavedMsg:
		if msg.err != nil {
			log.Printf("warning: failed to save roadmap progress: %v", msg.err)
			s.status = "Progress could not be saved."
		}
		return s, nil

	case tea.KeyPressMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		// Moves made before the saved position arrives would be overwritten.
		if !s.loaded {
			return s, nil
		}
		switch msg.String() {
		case "b":
			if s.nav.GoBack() {
				return s, s.moved()
			}
			return s, nil
		case "r":
			if !s.nav.AtStart() {
				s.nav.Reset()
				return s, s.moved()
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// moved refreshes the view after a navigation change and saves the new
// position.
func (s *RoadmapScreen) moved() tea.Cmd {
	s.status = ""
	s.rebuildMenu()
	return s.save()
}

func (s *RoadmapScreen) save() tea.Cmd {
	if s.writer == nil {
		return nil
	}
	s.saveGen++
	gen, w := s.saveGen, s.writer
	p := &store.Progress{Data: store.ProgressData{Version: progressVersion, Roadmap: s.nav.State()}}
	return func() tea.Msg {
		return progressSavedMsg{err: w.write(gen, p)}
	}
}

func (s *RoadmapScreen) rebuildMenu() {
	var items []components.MenuItem
	switch n := s.nav.Current().(type) {
	case *roadmap.Decision:
		for _, opt := range n.Options {
			msg := chooseMsg{optionID: opt.ID}
			items = append(items, components.MenuItem{
				Label:  opt.Label,
				Action: func() tea.Cmd { return func() tea.Msg { return msg } },
			})
		}
	case *roadmap.Milestone:
		for _, next := range n.Details.NextSteps {
			msg := followMsg{key: next}
			items = append(items, components.MenuItem{
				Label:  roadmap.StepLabel(next),
				Action: func() tea.Cmd { return func() tea.Msg { return msg } },
			})
		}
	}
	s.menu = components.NewMenu(items)
}

func (s *RoadmapScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading your roadmap...")
	}

	cw := components.ContentWidth(width)
	var sections []string

	if trail := s.trail(); trail != "" {
		sections = append(sections, theme.Hint.Render(trail))
	}

	switch n := s.nav.Current().(type) {
	case *roadmap.Decision:
		body := theme.Body.Render(n.Description) + "\n\n" + s.menu.View()
		sections = append(sections, components.Card(n.Title, body, cw))

	case *roadmap.Milestone:
		sections = append(sections, components.MilestoneCard(n.Title, milestoneBody(n), cw))
		if n.DeadEnd() {
			sections = append(sections, theme.Hint.Render("This is the end of the path. Press b to go back or r to start over."))
		} else {
			sections = append(sections, components.Card("Next steps", s.menu.View(), cw))
		}
	}

	if s.status != "" {
		sections = append(sections, theme.Good.Render(s.status))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n"))
}

// trail renders the choices made so far as a breadcrumb.
func (s *RoadmapScreen) trail() string {
	choices := s.nav.Choices()
	if len(choices) == 0 {
		return ""
	}
	labels := make([]string, len(choices))
	for i, c := range choices {
		labels[i] = roadmap.StepLabel(c)
	}
	return "Your path: " + strings.Join(labels, " › ")
}

func milestoneBody(m *roadmap.Milestone) string {
	var b strings.Builder
	b.WriteString(theme.Body.Render(m.Description) + "\n\n")
	b.WriteString(theme.Label.Render("Timeline ") + m.Details.Timeline + "\n\n")
	b.WriteString(theme.Label.Render("Key skills") + "\n" + components.Tags(m.Details.KeySkills) + "\n\n")
	b.WriteString(theme.Label.Render("Milestones") + "\n" + components.Bullets(m.Details.Milestones))
	return b.String()
}
