package activity

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpilot/internal/router"
	"github.com/abhisek/careerpilot/internal/screen"
	"github.com/abhisek/careerpilot/internal/store"
	"github.com/abhisek/careerpilot/internal/ui/layout"
	"github.com/abhisek/careerpilot/internal/ui/theme"
)

// pageSize is how many attempts the screen loads.
const pageSize = 50

type activityLoadedMsg struct {
	Events []store.AuthEventRecord
	Err    error
}

// ActivityScreen lists recent sign-in activity.
type ActivityScreen struct {
	repo     store.ActivityRepo
	events   []store.AuthEventRecord
	selected int
	expanded map[int64]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ActivityScreen)(nil)
var _ screen.KeyHintProvider = (*ActivityScreen)(nil)

// New creates a new ActivityScreen.
func New(repo store.ActivityRepo) *ActivityScreen {
	return &ActivityScreen{
		repo:     repo,
		expanded: make(map[int64]bool),
	}
}

func (s *ActivityScreen) Init() tea.Cmd {
	return s.load
}

func (s *ActivityScreen) load() tea.Msg {
	events, err := s.repo.QueryAuthEvents(context.Background(), store.QueryOpts{Limit: pageSize})
	return activityLoadedMsg{Events: events, Err: err}
}

func (s *ActivityScreen) Title() string {
	return "Activity"
}

func (s *ActivityScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "r", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

// Events returns the loaded attempts, newest first.
func (s *ActivityScreen) Events() []store.AuthEventRecord { return s.events }

func (s *ActivityScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case activityLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.events = msg.Events
		s.selected = min(s.selected, max(len(s.events)-1, 0))
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.events) {
				seq := s.events[s.selected].Sequence
				s.expanded[seq] = !s.expanded[seq]
			}
		case "r":
			s.loaded = false
			return s, s.load
		}
	}
	return s, nil
}

func (s *ActivityScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading activity...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sign-in activity yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, ev := range s.events {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		outcome := theme.Good.Render("ok")
		if !ev.Success {
			outcome = theme.Bad.Render("failed")
		}

		line := fmt.Sprintf("%s%s  %-15s %-28s ",
			prefix, ev.Timestamp.Local().Format("Jan 02 15:04:05"), opLabel(ev.Op), ev.Email)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)+outcome))
		b.WriteString("\n")

		if s.expanded[ev.Sequence] {
			detail := "    Completed without error"
			if !ev.Success {
				detail = fmt.Sprintf("    %s: %s", ev.ErrorKind, ev.ErrorMessage)
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func opLabel(op string) string {
	switch op {
	case "login":
		return "Sign in"
	case "register":
		return "Create account"
	case "logout":
		return "Sign out"
	case "reset_password":
		return "Password reset"
	default:
		return op
	}
}
