package home

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpilot/internal/auth"
	"github.com/abhisek/careerpilot/internal/router"
	"github.com/abhisek/careerpilot/internal/screen"
	"github.com/abhisek/careerpilot/internal/ui/components"
	"github.com/abhisek/careerpilot/internal/ui/theme"
)

// Destination is one entry of the home menu.
type Destination struct {
	Label string
	Hint  string
	Open  func() screen.Screen
}

type signedOutMsg struct {
	err error
}

// HomeScreen is the main menu shown after sign-in.
type HomeScreen struct {
	auth        *auth.Manager
	onSignedOut func() screen.Screen

	menu    components.Menu
	spinner spinner.Model
	busy    bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen listing dests followed by a Sign Out entry.
// onSignedOut builds the screen shown once the session has ended.
func New(mgr *auth.Manager, dests []Destination, onSignedOut func() screen.Screen) *HomeScreen {
	h := &HomeScreen{
		auth:        mgr,
		onSignedOut: onSignedOut,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent))),
	}

	items := make([]components.MenuItem, 0, len(dests)+1)
	for _, d := range dests {
		open := d.Open
		items = append(items, components.MenuItem{
			Label: d.Label,
			Hint:  d.Hint,
			Action: func() tea.Cmd {
				next := open()
				return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			},
		})
	}
	items = append(items, components.MenuItem{Label: "Sign Out", Action: h.signOut})

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) signOut() tea.Cmd {
	h.busy = true
	mgr := h.auth
	return tea.Batch(h.spinner.Tick, func() tea.Msg {
		return signedOutMsg{err: mgr.Logout(context.Background())}
	})
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case signedOutMsg:
		h.busy = false
		if msg.err != nil {
			return h, nil
		}
		next := h.onSignedOut()
		return h, func() tea.Msg { return router.ResetScreenMsg{Screen: next} }

	case spinner.TickMsg:
		if !h.busy {
			return h, nil
		}
		var cmd tea.Cmd
		h.spinner, cmd = h.spinner.Update(msg)
		return h, cmd
	}

	if h.busy {
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	sess := h.auth.Session()
	cw := min(components.ContentWidth(width), 60)

	name := "there"
	if sess.User != nil {
		name = sess.User.DisplayName
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Where do you want to go next?") + "\n\n")
	b.WriteString(h.menu.View())

	switch {
	case sess.Pending || h.busy:
		b.WriteString("\n" + h.spinner.View() + " " + theme.Hint.Render("Signing out..."))
	case sess.LastError != nil:
		b.WriteString("\n" + theme.Bad.Render("✗ "+sess.LastError.Message))
	}

	card := components.Card(fmt.Sprintf("Hi, %s", name), b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
