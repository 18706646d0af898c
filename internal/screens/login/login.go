package login

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpilot/internal/auth"
	"github.com/abhisek/careerpilot/internal/router"
	"github.com/abhisek/careerpilot/internal/screen"
	"github.com/abhisek/careerpilot/internal/ui/components"
	"github.com/abhisek/careerpilot/internal/ui/layout"
	"github.com/abhisek/careerpilot/internal/ui/theme"
)

// Mode selects which form the screen shows.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
	ModeReset
)

func (m Mode) title() string {
	switch m {
	case ModeRegister:
		return "Create Account"
	case ModeReset:
		return "Reset Password"
	default:
		return "Sign In"
	}
}

func (m Mode) action() string {
	switch m {
	case ModeRegister:
		return "Create account"
	case ModeReset:
		return "Send reset link"
	default:
		return "Sign in"
	}
}

const (
	fieldName = iota
	fieldEmail
	fieldPassword
)

// fields lists the inputs each mode shows, in tab order.
var fields = map[Mode][]int{
	ModeLogin:    {fieldEmail, fieldPassword},
	ModeRegister: {fieldName, fieldEmail, fieldPassword},
	ModeReset:    {fieldEmail},
}

type resultMsg struct {
	mode  Mode
	email string
	err   error
}

// LoginScreen is the authentication gate. It drives the auth manager and
// renders the session's pending flag and last error.
type LoginScreen struct {
	auth       *auth.Manager
	onSignedIn func() screen.Screen

	mode    Mode
	inputs  []components.TextInput
	focus   int // index into fields[mode]
	spinner spinner.Model

	busy   bool
	cancel context.CancelFunc
	info   string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen. onSignedIn builds the screen shown after a
// successful sign-in or registration.
func New(mgr *auth.Manager, onSignedIn func() screen.Screen) *LoginScreen {
	s := &LoginScreen{
		auth:       mgr,
		onSignedIn: onSignedIn,
		inputs: []components.TextInput{
			fieldName:     components.NewTextInput("Display name", "Ada Lovelace", false, 64),
			fieldEmail:    components.NewTextInput("Email", "you@example.com", false, 254),
			fieldPassword: components.NewTextInput("Password", "at least 6 characters", true, 128),
		},
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent))),
	}
	return s
}

// Mode returns the form currently shown.
func (s *LoginScreen) Mode() Mode { return s.mode }

func (s *LoginScreen) Init() tea.Cmd {
	return s.setMode(ModeLogin)
}

func (s *LoginScreen) Title() string {
	return s.mode.title()
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	if s.busy {
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: s.mode.action()},
	}
	if s.mode == ModeLogin {
		hints = append(hints,
			layout.KeyHint{Key: "Ctrl+R", Description: "Register"},
			layout.KeyHint{Key: "Ctrl+F", Description: "Forgot password"},
		)
	} else {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back to sign in"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		return s, s.handleResult(msg)

	case spinner.TickMsg:
		if !s.busy {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *LoginScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if s.busy {
		if msg.String() == "esc" && s.cancel != nil {
			s.cancel()
		}
		return nil
	}

	switch msg.String() {
	case "tab", "down":
		return s.moveFocus(1)
	case "shift+tab", "up":
		return s.moveFocus(-1)
	case "enter":
		return s.submit()
	case "ctrl+r":
		return s.setMode(ModeRegister)
	case "ctrl+f":
		return s.setMode(ModeReset)
	case "esc":
		if s.mode != ModeLogin {
			return s.setMode(ModeLogin)
		}
		return nil
	}

	idx := fields[s.mode][s.focus]
	before := s.inputs[idx].Value()
	var cmd tea.Cmd
	s.inputs[idx], cmd = s.inputs[idx].Update(msg)
	if s.inputs[idx].Value() != before {
		s.info = ""
		if s.auth.Session().LastError != nil {
			s.auth.ClearError()
		}
	}
	return cmd
}

func (s *LoginScreen) setMode(m Mode) tea.Cmd {
	s.mode = m
	s.focus = 0
	s.info = ""
	s.inputs[fieldPassword].SetValue("")
	if s.auth.Session().LastError != nil {
		s.auth.ClearError()
	}
	return s.applyFocus()
}

func (s *LoginScreen) moveFocus(delta int) tea.Cmd {
	n := len(fields[s.mode])
	s.focus = (s.focus + delta + n) % n
	return s.applyFocus()
}

func (s *LoginScreen) applyFocus() tea.Cmd {
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
	return s.inputs[fields[s.mode][s.focus]].Focus()
}

func (s *LoginScreen) submit() tea.Cmd {
	mode := s.mode
	email := strings.TrimSpace(s.inputs[fieldEmail].Value())
	password := s.inputs[fieldPassword].Value()
	name := strings.TrimSpace(s.inputs[fieldName].Value())

	ctx, cancel := context.WithCancel(context.Background())
	s.busy = true
	s.cancel = cancel
	s.info = ""

	mgr := s.auth
	run := func() tea.Msg {
		defer cancel()
		var err error
		switch mode {
		case ModeRegister:
			err = mgr.Register(ctx, email, password, name)
		case ModeReset:
			err = mgr.ResetPassword(ctx, email)
		default:
			err = mgr.Login(ctx, email, password)
		}
		return resultMsg{mode: mode, email: email, err: err}
	}
	return tea.Batch(s.spinner.Tick, run)
}

func (s *LoginScreen) handleResult(msg resultMsg) tea.Cmd {
	s.busy = false
	s.cancel = nil

	switch {
	case errors.Is(msg.err, context.Canceled):
		s.info = "Cancelled."
		return nil
	case msg.err != nil:
		// The manager keeps the error on the session; View renders it.
		return nil
	}

	switch msg.mode {
	case ModeReset:
		cmd := s.setMode(ModeLogin)
		s.inputs[fieldEmail].SetValue(msg.email)
		s.info = fmt.Sprintf("Password reset link sent to %s.", msg.email)
		return cmd
	default:
		next := s.onSignedIn()
		return func() tea.Msg { return router.ResetScreenMsg{Screen: next} }
	}
}

func (s *LoginScreen) View(width, height int) string {
	sess := s.auth.Session()
	cw := min(components.ContentWidth(width), 56)

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(subtitle(s.mode)) + "\n\n")
	for i, idx := range fields[s.mode] {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(s.inputs[idx].View())
	}
	b.WriteString("\n\n")

	switch {
	case sess.Pending || s.busy:
		b.WriteString(s.spinner.View() + " " + theme.Hint.Render(pendingText(s.mode)))
	default:
		b.WriteString(components.NewButton(s.mode.action(), true).View())
	}

	if sess.LastError != nil {
		b.WriteString("\n\n" + theme.Bad.Render("✗ "+sess.LastError.Message))
	}
	if s.info != "" {
		b.WriteString("\n\n" + theme.Good.Render(s.info))
	}
	if s.mode == ModeLogin {
		b.WriteString("\n\n" + theme.Hint.Render(fmt.Sprintf(
			"Demo account: %s with any password of %d+ characters.",
			s.auth.Account(), auth.MinPasswordLength)))
	}

	card := components.Card(s.mode.title(), b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func subtitle(m Mode) string {
	switch m {
	case ModeRegister:
		return "Start planning your career path."
	case ModeReset:
		return "We'll email you a link to choose a new password."
	default:
		return "Welcome back."
	}
}

func pendingText(m Mode) string {
	switch m {
	case ModeRegister:
		return "Creating your account..."
	case ModeReset:
		return "Sending reset link..."
	default:
		return "Signing in..."
	}
}
