package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerpilot/internal/auth"
	"github.com/abhisek/careerpilot/internal/catalog"
	"github.com/abhisek/careerpilot/internal/roadmap"
	"github.com/abhisek/careerpilot/internal/screens/activity"
	"github.com/abhisek/careerpilot/internal/screens/home"
	"github.com/abhisek/careerpilot/internal/screens/login"
	"github.com/abhisek/careerpilot/internal/screens/notice"
	"github.com/abhisek/careerpilot/internal/screens/pages"
	"github.com/abhisek/careerpilot/internal/screens/welcome"
	"github.com/abhisek/careerpilot/internal/store"
)

// cmdTimeout bounds how long a command may take before its message is
// dropped. Timer-driven commands (spinner and cursor blinks, splash ticks)
// never make it, which keeps the driver from looping on animations.
const cmdTimeout = 20 * time.Millisecond

func runCmd(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdTimeout):
		return nil, false
	}
}

// drive delivers msgs to m and keeps delivering whatever the resulting
// commands produce until nothing is left.
func drive(t *testing.T, m AppModel, msgs ...tea.Msg) AppModel {
	t.Helper()
	queue := append([]tea.Msg(nil), msgs...)
	enqueue := func(cmd tea.Cmd) {
		if cmd == nil {
			return
		}
		if msg, ok := runCmd(cmd); ok && msg != nil {
			queue = append(queue, msg)
		}
	}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 500, "model did not settle")
		msg := queue[0]
		queue = queue[1:]
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				enqueue(c)
			}
			continue
		}
		next, cmd := m.Update(msg)
		m = next.(AppModel)
		enqueue(cmd)
	}
	return m
}

func typed(text string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(text))
	for _, r := range text {
		msgs = append(msgs, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return msgs
}

var (
	tab   = tea.KeyPressMsg{Code: tea.KeyTab}
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	esc   = tea.KeyPressMsg{Code: tea.KeyEscape}
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
)

type testEnv struct {
	deps  Deps
	store *store.Store
}

func newTestEnv(t *testing.T, skipSplash bool) testEnv {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	opts := append(AuthOptions(st.ActivityRepo()), auth.WithDelay(0))
	return testEnv{
		store: st,
		deps: Deps{
			Auth:       auth.NewManager(opts...),
			Catalog:    catalog.MustDefault(),
			Roadmap:    roadmap.MustDefault(),
			Activity:   st.ActivityRepo(),
			Progress:   st.ProgressRepo(),
			SkipSplash: skipSplash,
		},
	}
}

func start(t *testing.T, deps Deps) AppModel {
	t.Helper()
	m := newAppModel(deps)
	m = drive(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if cmd := m.Init(); cmd != nil {
		if msg, ok := runCmd(cmd); ok && msg != nil {
			m = drive(t, m, msg)
		}
	}
	return m
}

func signIn(t *testing.T, m AppModel) AppModel {
	t.Helper()
	msgs := typed("test@test.com")
	msgs = append(msgs, tab)
	msgs = append(msgs, typed("secret1")...)
	msgs = append(msgs, enter)
	return drive(t, m, msgs...)
}

func TestStartsAtSplash(t *testing.T) {
	env := newTestEnv(t, false)
	m := start(t, env.deps)
	assert.IsType(t, &welcome.WelcomeScreen{}, m.router.Active())

	m = drive(t, m, tea.KeyPressMsg{Code: 'x', Text: "x"})
	assert.IsType(t, &login.LoginScreen{}, m.router.Active())
	assert.Equal(t, 1, m.router.Depth())
}

func TestSignInFlow(t *testing.T) {
	env := newTestEnv(t, true)
	m := start(t, env.deps)
	require.IsType(t, &login.LoginScreen{}, m.router.Active())
	assert.Contains(t, m.render(), "not signed in")

	m = signIn(t, m)
	require.IsType(t, &home.HomeScreen{}, m.router.Active())
	assert.Equal(t, 1, m.router.Depth())
	assert.True(t, env.deps.Auth.Session().Authenticated)
	assert.Contains(t, m.render(), "● test")

	events, err := env.deps.Activity.QueryAuthEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "login", events[0].Op)
	assert.True(t, events[0].Success)
}

func TestFailedSignInIsRecorded(t *testing.T) {
	env := newTestEnv(t, true)
	m := start(t, env.deps)

	msgs := typed("nobody@test.com")
	msgs = append(msgs, tab)
	msgs = append(msgs, typed("secret1")...)
	msgs = append(msgs, enter)
	m = drive(t, m, msgs...)

	assert.IsType(t, &login.LoginScreen{}, m.router.Active())
	assert.Contains(t, m.render(), "User not found")

	events, err := env.deps.Activity.QueryAuthEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Success)
	assert.Equal(t, string(auth.KindUserNotFound), events[0].ErrorKind)
}

func TestHomeDestinations(t *testing.T) {
	env := newTestEnv(t, true)
	m := signIn(t, start(t, env.deps))

	// Career Mapping
	m = drive(t, m, enter)
	assert.IsType(t, &pages.CareersScreen{}, m.router.Active())
	assert.Equal(t, 2, m.router.Depth())
	assert.Contains(t, m.render(), "Esc")

	m = drive(t, m, esc)
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())

	// Activity is the seventh entry.
	for range 6 {
		m = drive(t, m, down)
	}
	m = drive(t, m, enter)
	scr, ok := m.router.Active().(*activity.ActivityScreen)
	require.True(t, ok, "got %T", m.router.Active())
	assert.Len(t, scr.Events(), 1)
}

func TestEscAtRootStays(t *testing.T) {
	env := newTestEnv(t, true)
	m := signIn(t, start(t, env.deps))
	m = drive(t, m, esc)
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())
	assert.Equal(t, 1, m.router.Depth())
}

func TestSignOutReturnsToLogin(t *testing.T) {
	env := newTestEnv(t, true)
	m := signIn(t, start(t, env.deps))

	for range 7 {
		m = drive(t, m, down)
	}
	m = drive(t, m, enter)

	assert.IsType(t, &login.LoginScreen{}, m.router.Active())
	assert.False(t, env.deps.Auth.Session().Authenticated)

	events, err := env.deps.Activity.QueryAuthEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "logout", events[0].Op)
}

func TestActivityWithoutStore(t *testing.T) {
	env := newTestEnv(t, true)
	env.deps.Activity = nil
	m := signIn(t, start(t, env.deps))

	for range 6 {
		m = drive(t, m, down)
	}
	m = drive(t, m, enter)
	assert.IsType(t, &notice.NoticeScreen{}, m.router.Active())
	assert.Contains(t, m.render(), "database is unavailable")

	m = drive(t, m, esc)
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())
}

func TestCtrlCQuits(t *testing.T) {
	env := newTestEnv(t, true)
	m := start(t, env.deps)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFooterHints(t *testing.T) {
	env := newTestEnv(t, true)
	m := start(t, env.deps)

	count := 0
	for _, h := range m.footerHints() {
		if h == quitHint {
			count++
		}
	}
	assert.Equal(t, 1, count, "login hints already carry the quit key")

	m = signIn(t, m)
	m = drive(t, m, enter)
	hints := m.footerHints()
	assert.Equal(t, quitHint, hints[len(hints)-1])
}

func TestRenderBeforeResize(t *testing.T) {
	env := newTestEnv(t, true)
	m := newAppModel(env.deps)
	assert.Empty(t, m.render())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 10, Height: 5})
	assert.NotEmpty(t, next.(AppModel).render())
}
