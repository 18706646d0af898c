package auth

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultAccount is the single account the mock provider knows about.
const DefaultAccount = "test@test.com"

// DefaultDelay is the simulated network latency of one operation.
const DefaultDelay = time.Second

// Op names an authentication operation.
type Op string

const (
	OpLogin         Op = "login"
	OpRegister      Op = "register"
	OpLogout        Op = "logout"
	OpResetPassword Op = "reset_password"
)

// Attempt describes one completed operation, successful or not.
type Attempt struct {
	Op    Op
	Email string
	At    time.Time
	Err   error
}

// Recorder receives every completed attempt.
type Recorder interface {
	RecordAttempt(ctx context.Context, a Attempt) error
}

// Option configures a Manager.
type Option func(*Manager)

// WithDelay sets the simulated latency unit. Logout waits half of it.
// A zero delay resolves operations without waiting.
func WithDelay(d time.Duration) Option {
	return func(m *Manager) { m.delay = d }
}

// WithClock sets the source of timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithAccount sets the accepted account email.
func WithAccount(email string) Option {
	return func(m *Manager) { m.account = email }
}

// WithRecorder attaches an attempt recorder.
func WithRecorder(r Recorder) Option {
	return func(m *Manager) { m.recorder = r }
}

// WithObserver registers a callback invoked with a fresh snapshot after
// every state change.
func WithObserver(fn func(Session)) Option {
	return func(m *Manager) { m.observer = fn }
}

// Manager simulates an authentication provider. It holds the only copy of
// the session and mutates it through its operations.
//
// Calls are not coordinated with each other: each operation runs on its own
// and whichever finishes last wins. The mutex only keeps the struct
// consistent when operations run on separate goroutines.
type Manager struct {
	mu      sync.Mutex
	session Session

	delay    time.Duration
	now      func() time.Time
	account  string
	recorder Recorder
	observer func(Session)
}

// NewManager creates an unauthenticated Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		delay:   DefaultDelay,
		now:     time.Now,
		account: DefaultAccount,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Session returns a snapshot of the current session.
func (m *Manager) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.clone()
}

// Account returns the accepted account email.
func (m *Manager) Account() string {
	return m.account
}

// ClearError drops the last error, leaving the rest of the session alone.
func (m *Manager) ClearError() {
	m.update(func(s *Session) { s.LastError = nil })
}

// Login authenticates the accepted account with any password of at least
// MinPasswordLength characters.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.begin()
	if err := m.wait(ctx, m.delay); err != nil {
		return m.abort(ctx, OpLogin, email, err)
	}

	if e := validateLogin(email, password, m.account); e != nil {
		return m.fail(ctx, OpLogin, email, e)
	}

	now := m.now()
	user := &User{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: DisplayNameFromEmail(email),
		LastLogin:   &now,
	}
	m.finish(ctx, OpLogin, email, func(s *Session) {
		s.Authenticated = true
		s.User = user
	})
	return nil
}

// Register creates a new session for any well-formed email other than the
// accepted account, which is treated as already taken.
func (m *Manager) Register(ctx context.Context, email, password, name string) error {
	m.begin()
	if err := m.wait(ctx, m.delay); err != nil {
		return m.abort(ctx, OpRegister, email, err)
	}

	if e := validateRegister(email, password, name, m.account); e != nil {
		return m.fail(ctx, OpRegister, email, e)
	}

	now := m.now()
	created, lastLogin := now, now
	user := &User{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: name,
		CreatedAt:   &created,
		LastLogin:   &lastLogin,
	}
	m.finish(ctx, OpRegister, email, func(s *Session) {
		s.Authenticated = true
		s.User = user
	})
	return nil
}

// Logout ends the session after half a latency unit. It only fails when
// ctx is done before the delay elapses, in which case the session is kept.
func (m *Manager) Logout(ctx context.Context) error {
	email := ""
	if s := m.Session(); s.User != nil {
		email = s.User.Email
	}

	m.begin()
	if err := m.wait(ctx, m.delay/2); err != nil {
		e := newError(ErrLogoutFailed)
		e.Err = err
		return m.fail(ctx, OpLogout, email, e)
	}

	m.finish(ctx, OpLogout, email, func(s *Session) {
		s.Authenticated = false
		s.User = nil
	})
	return nil
}

// ResetPassword pretends to send a reset email to the accepted account.
// It never changes the session beyond the pending and error fields.
func (m *Manager) ResetPassword(ctx context.Context, email string) error {
	m.begin()
	if err := m.wait(ctx, m.delay); err != nil {
		return m.abort(ctx, OpResetPassword, email, err)
	}

	if e := validateReset(email, m.account); e != nil {
		return m.fail(ctx, OpResetPassword, email, e)
	}

	m.finish(ctx, OpResetPassword, email, nil)
	return nil
}

// begin marks an operation in flight and clears the previous error.
func (m *Manager) begin() {
	m.update(func(s *Session) {
		s.Pending = true
		s.LastError = nil
	})
}

// finish applies a successful outcome.
func (m *Manager) finish(ctx context.Context, op Op, email string, apply func(*Session)) {
	m.update(func(s *Session) {
		if apply != nil {
			apply(s)
		}
		s.Pending = false
	})
	m.record(ctx, op, email, nil)
}

// fail stores e as the last error and returns it.
func (m *Manager) fail(ctx context.Context, op Op, email string, e *Error) error {
	m.update(func(s *Session) {
		s.Pending = false
		s.LastError = newError(e)
	})
	m.record(ctx, op, email, e)
	return e
}

// abort handles a context that ended during the simulated delay.
func (m *Manager) abort(ctx context.Context, op Op, email string, err error) error {
	m.update(func(s *Session) { s.Pending = false })
	m.record(context.WithoutCancel(ctx), op, email, err)
	return err
}

func (m *Manager) update(fn func(*Session)) {
	m.mu.Lock()
	fn(&m.session)
	snap := m.session.clone()
	m.mu.Unlock()

	if m.observer != nil {
		m.observer(snap)
	}
}

func (m *Manager) record(ctx context.Context, op Op, email string, err error) {
	if m.recorder == nil {
		return
	}
	a := Attempt{Op: op, Email: email, At: m.now(), Err: err}
	if recErr := m.recorder.RecordAttempt(context.WithoutCancel(ctx), a); recErr != nil {
		log.Printf("warning: failed to record %s attempt: %v", op, recErr)
	}
}

// wait blocks for d or until ctx is done.
func (m *Manager) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
