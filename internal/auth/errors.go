package auth

// Kind identifies the category of an authentication failure. The value is
// the stable code shown to callers.
type Kind string

const (
	KindMissingCredentials Kind = "AUTH_MISSING_CREDENTIALS"
	KindInvalidCredentials Kind = "AUTH_INVALID_CREDENTIALS"
	KindUserNotFound       Kind = "AUTH_USER_NOT_FOUND"
	KindMissingFields      Kind = "AUTH_MISSING_FIELDS"
	KindWeakPassword       Kind = "AUTH_WEAK_PASSWORD"
	KindInvalidEmail       Kind = "AUTH_INVALID_EMAIL"
	KindEmailInUse         Kind = "AUTH_EMAIL_IN_USE"
	KindMissingEmail       Kind = "AUTH_MISSING_EMAIL"
	KindLogoutFailed       Kind = "AUTH_LOGOUT_FAILED"
)

// Error is a recoverable authentication failure. Two errors match under
// errors.Is when their kinds are equal, so callers compare against the
// sentinel values below.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrMissingCredentials = &Error{Kind: KindMissingCredentials, Message: "Email and password are required"}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "Invalid credentials"}
	ErrUserNotFound       = &Error{Kind: KindUserNotFound, Message: "User not found"}
	ErrMissingFields      = &Error{Kind: KindMissingFields, Message: "All fields are required"}
	ErrWeakPassword       = &Error{Kind: KindWeakPassword, Message: "Password must be at least 6 characters"}
	ErrInvalidEmail       = &Error{Kind: KindInvalidEmail, Message: "Invalid email format"}
	ErrEmailInUse         = &Error{Kind: KindEmailInUse, Message: "Email already exists"}
	ErrMissingEmail       = &Error{Kind: KindMissingEmail, Message: "Email is required"}
	ErrLogoutFailed       = &Error{Kind: KindLogoutFailed, Message: "Logout failed"}
)

// newError returns a fresh copy of a sentinel so the session never aliases
// the package-level value.
func newError(sentinel *Error) *Error {
	e := *sentinel
	return &e
}

// withMessage returns a copy of sentinel carrying a different message.
func withMessage(sentinel *Error, msg string) *Error {
	e := newError(sentinel)
	e.Message = msg
	return e
}
