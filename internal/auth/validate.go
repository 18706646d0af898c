package auth

import "regexp"

// MinPasswordLength is the shortest password the mock provider accepts.
const MinPasswordLength = 6

// emailPattern is the loose shape check the login page applies: something,
// an @, something, a dot, something. No whitespace anywhere.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether email has a plausible address shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func validateLogin(email, password, account string) *Error {
	if email == "" || password == "" {
		return newError(ErrMissingCredentials)
	}
	if len(password) < MinPasswordLength {
		return newError(ErrInvalidCredentials)
	}
	if email != account {
		return newError(ErrUserNotFound)
	}
	return nil
}

func validateRegister(email, password, name, account string) *Error {
	if email == "" || password == "" || name == "" {
		return newError(ErrMissingFields)
	}
	if len(password) < MinPasswordLength {
		return newError(ErrWeakPassword)
	}
	if !ValidEmail(email) {
		return newError(ErrInvalidEmail)
	}
	if email == account {
		return newError(ErrEmailInUse)
	}
	return nil
}

func validateReset(email, account string) *Error {
	if email == "" {
		return newError(ErrMissingEmail)
	}
	if !ValidEmail(email) {
		return newError(ErrInvalidEmail)
	}
	if email != account {
		return withMessage(ErrUserNotFound, "No account found with this email")
	}
	return nil
}
