package app

import (
	"context"
	"errors"
	"log"

	"github.com/abhisek/careerpilot/internal/auth"
	"github.com/abhisek/careerpilot/internal/store"
)

// KindCancelled marks an attempt abandoned before it resolved.
const KindCancelled = "CANCELLED"

// activityRecorder stores auth attempts in the activity log.
type activityRecorder struct {
	repo store.ActivityRepo
}

// NewRecorder returns an auth.Recorder backed by repo.
func NewRecorder(repo store.ActivityRepo) auth.Recorder {
	return activityRecorder{repo: repo}
}

func (r activityRecorder) RecordAttempt(ctx context.Context, a auth.Attempt) error {
	data := store.AuthEventData{
		Op:        string(a.Op),
		Email:     a.Email,
		Success:   a.Err == nil,
		Timestamp: a.At,
	}

	var ae *auth.Error
	switch {
	case a.Err == nil:
	case errors.As(a.Err, &ae):
		data.ErrorKind = string(ae.Kind)
		data.ErrorMessage = ae.Message
	case errors.Is(a.Err, context.Canceled), errors.Is(a.Err, context.DeadlineExceeded):
		data.ErrorKind = KindCancelled
		data.ErrorMessage = a.Err.Error()
	default:
		data.ErrorKind = "UNKNOWN"
		data.ErrorMessage = a.Err.Error()
	}

	return r.repo.AppendAuthEvent(ctx, data)
}

// AuthOptions returns the manager options shared by every entry point:
// session transitions are logged, and attempts are recorded when an
// activity repo is available.
func AuthOptions(activity store.ActivityRepo) []auth.Option {
	opts := []auth.Option{auth.WithObserver(logSession)}
	if activity != nil {
		opts = append(opts, auth.WithRecorder(NewRecorder(activity)))
	}
	return opts
}

func logSession(s auth.Session) {
	user := "-"
	if s.User != nil {
		user = s.User.Email
	}
	errKind := "-"
	if s.LastError != nil {
		errKind = string(s.LastError.Kind)
	}
	log.Printf("session: authenticated=%t pending=%t user=%s error=%s", s.Authenticated, s.Pending, user, errKind)
}
