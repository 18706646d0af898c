package store

import (
	"context"
	"time"

	"github.com/abhisek/careerpilot/internal/roadmap"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Failed bool      // unsuccessful attempts only
}

// AuthEventData captures one completed authentication attempt.
type AuthEventData struct {
	Op           string
	Email        string
	Success      bool
	ErrorKind    string
	ErrorMessage string
	Timestamp    time.Time
}

// AuthEventRecord is a stored authentication attempt.
type AuthEventRecord struct {
	AuthEventData
	Sequence int64
}

// ActivityRepo records authentication activity.
type ActivityRepo interface {
	// AppendAuthEvent stores one attempt. A zero Timestamp means now.
	AppendAuthEvent(ctx context.Context, data AuthEventData) error

	// QueryAuthEvents returns attempts newest first.
	QueryAuthEvents(ctx context.Context, opts QueryOpts) ([]AuthEventRecord, error)

	// Clear deletes every recorded attempt.
	Clear(ctx context.Context) error
}

// ProgressData is the saved state of a roadmap walk.
type ProgressData struct {
	Version int           `json:"version"`
	Roadmap roadmap.State `json:"roadmap"`
}

// Progress is a point-in-time capture of roadmap progress.
type Progress struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      ProgressData
}

// ProgressRepo manages roadmap progress captures.
type ProgressRepo interface {
	// Save stores a new capture and fills in its ID and Sequence.
	Save(ctx context.Context, p *Progress) error

	// Latest returns the most recent capture, or nil if none exist.
	Latest(ctx context.Context) (*Progress, error)

	// Prune deletes all but the keep most recent captures.
	Prune(ctx context.Context, keep int) error

	// Clear deletes every capture.
	Clear(ctx context.Context) error
}
