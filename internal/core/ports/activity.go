package ports

import (
	"context"
	"time"
)

// LoginActivity is a single successful-login observation.
type LoginActivity struct {
	UserID string
	At     time.Time
}

// ActivityRecorder accepts login activity without blocking the login path.
// Implementations may drop records under backpressure; activity is
// best-effort bookkeeping, never part of the authentication decision.
type ActivityRecorder interface {
	Enqueue(activity LoginActivity)
}

// ActivitySink persists a login activity record.
type ActivitySink interface {
	Record(ctx context.Context, activity LoginActivity) error
}

// PresenceTracker keeps a short-lived last-seen marker per identity.
type PresenceTracker interface {
	Touch(ctx context.Context, userID string, at time.Time) error
	LastSeen(ctx context.Context, userID string) (time.Time, bool, error)
}
