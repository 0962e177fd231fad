package wizard

import "context"

// Repo persists wizard sessions and owns the per-session busy guard.
type Repo interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, userID, sessionID string) (Session, error)
	Update(ctx context.Context, s Session) error
	// Acquire marks the session busy and returns its current state; a
	// session that is already busy fails with ErrBusy. Every Acquire must
	// be paired with a Release.
	Acquire(ctx context.Context, userID, sessionID string) (Session, error)
	Release(ctx context.Context, userID, sessionID string) error
}
