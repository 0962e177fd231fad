package history

import "context"

// Repo persists dispatch history per user.
type Repo interface {
	// Append adds records at the head of the user's history (most recent
	// first) and persists the result.
	Append(ctx context.Context, userID string, recs []Record) error
	// List returns the user's history, most recent first.
	List(ctx context.Context, userID string) ([]Record, error)
	// Clear removes all of the user's history.
	Clear(ctx context.Context, userID string) error
}
