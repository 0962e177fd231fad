package history

import "context"

// Service contains business logic for dispatch history.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Append records a dispatch batch.
func (s *Service) Append(ctx context.Context, userID string, recs []Record) error {
	return s.Repo.Append(ctx, userID, recs)
}

// List returns the user's history, most recent first.
func (s *Service) List(ctx context.Context, userID string) ([]Record, error) {
	return s.Repo.List(ctx, userID)
}

// Clear wipes the user's history. The caller must have collected explicit
// confirmation; an unconfirmed clear is rejected before any storage access.
func (s *Service) Clear(ctx context.Context, userID string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	return s.Repo.Clear(ctx, userID)
}
