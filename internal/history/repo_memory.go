package history

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Record // userID -> records, most recent first
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]Record)}
}

func (r *MemoryRepo) Append(ctx context.Context, userID string, recs []Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[userID] = append(prependOrder(recs), r.data[userID]...)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, userID string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Record, len(r.data[userID]))
	copy(out, r.data[userID])
	return out, nil
}

func (r *MemoryRepo) Clear(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, userID)
	return nil
}

// prependOrder reverses a dispatch batch so the last-sent email ends up
// first, keeping the whole list most-recent-first.
func prependOrder(recs []Record) []Record {
	out := make([]Record, len(recs))
	for i, rec := range recs {
		out[len(recs)-1-i] = rec
	}
	return out
}

var _ Repo = (*MemoryRepo)(nil)
