package wizard

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.Mutex
	data map[string]Session // userID/sessionID -> session
	busy map[string]bool
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Session),
		busy: make(map[string]bool),
	}
}

func sessionKey(userID, sessionID string) string {
	return userID + "/" + sessionID
}

func (r *MemoryRepo) Create(ctx context.Context, s Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[sessionKey(s.UserID, s.ID)] = s
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, userID, sessionID string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.data[sessionKey(userID, sessionID)]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s, nil
}

func (r *MemoryRepo) Update(ctx context.Context, s Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := sessionKey(s.UserID, s.ID)
	if _, ok := r.data[key]; !ok {
		return ErrNotFound
	}
	r.data[key] = s
	return nil
}

func (r *MemoryRepo) Acquire(ctx context.Context, userID, sessionID string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := sessionKey(userID, sessionID)
	s, ok := r.data[key]
	if !ok {
		return Session{}, ErrNotFound
	}
	if r.busy[key] {
		return Session{}, ErrBusy
	}
	r.busy[key] = true
	return s, nil
}

func (r *MemoryRepo) Release(ctx context.Context, userID, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.busy, sessionKey(userID, sessionID))
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
