package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// sessionTTL bounds abandoned sessions; every write refreshes it.
	sessionTTL = 24 * time.Hour
	// busyTTL is a backstop so a crashed action cannot wedge a session.
	busyTTL = 5 * time.Minute
)

// RedisRepo implements Repo on Redis, for deployments where the API runs
// more than one replica. The busy guard is a SETNX lock keyed next to the
// session.
type RedisRepo struct {
	client *redis.Client
}

// NewRedisRepo connects to Redis and verifies connectivity.
func NewRedisRepo(ctx context.Context, addr string) (*RedisRepo, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisRepo{client: client}, nil
}

func redisKey(userID, sessionID string) string {
	return "wizard:session:" + userID + ":" + sessionID
}

func (r *RedisRepo) Create(ctx context.Context, s Session) error {
	return r.write(ctx, s)
}

func (r *RedisRepo) Get(ctx context.Context, userID, sessionID string) (Session, error) {
	raw, err := r.client.Get(ctx, redisKey(userID, sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("redis get: %w", err)
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

func (r *RedisRepo) Update(ctx context.Context, s Session) error {
	if _, err := r.Get(ctx, s.UserID, s.ID); err != nil {
		return err
	}
	return r.write(ctx, s)
}

func (r *RedisRepo) Acquire(ctx context.Context, userID, sessionID string) (Session, error) {
	s, err := r.Get(ctx, userID, sessionID)
	if err != nil {
		return Session{}, err
	}
	ok, err := r.client.SetNX(ctx, redisKey(userID, sessionID)+":busy", "1", busyTTL).Result()
	if err != nil {
		return Session{}, fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return Session{}, ErrBusy
	}
	return s, nil
}

func (r *RedisRepo) Release(ctx context.Context, userID, sessionID string) error {
	return r.client.Del(ctx, redisKey(userID, sessionID)+":busy").Err()
}

func (r *RedisRepo) write(ctx context.Context, s Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, redisKey(s.UserID, s.ID), raw, sessionTTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

var _ Repo = (*RedisRepo)(nil)
