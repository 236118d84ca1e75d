package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/smileroute/smileroute-backend/pkg/errors"
	"github.com/smileroute/smileroute-backend/pkg/redis"
)

// sessionCache is the Redis surface the store needs.
type sessionCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SessionKey(sessionID string) string
}

// SessionStore persists quote sessions in Redis. Each save refreshes the
// TTL so active sessions stay alive and abandoned ones expire on their own.
type SessionStore struct {
	cache sessionCache
	ttl   time.Duration
}

// NewSessionStore builds a Redis-backed session store.
func NewSessionStore(cache sessionCache, ttl time.Duration) (*SessionStore, error) {
	if cache == nil {
		return nil, fmt.Errorf("cache is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be positive")
	}
	return &SessionStore{cache: cache, ttl: ttl}, nil
}

// Save serializes the session and writes it with a fresh TTL.
func (s *SessionStore) Save(ctx context.Context, session *Session) error {
	if session == nil {
		return fmt.Errorf("session is required")
	}
	session.UpdatedAt = time.Now().UTC()

	raw, err := json.Marshal(session)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding quote session")
	}
	if err := s.cache.Set(ctx, s.cache.SessionKey(session.ID.String()), string(raw), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving quote session")
	}
	return nil
}

// Load fetches a session by id. Missing or expired sessions yield a typed
// not-found error.
func (s *SessionStore) Load(ctx context.Context, id uuid.UUID) (*Session, error) {
	raw, err := s.cache.Get(ctx, s.cache.SessionKey(id.String()))
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote session not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading quote session")
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding quote session")
	}
	return &session, nil
}

// Delete removes a session.
func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.cache.Del(ctx, s.cache.SessionKey(id.String())); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting quote session")
	}
	return nil
}
