package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/okami-ct/okami-dashboard/internal/models"
	appErrors "github.com/okami-ct/okami-dashboard/pkg/errors"
)

// SessionRepository stores dashboard sessions in Redis, or in process memory when
// no Redis client is configured.
type SessionRepository struct {
	client *redis.Client
	prefix string
	logger *zap.Logger

	mu     sync.Mutex
	memory map[string]memorySession
	now    func() time.Time
}

type memorySession struct {
	session   models.Session
	expiresAt time.Time
}

// NewSessionRepository constructs a session repository. A nil client selects the memory backend.
func NewSessionRepository(client *redis.Client, prefix string, logger *zap.Logger) *SessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionRepository{
		client: client,
		prefix: prefix,
		logger: logger,
		memory: make(map[string]memorySession),
		now:    time.Now,
	}
}

func (r *SessionRepository) key(id string) string {
	return r.prefix + id
}

// Get loads a session by id.
func (r *SessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	if r.client == nil {
		return r.getMemory(id)
	}

	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get session %s: %w", id, err)
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		r.logger.Warn("discarding unreadable session", zap.String("session_id", id), zap.Error(err))
		_ = r.client.Del(ctx, r.key(id)).Err()
		return nil, appErrors.ErrSessionNotFound
	}
	return &session, nil
}

// Save stores the session for ttl.
func (r *SessionRepository) Save(ctx context.Context, session *models.Session, ttl time.Duration) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("session id is required")
	}
	if r.client == nil {
		r.saveMemory(session, ttl)
		return nil
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ID, err)
	}
	if err := r.client.Set(ctx, r.key(session.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session %s: %w", session.ID, err)
	}
	return nil
}

// Delete removes a session. Missing sessions are not an error.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if r.client == nil {
		r.mu.Lock()
		delete(r.memory, id)
		r.mu.Unlock()
		return nil
	}
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("redis delete session %s: %w", id, err)
	}
	return nil
}

// Ping checks the Redis connection. The memory backend is always ready.
func (r *SessionRepository) Ping(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection if present.
func (r *SessionRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

func (r *SessionRepository) getMemory(id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.memory[id]
	if !ok {
		return nil, appErrors.ErrSessionNotFound
	}
	if !entry.expiresAt.IsZero() && r.now().After(entry.expiresAt) {
		delete(r.memory, id)
		return nil, appErrors.ErrSessionNotFound
	}
	session := entry.session
	return &session, nil
}

func (r *SessionRepository) saveMemory(session *models.Session, ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := memorySession{session: *session}
	if ttl > 0 {
		entry.expiresAt = r.now().Add(ttl)
	}
	r.memory[session.ID] = entry
}
