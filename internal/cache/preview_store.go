package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tesseract-hub/storefront-service/internal/models"
)

const (
	// Redis key prefix for preview sessions
	PreviewKeyPrefix = "storefront:preview:"
)

// PreviewSession is a short-lived server-side theme override. The browser
// only carries the opaque token; the candidate theme never leaves the
// server until resolution time.
type PreviewSession struct {
	Token     string                `json:"token"`
	TenantID  uuid.UUID             `json:"tenant_id"`
	Theme     *models.ThemeDocument `json:"theme"`
	CreatedBy *uuid.UUID            `json:"created_by,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	ExpiresAt time.Time             `json:"expires_at"`
}

// PreviewStore manages preview sessions in Redis with an in-memory
// fallback for environments without Redis.
type PreviewStore struct {
	redisClient  *redis.Client
	redisEnabled bool
	ttl          time.Duration

	mu       sync.RWMutex
	sessions map[string]*PreviewSession
}

// NewPreviewStore creates a new preview store
func NewPreviewStore(redisClient *redis.Client, ttl time.Duration) *PreviewStore {
	return &PreviewStore{
		redisClient:  redisClient,
		redisEnabled: redisClient != nil,
		ttl:          ttl,
		sessions:     make(map[string]*PreviewSession),
	}
}

// Create stores a new preview session and returns its opaque token.
func (s *PreviewStore) Create(ctx context.Context, tenantID uuid.UUID, theme *models.ThemeDocument, createdBy *uuid.UUID) (*PreviewSession, error) {
	now := time.Now()
	session := &PreviewSession{
		Token:     uuid.New().String(),
		TenantID:  tenantID,
		Theme:     theme,
		CreatedBy: createdBy,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if s.redisEnabled {
		data, err := json.Marshal(session)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal preview session: %w", err)
		}
		if err := s.redisClient.Set(ctx, PreviewKeyPrefix+session.Token, data, s.ttl).Err(); err != nil {
			return nil, fmt.Errorf("failed to store preview session: %w", err)
		}
		return session, nil
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()
	return session, nil
}

// Get returns the preview session for the token, or (nil, false) when the
// token is unknown, expired, or belongs to a different tenant.
func (s *PreviewStore) Get(ctx context.Context, tenantID uuid.UUID, token string) (*PreviewSession, bool) {
	if token == "" {
		return nil, false
	}

	var session *PreviewSession

	if s.redisEnabled {
		data, err := s.redisClient.Get(ctx, PreviewKeyPrefix+token).Result()
		if err != nil {
			return nil, false
		}
		var decoded PreviewSession
		if err := json.Unmarshal([]byte(data), &decoded); err != nil {
			return nil, false
		}
		session = &decoded
	} else {
		s.mu.RLock()
		session = s.sessions[token]
		s.mu.RUnlock()
		if session != nil && time.Now().After(session.ExpiresAt) {
			s.Delete(ctx, token)
			session = nil
		}
	}

	if session == nil || session.TenantID != tenantID {
		return nil, false
	}
	return session, true
}

// Delete ends a preview session.
func (s *PreviewStore) Delete(ctx context.Context, token string) {
	if s.redisEnabled {
		s.redisClient.Del(ctx, PreviewKeyPrefix+token)
		return
	}
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}
