package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MagnunAVF/shortlinks/internal"
)

// TTL is how long an issued session stays valid.
const TTL = 7 * 24 * time.Hour

// ErrInvalidSession covers undecodable tokens, missing rows and expired
// rows alike; callers never learn which check failed.
var ErrInvalidSession = errors.New("invalid or expired session")

// Store is the durable-layer port for session rows.
type Store interface {
	Insert(ctx context.Context, s *internal.Session) error
	FindByID(ctx context.Context, id string) (*internal.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type Manager struct {
	store  Store
	secret []byte
	now    func() time.Time
}

func NewManager(store Store, secret []byte) *Manager {
	return &Manager{store: store, secret: secret, now: time.Now}
}

// Create inserts a session row for userID and returns the encoded token
// destined for the client cookie.
func (m *Manager) Create(ctx context.Context, userID string) (string, error) {
	now := m.now()
	s := &internal.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(TTL),
	}
	if err := m.store.Insert(ctx, s); err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	token, err := Encode(s.ID, m.secret)
	if err != nil {
		return "", fmt.Errorf("encode session token: %w", err)
	}
	return token, nil
}

// Resolve decodes the token and looks up its row. Expired rows are not
// deleted here: expiry is detected lazily and cleanup deferred.
func (m *Manager) Resolve(ctx context.Context, token string) (*internal.Session, error) {
	id, err := Decode(token, m.secret)
	if err != nil {
		return nil, ErrInvalidSession
	}
	s, err := m.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if s == nil || s.ExpiresAt.Before(m.now()) {
		return nil, ErrInvalidSession
	}
	return s, nil
}

// Revoke deletes the row behind the token, even when the session has
// already expired. Revoking an absent or undecodable session is a no-op.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	id, err := Decode(token, m.secret)
	if err != nil {
		return nil
	}
	if err := m.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
