package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MagnunAVF/shortlinks/internal"
)

type mockStore struct {
	insertFn     func(ctx context.Context, s *internal.Session) error
	findByIDFn   func(ctx context.Context, id string) (*internal.Session, error)
	deleteByIDFn func(ctx context.Context, id string) error
}

func (m *mockStore) Insert(ctx context.Context, s *internal.Session) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, s)
	}
	return nil
}

func (m *mockStore) FindByID(ctx context.Context, id string) (*internal.Session, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockStore) DeleteByID(ctx context.Context, id string) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil
}

func TestManagerCreateResolve(t *testing.T) {
	ctx := context.Background()
	rows := make(map[string]*internal.Session)
	store := &mockStore{
		insertFn: func(ctx context.Context, s *internal.Session) error {
			rows[s.ID] = s
			return nil
		},
		findByIDFn: func(ctx context.Context, id string) (*internal.Session, error) {
			return rows[id], nil
		},
	}
	m := NewManager(store, testSecret)

	token, err := m.Create(ctx, "user-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	s, err := m.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", s.UserID)
	}
	if got := s.ExpiresAt.Sub(s.CreatedAt); got != TTL {
		t.Errorf("session TTL = %v, want %v", got, TTL)
	}
}

func TestManagerResolveExpired(t *testing.T) {
	ctx := context.Background()
	var deleted bool
	store := &mockStore{
		findByIDFn: func(ctx context.Context, id string) (*internal.Session, error) {
			return &internal.Session{
				ID:        id,
				UserID:    "user-1",
				ExpiresAt: time.Now().Add(-time.Minute),
			}, nil
		},
		deleteByIDFn: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	m := NewManager(store, testSecret)

	token, err := Encode("some-session", testSecret)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Resolve(ctx, token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("Resolve expired: err = %v, want ErrInvalidSession", err)
	}
	if deleted {
		t.Error("Resolve must not eagerly delete expired rows")
	}

	// Revoke still reaches the row even though it is logically expired.
	if err := m.Revoke(ctx, token); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if !deleted {
		t.Error("Revoke should delete the expired row")
	}
}

func TestManagerResolveInvalidToken(t *testing.T) {
	m := NewManager(&mockStore{}, testSecret)
	if _, err := m.Resolve(context.Background(), "garbage"); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("err = %v, want ErrInvalidSession", err)
	}
}

func TestManagerRevokeIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewManager(&mockStore{}, testSecret)

	// Undecodable token: nothing to delete, not an error.
	if err := m.Revoke(ctx, "not-a-token"); err != nil {
		t.Errorf("Revoke undecodable: %v", err)
	}

	token, err := Encode("gone-session", testSecret)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Revoke(ctx, token); err != nil {
		t.Errorf("Revoke absent: %v", err)
	}
}
