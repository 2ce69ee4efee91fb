// Package link implements the redirection core: a dual-backed registry of
// short codes and the redirector that serves them.
//
// The cache layer is authoritative for "does a redirect exist right now";
// the durable layer is authoritative for ownership, visit counts and
// analytics. The two are independent projections of one logical link and
// are never updated inside a cross-store transaction, which leaves two
// documented inconsistency windows: a cache entry without a durable row
// (create-path insert failure) and a stale durable row without a cache
// entry (expired or removed link awaiting lazy cleanup).
package link

import (
	"context"
	"net/url"
	"time"

	"github.com/MagnunAVF/shortlinks/internal"
	"github.com/MagnunAVF/shortlinks/internal/events"
	"github.com/MagnunAVF/shortlinks/internal/logger"
)

// Cache is the key-value layer holding shortCode -> destination with TTL
// expiry. Get returns ("", nil) on a miss.
type Cache interface {
	Get(ctx context.Context, shortCode string) (string, error)
	// SetNX claims shortCode atomically; false means it was already taken.
	// A zero TTL means no expiry.
	SetNX(ctx context.Context, shortCode, destination string, ttl time.Duration) (bool, error)
	Del(ctx context.Context, shortCode string) error
	Exists(ctx context.Context, shortCode string) (bool, error)
}

// Store is the durable layer for link metadata and analytics rows.
// FindByShortCode returns (nil, nil) when no row matches.
type Store interface {
	Insert(ctx context.Context, row *internal.Link) error
	FindByShortCode(ctx context.Context, shortCode string) (*internal.Link, error)
	UpdateVisits(ctx context.Context, id int64, visits int64) error
	InsertEvent(ctx context.Context, row *internal.AnalyticsEvent) error
	DeleteByID(ctx context.Context, id int64) error
}

const generateRetries = 6

type CreateRequest struct {
	ShortCode   string
	Destination string
	Expiry      internal.Expiry
	OwnerID     string
}

type Registry struct {
	cache Cache
	store Store
	queue events.Queue
	now   func() time.Time
}

func NewRegistry(cache Cache, store Store, queue events.Queue) *Registry {
	return &Registry{cache: cache, store: store, queue: queue, now: time.Now}
}

// Create registers a new short link and returns the resolved code. The
// cache write and the durable insert are two independent steps: when the
// insert fails after the cache key was claimed, the link still redirects
// but has no ownership or analytics. That inconsistency is logged and
// tolerated, not rolled back.
func (r *Registry) Create(ctx context.Context, req CreateRequest) (string, error) {
	code := req.ShortCode
	if code == "" {
		// A random draw can land on a purely numeric code; redraw.
		for i := 0; i < generateRetries; i++ {
			c, err := internal.GenerateShortCode()
			if err != nil {
				return "", err
			}
			if internal.ValidShortCode(c) {
				code = c
				break
			}
		}
	}
	if !internal.ValidShortCode(code) {
		return "", ErrInvalidShortCode
	}
	if !validDestination(req.Destination) {
		return "", ErrInvalidDestination
	}

	now := r.now()
	expiresAt, ok := req.Expiry.Resolve(now)
	if !ok {
		return "", ErrInvalidExpiry
	}
	var ttl time.Duration
	if expiresAt != nil {
		ttl = expiresAt.Sub(now)
	}

	claimed, err := r.cache.SetNX(ctx, code, req.Destination, ttl)
	if err != nil {
		return "", err
	}
	if !claimed {
		return "", ErrShortCodeExists
	}

	row := &internal.Link{
		ShortCode: code,
		UserID:    req.OwnerID,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	if err := r.store.Insert(ctx, row); err != nil {
		logger.FromContext(ctx).Warn("link created without durable row",
			"short_code", code, "err", err)
	}
	return code, nil
}

// Remove deletes the cache entry after verifying ownership against the
// durable row; the row itself is purged lazily through the queue. A link
// with no durable row has no recorded owner, so any authenticated caller
// may remove it (refusing would make create-path orphans unremovable).
func (r *Registry) Remove(ctx context.Context, shortCode, ownerID string) error {
	present, err := r.cache.Exists(ctx, shortCode)
	if err != nil {
		return err
	}
	if !present {
		return ErrNotFound
	}

	row, err := r.store.FindByShortCode(ctx, shortCode)
	if err != nil {
		return err
	}
	if row != nil && row.UserID != ownerID {
		return ErrUnauthorized
	}

	if err := r.cache.Del(ctx, shortCode); err != nil {
		return err
	}
	if row != nil {
		r.queue.Submit(events.Event{
			Type:      events.TypeCleanup,
			ShortCode: shortCode,
			LinkID:    row.ID,
			Timestamp: r.now(),
		})
	}
	return nil
}

// Exists is the availability check behind /api/get-link: format rules
// first, then the cache layer only.
func (r *Registry) Exists(ctx context.Context, shortCode string) (bool, error) {
	if !internal.ValidShortCode(shortCode) {
		return false, ErrInvalidShortCode
	}
	return r.cache.Exists(ctx, shortCode)
}

func validDestination(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}
