package link

import (
	"context"
	"time"

	"github.com/MagnunAVF/shortlinks/internal/events"
	"github.com/MagnunAVF/shortlinks/internal/logger"
)

type Outcome int

const (
	OutcomeNotFound Outcome = iota
	OutcomeRedirect
)

type Decision struct {
	Outcome     Outcome
	Destination string
	Status      int
}

// RequestMetadata is what a redirect contributes to its analytics row.
type RequestMetadata struct {
	UserAgent string
	IPAddress string
	Location  string
}

type Redirector struct {
	cache Cache
	store Store
	queue events.Queue
	now   func() time.Time
}

func NewRedirector(cache Cache, store Store, queue events.Queue) *Redirector {
	return &Redirector{cache: cache, store: store, queue: queue, now: time.Now}
}

// Resolve decides redirect vs not-found for an inbound short code. The
// cache lookup decides whether a redirect exists; the durable row is only
// consulted for expiry. All bookkeeping (visit count, analytics row,
// expired-link cleanup) goes through the queue and never delays the
// decision.
//
// A concurrent remove/recreate of the same code can make the submitted
// bookkeeping land on a different link; that eventual-consistency noise is
// accepted over per-code locking on the hot path.
func (r *Redirector) Resolve(ctx context.Context, shortCode string, meta RequestMetadata) (Decision, error) {
	if shortCode == "" {
		return Decision{Outcome: OutcomeNotFound}, nil
	}

	destination, err := r.cache.Get(ctx, shortCode)
	if err != nil {
		return Decision{}, err
	}
	if destination == "" {
		return Decision{Outcome: OutcomeNotFound}, nil
	}

	now := r.now()

	// Best effort: a missing or unreadable durable row never blocks the
	// redirect, it only costs the analytics row.
	row, err := r.store.FindByShortCode(ctx, shortCode)
	if err != nil {
		logger.FromContext(ctx).Warn("durable lookup failed on redirect",
			"short_code", shortCode, "err", err)
		row = nil
	}

	if row != nil && row.ExpiresAt != nil && row.ExpiresAt.Before(now) {
		// The expired durable record overrides the still-present cache
		// entry for this request; both are purged off the request path.
		r.queue.Submit(events.Event{
			Type:      events.TypeCleanup,
			ShortCode: shortCode,
			LinkID:    row.ID,
			Timestamp: now,
		})
		return Decision{Outcome: OutcomeNotFound}, nil
	}

	ev := events.Event{
		Type:      events.TypeClick,
		ShortCode: shortCode,
		Timestamp: now,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		Location:  meta.Location,
	}
	if row != nil {
		ev.LinkID = row.ID
	}
	r.queue.Submit(ev)

	return Decision{
		Outcome:     OutcomeRedirect,
		Destination: destination,
		Status:      301,
	}, nil
}
