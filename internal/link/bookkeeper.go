package link

import (
	"context"

	"github.com/MagnunAVF/shortlinks/internal"
	"github.com/MagnunAVF/shortlinks/internal/events"
)

// Bookkeeper applies queued events to the two stores. It runs inside the
// analytics worker, after the redirect response has long been sent.
type Bookkeeper struct {
	cache Cache
	store Store
}

func NewBookkeeper(cache Cache, store Store) *Bookkeeper {
	return &Bookkeeper{cache: cache, store: store}
}

func (b *Bookkeeper) Apply(ctx context.Context, e events.Event) error {
	switch e.Type {
	case events.TypeClick:
		return b.applyClick(ctx, e)
	case events.TypeCleanup:
		return b.applyCleanup(ctx, e)
	}
	return nil
}

// applyClick bumps the visit count and appends the analytics row. The
// increment is a plain read-modify-write: concurrent clicks can lose
// updates, the counter is an approximation by contract.
func (b *Bookkeeper) applyClick(ctx context.Context, e events.Event) error {
	row, err := b.store.FindByShortCode(ctx, e.ShortCode)
	if err != nil {
		return err
	}
	if row == nil {
		// The link was removed, or never got its durable row. Nothing to
		// count against.
		return nil
	}
	if err := b.store.UpdateVisits(ctx, row.ID, row.VisitsCount+1); err != nil {
		return err
	}
	return b.store.InsertEvent(ctx, &internal.AnalyticsEvent{
		LinkID:    row.ID,
		Timestamp: e.Timestamp,
		UserAgent: e.UserAgent,
		IPAddress: e.IPAddress,
		Location:  e.Location,
	})
}

// applyCleanup purges the durable row and the cache entry of an expired or
// removed link. Not atomic across the stores; a crash between the two
// deletes leaves a window the redirect path already tolerates.
func (b *Bookkeeper) applyCleanup(ctx context.Context, e events.Event) error {
	if e.LinkID != 0 {
		if err := b.store.DeleteByID(ctx, e.LinkID); err != nil {
			return err
		}
	}
	return b.cache.Del(ctx, e.ShortCode)
}
