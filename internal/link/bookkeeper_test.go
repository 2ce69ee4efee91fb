package link

import (
	"context"
	"testing"
	"time"

	"github.com/MagnunAVF/shortlinks/internal"
	"github.com/MagnunAVF/shortlinks/internal/events"
)

func TestBookkeeperClick(t *testing.T) {
	ctx := context.Background()
	cache := newMemCache()
	store := newMemStore()
	bk := NewBookkeeper(cache, store)

	store.Insert(ctx, &internal.Link{ShortCode: "go", VisitsCount: 3})

	ts := time.Now()
	err := bk.Apply(ctx, events.Event{
		Type:      events.TypeClick,
		ShortCode: "go",
		Timestamp: ts,
		UserAgent: "curl/8",
		IPAddress: "203.0.113.7",
		Location:  "BR",
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	row, _ := store.FindByShortCode(ctx, "go")
	if row.VisitsCount != 4 {
		t.Errorf("visits = %d, want 4", row.VisitsCount)
	}
	if len(store.analytics) != 1 {
		t.Fatalf("analytics rows = %d, want 1", len(store.analytics))
	}
	ev := store.analytics[0]
	if ev.LinkID != row.ID || ev.UserAgent != "curl/8" || ev.IPAddress != "203.0.113.7" || ev.Location != "BR" {
		t.Errorf("analytics row = %+v", ev)
	}
}

func TestBookkeeperClickWithoutRow(t *testing.T) {
	ctx := context.Background()
	bk := NewBookkeeper(newMemCache(), newMemStore())

	// Link deleted between redirect and bookkeeping: not an error.
	err := bk.Apply(ctx, events.Event{Type: events.TypeClick, ShortCode: "gone"})
	if err != nil {
		t.Errorf("Apply: %v", err)
	}
}

func TestBookkeeperCleanup(t *testing.T) {
	ctx := context.Background()
	cache := newMemCache()
	store := newMemStore()
	bk := NewBookkeeper(cache, store)

	cache.SetNX(ctx, "old", "https://example.com", 0)
	row := &internal.Link{ShortCode: "old"}
	store.Insert(ctx, row)

	err := bk.Apply(ctx, events.Event{
		Type:      events.TypeCleanup,
		ShortCode: "old",
		LinkID:    row.ID,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if got, _ := store.FindByShortCode(ctx, "old"); got != nil {
		t.Error("durable row should be deleted")
	}
	if present, _ := cache.Exists(ctx, "old"); present {
		t.Error("cache entry should be deleted")
	}
}

func TestBookkeeperUnknownType(t *testing.T) {
	bk := NewBookkeeper(newMemCache(), newMemStore())
	if err := bk.Apply(context.Background(), events.Event{Type: "mystery"}); err != nil {
		t.Errorf("unknown event types are skipped, got %v", err)
	}
}
