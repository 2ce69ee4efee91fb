package link

import (
	"context"
	"sync"
	"time"

	"github.com/MagnunAVF/shortlinks/internal"
	"github.com/MagnunAVF/shortlinks/internal/events"
)

// memCache is an in-memory Cache with real TTL semantics.
type memCache struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     func() time.Time
}

type memEntry struct {
	destination string
	expiresAt   time.Time // zero means no expiry
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]memEntry{}, now: time.Now}
}

func (c *memCache) live(e memEntry) bool {
	return e.expiresAt.IsZero() || e.expiresAt.After(c.now())
}

func (c *memCache) Get(ctx context.Context, code string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[code]; ok && c.live(e) {
		return e.destination, nil
	}
	return "", nil
}

func (c *memCache) SetNX(ctx context.Context, code, destination string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[code]; ok && c.live(e) {
		return false, nil
	}
	entry := memEntry{destination: destination}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.entries[code] = entry
	return true, nil
}

func (c *memCache) Del(ctx context.Context, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, code)
	return nil
}

func (c *memCache) Exists(ctx context.Context, code string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[code]
	return ok && c.live(e), nil
}

// memStore is an in-memory Store.
type memStore struct {
	mu        sync.Mutex
	nextID    int64
	links     map[int64]*internal.Link
	analytics []*internal.AnalyticsEvent
	insertErr error
	lookupErr error
}

func newMemStore() *memStore {
	return &memStore{links: map[int64]*internal.Link{}}
}

func (s *memStore) Insert(ctx context.Context, row *internal.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	s.nextID++
	row.ID = s.nextID
	cp := *row
	s.links[row.ID] = &cp
	return nil
}

func (s *memStore) FindByShortCode(ctx context.Context, code string) (*internal.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	for _, l := range s.links {
		if l.ShortCode == code {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) UpdateVisits(ctx context.Context, id int64, visits int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.links[id]; ok {
		l.VisitsCount = visits
	}
	return nil
}

func (s *memStore) InsertEvent(ctx context.Context, row *internal.AnalyticsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analytics = append(s.analytics, row)
	return nil
}

func (s *memStore) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.links, id)
	return nil
}

// memQueue records submitted events.
type memQueue struct {
	mu     sync.Mutex
	events []events.Event
}

func (q *memQueue) Submit(e events.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, e)
}

func (q *memQueue) byType(t events.Type) []events.Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []events.Event
	for _, e := range q.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
