// Package events carries redirect bookkeeping off the request path. Work is
// submitted and never awaited: the redirect response is already on the wire
// when any of this runs, and failures stay inside the queue boundary.
package events

import "time"

type Type string

const (
	// TypeClick records one successful redirect: visit count + analytics.
	TypeClick Type = "click"
	// TypeCleanup purges an expired or removed link from both stores.
	TypeCleanup Type = "cleanup"
)

type Event struct {
	Type      Type      `json:"type"`
	ShortCode string    `json:"short_code"`
	LinkID    int64     `json:"link_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	UserAgent string    `json:"user_agent,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	Location  string    `json:"location,omitempty"`
}

// Queue accepts events with submit-and-don't-wait semantics. Submit must
// never block the caller on broker round trips and never returns an error:
// delivery is best effort from the caller's point of view.
type Queue interface {
	Submit(e Event)
}
