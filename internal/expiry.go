package internal

import (
	"encoding/json"
	"fmt"
	"time"
)

// Expiry is the link-creation expiresAt field: either one of the keywords
// "never", "day", "week", "year" or a literal epoch-millisecond instant.
type Expiry struct {
	Keyword string
	AtMilli int64
	literal bool
	set     bool
}

func (e *Expiry) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*e = Expiry{Keyword: s, set: true}
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		*e = Expiry{AtMilli: n, literal: true, set: true}
		return nil
	}
	return fmt.Errorf("expiresAt must be a keyword or epoch milliseconds")
}

// IsZero reports whether the field was absent from the request body.
func (e Expiry) IsZero() bool { return !e.set }

// Resolve maps the policy to a concrete expiration instant. A nil time with
// ok=true means the link never expires. ok=false means the value is not a
// known keyword, or a literal instant that is not in the future.
func (e Expiry) Resolve(now time.Time) (*time.Time, bool) {
	if e.literal {
		t := time.UnixMilli(e.AtMilli)
		if !t.After(now) {
			return nil, false
		}
		return &t, true
	}
	switch e.Keyword {
	case "never":
		return nil, true
	case "day":
		t := now.Add(24 * time.Hour)
		return &t, true
	case "week":
		t := now.Add(7 * 24 * time.Hour)
		return &t, true
	case "year":
		t := now.Add(365 * 24 * time.Hour)
		return &t, true
	}
	return nil, false
}
