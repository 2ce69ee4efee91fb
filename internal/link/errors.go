package link

import "errors"

var (
	ErrInvalidShortCode   = errors.New("invalid short code")
	ErrInvalidDestination = errors.New("invalid destination url")
	ErrInvalidExpiry      = errors.New("invalid expiry")
	ErrShortCodeExists    = errors.New("short code already exists")
	ErrNotFound           = errors.New("link not found")
	ErrUnauthorized       = errors.New("not the link owner")
)
