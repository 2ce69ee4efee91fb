// Package httpapi dispatches inbound HTTP requests onto the core: public
// API, session-gated API, and the redirect fallback for everything else.
package httpapi

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/MagnunAVF/shortlinks/internal"
	"github.com/MagnunAVF/shortlinks/internal/account"
	"github.com/MagnunAVF/shortlinks/internal/link"
	applog "github.com/MagnunAVF/shortlinks/internal/logger"
)

// SessionManager gates the protected API paths.
type SessionManager interface {
	Create(ctx context.Context, userID string) (string, error)
	Resolve(ctx context.Context, token string) (*internal.Session, error)
	Revoke(ctx context.Context, token string) error
}

// LinkRegistry mutates and checks short-code mappings.
type LinkRegistry interface {
	Create(ctx context.Context, req link.CreateRequest) (string, error)
	Remove(ctx context.Context, shortCode, ownerID string) error
	Exists(ctx context.Context, shortCode string) (bool, error)
}

// Redirector serves the redirect fallback.
type Redirector interface {
	Resolve(ctx context.Context, shortCode string, meta link.RequestMetadata) (link.Decision, error)
}

type Server struct {
	accounts   account.Store
	sessions   SessionManager
	registry   LinkRegistry
	redirector Redirector
}

// New wires the Fiber app. Anything that is not a known API path is treated
// as a short-code lookup.
func New(accounts account.Store, sessions SessionManager, registry LinkRegistry, redirector Redirector) *fiber.App {
	s := &Server{
		accounts:   accounts,
		sessions:   sessions,
		registry:   registry,
		redirector: redirector,
	}

	app := fiber.New()
	app.Use(applog.FiberMiddleware())
	app.Use(cors.New())

	api := app.Group("/api")
	api.Post("/signup", s.handleSignup)
	api.Post("/login", s.handleLogin)
	api.Post("/logout", s.handleLogout)
	api.Get("/me", s.requireSession, s.handleMe)
	api.Post("/create-link", s.requireSession, s.handleCreateLink)
	api.Post("/get-link", s.handleGetLink)
	api.Delete("/remove-link", s.requireSession, s.handleRemoveLink)

	// Historical path without the /api prefix, still served.
	app.Delete("/remove-link", s.requireSession, s.handleRemoveLink)

	app.Get("/:short_code", s.handleRedirect)

	return app
}
