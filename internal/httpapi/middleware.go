package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/MagnunAVF/shortlinks/internal"
	"github.com/MagnunAVF/shortlinks/internal/logger"
	"github.com/MagnunAVF/shortlinks/internal/session"
)

const localsSession = "session"

// requireSession rejects the request before any protected handler runs.
// Absent, undecodable and expired sessions all look the same to the client.
func (s *Server) requireSession(c *fiber.Ctx) error {
	token := c.Cookies(sessionCookie)
	if token == "" {
		return fail(c, fiber.StatusUnauthorized, "MISSING_CREDENTIALS", "Not logged in")
	}

	sess, err := s.sessions.Resolve(c.Context(), token)
	if err != nil {
		if errors.Is(err, session.ErrInvalidSession) {
			return fail(c, fiber.StatusUnauthorized, "INVALID_SESSION", "Invalid session")
		}
		logger.FromContext(c.Context()).Error("resolve session", "err", err)
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", "Internal error")
	}

	c.Locals(localsSession, sess)
	return c.Next()
}

func sessionFromLocals(c *fiber.Ctx) *internal.Session {
	sess, _ := c.Locals(localsSession).(*internal.Session)
	return sess
}
