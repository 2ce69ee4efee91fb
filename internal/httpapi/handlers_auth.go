package httpapi

import (
	"errors"
	"regexp"

	"github.com/gofiber/fiber/v2"

	"github.com/MagnunAVF/shortlinks/internal/account"
	"github.com/MagnunAVF/shortlinks/internal/logger"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func (s *Server) handleSignup(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "MISSING_CREDENTIALS", "Invalid request")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return fail(c, fiber.StatusBadRequest, "MISSING_CREDENTIALS", "Missing fields")
	}
	if !emailRe.MatchString(req.Email) {
		return fail(c, fiber.StatusBadRequest, "INVALID_EMAIL", "Invalid email format")
	}

	hash, err := account.HashPassword(req.Password)
	if err != nil {
		logger.FromContext(c.Context()).Error("hash password", "err", err)
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", "Internal error")
	}

	user, err := s.accounts.Create(c.Context(), req.Email, hash, req.Name)
	if err != nil {
		if errors.Is(err, account.ErrEmailTaken) {
			return fail(c, fiber.StatusConflict, "EMAIL_EXISTS", "User exists")
		}
		logger.FromContext(c.Context()).Error("create user", "err", err)
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", "Internal error")
	}

	token, err := s.sessions.Create(c.Context(), user.ID)
	if err != nil {
		logger.FromContext(c.Context()).Error("create session", "err", err)
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", "Internal error")
	}
	setSessionCookie(c, token)

	return succeed(c, fiber.StatusCreated, Response{Message: "User created"})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "MISSING_CREDENTIALS", "Invalid request")
	}
	if req.Email == "" || req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "MISSING_CREDENTIALS", "Missing credentials")
	}

	user, err := s.accounts.FindByEmail(c.Context(), req.Email)
	if err != nil {
		logger.FromContext(c.Context()).Error("find user", "err", err)
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", "Internal error")
	}
	// The human-readable message never says which check failed; the
	// machine code does, a trade-off inherited knowingly.
	if user == nil {
		return fail(c, fiber.StatusUnauthorized, "EMAIL_NOT_FOUND", "Invalid email or password")
	}
	if !account.CheckPassword(user.PasswordHash, req.Password) {
		return fail(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	}

	token, err := s.sessions.Create(c.Context(), user.ID)
	if err != nil {
		logger.FromContext(c.Context()).Error("create session", "err", err)
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", "Internal error")
	}
	setSessionCookie(c, token)

	return succeed(c, fiber.StatusOK, Response{Message: "Logged in"})
}

// handleLogout revokes whatever session the cookie decodes to, expired or
// not, so it deliberately skips the requireSession gate.
func (s *Server) handleLogout(c *fiber.Ctx) error {
	token := c.Cookies(sessionCookie)
	if token == "" {
		return fail(c, fiber.StatusUnauthorized, "MISSING_CREDENTIALS", "No session")
	}

	if err := s.sessions.Revoke(c.Context(), token); err != nil {
		logger.FromContext(c.Context()).Error("revoke session", "err", err)
	}
	clearSessionCookie(c)

	return succeed(c, fiber.StatusOK, Response{Message: "Logged out"})
}

func (s *Server) handleMe(c *fiber.Ctx) error {
	sess := sessionFromLocals(c)

	user, err := s.accounts.FindByID(c.Context(), sess.UserID)
	if err != nil {
		logger.FromContext(c.Context()).Error("find user", "err", err)
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", "Internal error")
	}
	if user == nil {
		return fail(c, fiber.StatusNotFound, "USER_NOT_FOUND", "User not found")
	}

	return succeed(c, fiber.StatusOK, Response{Data: fiber.Map{
		"email":     user.Email,
		"name":      user.Name,
		"createdAt": user.CreatedAt.UnixMilli(),
	}})
}
