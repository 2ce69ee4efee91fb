package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Response is the envelope every JSON endpoint answers with. Code is a
// stable machine-readable string the calling UI branches on.
type Response struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func fail(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(Response{Success: false, Code: code, Error: msg})
}

func succeed(c *fiber.Ctx, status int, r Response) error {
	r.Success = true
	return c.Status(status).JSON(r)
}

const (
	sessionCookie = "session"
	cookieMaxAge  = 604800 // 7 days, matches the session TTL
)

func setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookie(c *fiber.Ctx) {
	// An Expires in the past is the portable way to get the cookie
	// dropped immediately.
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
