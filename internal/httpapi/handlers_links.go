package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/MagnunAVF/shortlinks/internal"
	"github.com/MagnunAVF/shortlinks/internal/link"
	"github.com/MagnunAVF/shortlinks/internal/logger"
)

func (s *Server) handleCreateLink(c *fiber.Ctx) error {
	var req struct {
		ShortCode   string          `json:"shortCode"`
		Destination string          `json:"destination"`
		ExpiresAt   internal.Expiry `json:"expiresAt"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "MISSING_FIELDS", "Invalid request")
	}
	if req.Destination == "" || req.ExpiresAt.IsZero() {
		return fail(c, fiber.StatusBadRequest, "MISSING_FIELDS", "Missing properties")
	}

	sess := sessionFromLocals(c)
	code, err := s.registry.Create(c.Context(), link.CreateRequest{
		ShortCode:   req.ShortCode,
		Destination: req.Destination,
		Expiry:      req.ExpiresAt,
		OwnerID:     sess.UserID,
	})
	switch {
	case err == nil:
	case errors.Is(err, link.ErrInvalidShortCode):
		return fail(c, fiber.StatusBadRequest, "INVALID_SHORT_CODE", "Invalid short code")
	case errors.Is(err, link.ErrInvalidDestination):
		return fail(c, fiber.StatusBadRequest, "INVALID_DESTINATION", "Invalid URL")
	case errors.Is(err, link.ErrInvalidExpiry):
		return fail(c, fiber.StatusBadRequest, "INVALID_EXPIRY", "Invalid expiry")
	case errors.Is(err, link.ErrShortCodeExists):
		return fail(c, fiber.StatusConflict, "SHORT_CODE_EXISTS", "Short code already exists")
	default:
		logger.FromContext(c.Context()).Error("create link", "err", err)
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", "Failed to create link")
	}

	return succeed(c, fiber.StatusCreated, Response{Data: fiber.Map{"shortCode": code}})
}

func (s *Server) handleRemoveLink(c *fiber.Ctx) error {
	var req struct {
		ShortCode string `json:"shortCode"`
	}
	if err := c.BodyParser(&req); err != nil || req.ShortCode == "" {
		return fail(c, fiber.StatusBadRequest, "MISSING_SHORT_CODE", "Missing shortCode")
	}

	sess := sessionFromLocals(c)
	err := s.registry.Remove(c.Context(), req.ShortCode, sess.UserID)
	switch {
	case err == nil:
	case errors.Is(err, link.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "Link not found")
	case errors.Is(err, link.ErrUnauthorized):
		return fail(c, fiber.StatusForbidden, "UNAUTHORIZED", "Not the link owner")
	default:
		logger.FromContext(c.Context()).Error("remove link", "err", err)
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", "Failed to remove link")
	}

	return succeed(c, fiber.StatusOK, Response{})
}

func (s *Server) handleGetLink(c *fiber.Ctx) error {
	var req struct {
		ShortCode string `json:"shortCode"`
	}
	if err := c.BodyParser(&req); err != nil || req.ShortCode == "" {
		return fail(c, fiber.StatusBadRequest, "MISSING_SHORT_CODE", "shortCode missing")
	}

	present, err := s.registry.Exists(c.Context(), req.ShortCode)
	if err != nil {
		if errors.Is(err, link.ErrInvalidShortCode) {
			return fail(c, fiber.StatusBadRequest, "INVALID_SHORT_CODE", "Invalid short code")
		}
		logger.FromContext(c.Context()).Error("check link", "err", err)
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", "Failed to check link")
	}

	if present {
		return succeed(c, fiber.StatusOK, Response{Code: "FOUND", Message: req.ShortCode})
	}
	return succeed(c, fiber.StatusNotFound, Response{Code: "NOT_FOUND", Message: "not found"})
}

const notFoundPage = `<h1>Link not found or expired</h1>`

func (s *Server) handleRedirect(c *fiber.Ctx) error {
	meta := link.RequestMetadata{
		UserAgent: c.Get(fiber.HeaderUserAgent),
		IPAddress: c.IP(),
		Location:  c.Get("CF-IPCountry"),
	}

	d, err := s.redirector.Resolve(c.Context(), c.Params("short_code"), meta)
	if err != nil {
		logger.FromContext(c.Context()).Error("resolve redirect", "err", err)
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", "Internal error")
	}
	if d.Outcome != link.OutcomeRedirect {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Status(fiber.StatusNotFound).SendString(notFoundPage)
	}
	return c.Redirect(d.Destination, d.Status)
}
