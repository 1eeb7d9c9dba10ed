package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/middleware"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/repository"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/service"
)

type VideoHandler struct {
	svc *service.VideoService
}

func NewVideoHandler(svc *service.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// List handles GET /api/videos — paginated browse with optional filters
// and sorting. Anonymous viewers get unfiltered (but approved-only) results.
func (h *VideoHandler) List(c fiber.Ctx) error {
	page, ok := middleware.QueryInt(c, "page", 1)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "'page' must be an integer.")
	}
	limit, ok := middleware.QueryInt(c, "limit", repository.DefaultPageLimit)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "'limit' must be an integer.")
	}

	approved, ok := middleware.QueryBool(c, "approved")
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid approved value.")
	}
	if approved == nil {
		// Public browse never surfaces unapproved uploads.
		t := true
		approved = &t
	}
	featured, ok := middleware.QueryBool(c, "featured")
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid featured value.")
	}
	isShort, ok := middleware.QueryBool(c, "is_short")
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid is_short value.")
	}

	var privacy *int
	if raw := c.Query("privacy"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid privacy value.")
		}
		privacy = &p
	}

	opts := repository.ListOptions{
		Page:       page,
		Limit:      limit,
		Approved:   approved,
		Featured:   featured,
		Privacy:    privacy,
		IsShort:    isShort,
		ShortsOnly: c.Query("shorts") == "1",
		Sort:       strings.ToLower(c.Query("sort")),
	}

	resp, err := h.svc.Browse(c.Context(), middleware.UserID(c), opts)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Search handles GET /api/videos/search?q=...
func (h *VideoHandler) Search(c fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	page, ok := middleware.QueryInt(c, "page", 1)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "'page' must be an integer.")
	}
	limit, ok := middleware.QueryInt(c, "limit", repository.DefaultPageLimit)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "'limit' must be an integer.")
	}

	resp, err := h.svc.Search(c.Context(), middleware.UserID(c), q, page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Random handles GET /api/videos/random
func (h *VideoHandler) Random(c fiber.Ctx) error {
	limit, ok := middleware.QueryInt(c, "limit", repository.DefaultPageLimit)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "'limit' must be an integer.")
	}

	videos, err := h.svc.Random(c.Context(), middleware.UserID(c), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": videos})
}

// Saved handles GET /api/videos/saved — requires authentication.
func (h *VideoHandler) Saved(c fiber.Ctx) error {
	page, ok := middleware.QueryInt(c, "page", 1)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "'page' must be an integer.")
	}
	limit, ok := middleware.QueryInt(c, "limit", repository.DefaultPageLimit)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "'limit' must be an integer.")
	}

	resp, err := h.svc.Saved(c.Context(), middleware.UserID(c), page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
