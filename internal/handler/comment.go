package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/middleware"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/repository"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/service"
)

type CommentHandler struct {
	svc *service.CommentService
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// List handles GET /api/videos/:videoId/comments — paginated comments with
// the viewer's blocked authors filtered out.
func (h *CommentHandler) List(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID(c.Params("videoId"), "videoId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}
	page, ok := middleware.QueryInt(c, "page", 1)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "'page' must be an integer.")
	}
	limit, ok := middleware.QueryInt(c, "limit", repository.DefaultPageLimit)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "'limit' must be an integer.")
	}

	resp, err := h.svc.ListForVideo(c.Context(), middleware.UserID(c), videoID, page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
