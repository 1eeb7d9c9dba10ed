package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/middleware"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/model"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/repository"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/service"
)

type VideoBlockHandler struct {
	svc      *service.VideoBlockService
	resolver *service.ResolverService
}

func NewVideoBlockHandler(svc *service.VideoBlockService, resolver *service.ResolverService) *VideoBlockHandler {
	return &VideoBlockHandler{svc: svc, resolver: resolver}
}

// Block handles POST /api/video-block/block/:videoId
func (h *VideoBlockHandler) Block(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID(c.Params("videoId"), "videoId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}

	// Body is restricted to blockType, reason, startAt, endAt.
	var req model.BlockVideoRequest
	if errMsg := middleware.DecodeStrictJSON(c, &req); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}
	if req.BlockType == "" {
		req.BlockType = "manual"
	}
	reason, errMsg := middleware.ValidateReason(req.Reason)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}

	blockedBy := middleware.UserID(c)
	block, err := h.svc.Block(c.Context(), &model.VideoBlock{
		VideoID:   videoID,
		BlockedBy: blockedBy,
		BlockType: req.BlockType,
		Reason:    reason,
		StartAt:   req.StartAt,
		EndAt:     req.EndAt,
	}, middleware.Role(c))
	if err != nil {
		return respondError(c, err)
	}

	countBlock("video")
	middleware.AuditBlockAction(blockedBy, middleware.Role(c), "block_video", videoID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Video blocked.",
		"data":    block,
	})
}

// Unblock handles DELETE /api/video-block/block/:blockId
func (h *VideoBlockHandler) Unblock(c fiber.Ctx) error {
	blockID, errMsg := middleware.ValidateID(c.Params("blockId"), "blockId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}

	actorID := middleware.UserID(c)
	if err := h.svc.Unblock(c.Context(), blockID, actorID, middleware.Role(c)); err != nil {
		return respondError(c, err)
	}

	countLift("video")
	middleware.AuditBlockAction(actorID, middleware.Role(c), "unblock_video", blockID)
	return c.JSON(fiber.Map{"success": true, "message": "Video unblocked."})
}

// ListBlocked handles GET /api/video-block/blocked
func (h *VideoBlockHandler) ListBlocked(c fiber.Ctx) error {
	active, ok := middleware.QueryBool(c, "active")
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid active value.")
	}
	if active == nil {
		t := true
		active = &t
	}
	blockType := c.Query("blockType")
	if blockType != "" && !repository.ValidBlockTypes[blockType] {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid block type.")
	}
	limit, ok := middleware.QueryInt(c, "limit", repository.DefaultBlockListLimit)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "'limit' must be between 1 and 500.")
	}
	offset, ok := middleware.QueryInt(c, "offset", 0)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "'offset' must be a non-negative integer.")
	}

	blocks, err := h.resolver.ListBlockedVideos(c.Context(), middleware.UserID(c), active, blockType,
		repository.Pagination{Limit: limit, Offset: offset})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": blocks})
}
