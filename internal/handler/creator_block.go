package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/middleware"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/model"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/repository"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/service"
)

type CreatorBlockHandler struct {
	svc      *service.CreatorBlockService
	resolver *service.ResolverService
}

func NewCreatorBlockHandler(svc *service.CreatorBlockService, resolver *service.ResolverService) *CreatorBlockHandler {
	return &CreatorBlockHandler{svc: svc, resolver: resolver}
}

// Block handles POST /api/block-creator/block/:creatorId
func (h *CreatorBlockHandler) Block(c fiber.Ctx) error {
	creatorID, errMsg := middleware.ValidateID(c.Params("creatorId"), "creatorId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}

	// Body is restricted to the reason field.
	var req model.BlockCreatorRequest
	if errMsg := middleware.DecodeStrictJSON(c, &req); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}
	reason, errMsg := middleware.ValidateReason(req.Reason)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}

	blockedBy := middleware.UserID(c)
	block, err := h.svc.Block(c.Context(), creatorID, blockedBy, reason)
	if err != nil {
		return respondError(c, err)
	}

	countBlock("creator")
	middleware.AuditBlockAction(blockedBy, middleware.Role(c), "block_creator", creatorID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Creator blocked.",
		"data":    block,
	})
}

// Unblock handles DELETE /api/block-creator/block/:blockId
func (h *CreatorBlockHandler) Unblock(c fiber.Ctx) error {
	blockID, errMsg := middleware.ValidateID(c.Params("blockId"), "blockId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}

	actorID := middleware.UserID(c)
	if err := h.svc.Unblock(c.Context(), blockID, actorID, middleware.Role(c)); err != nil {
		return respondError(c, err)
	}

	countLift("creator")
	middleware.AuditBlockAction(actorID, middleware.Role(c), "unblock_creator", blockID)
	return c.JSON(fiber.Map{"success": true, "message": "Creator unblocked."})
}

// ListBlocked handles GET /api/block-creator/blocked
func (h *CreatorBlockHandler) ListBlocked(c fiber.Ctx) error {
	active, ok := middleware.QueryBool(c, "active")
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid active value.")
	}
	if active == nil {
		// Active blocks by default; ?active=0 shows lifted ones.
		t := true
		active = &t
	}
	limit, ok := middleware.QueryInt(c, "limit", repository.DefaultBlockListLimit)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "'limit' must be between 1 and 500.")
	}
	offset, ok := middleware.QueryInt(c, "offset", 0)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "'offset' must be a non-negative integer.")
	}

	blocks, err := h.resolver.ListBlockedCreators(c.Context(), middleware.UserID(c), active,
		repository.Pagination{Limit: limit, Offset: offset})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": blocks})
}
