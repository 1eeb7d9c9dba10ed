package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/middleware"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/service"
)

type UserBlockHandler struct {
	svc *service.UserBlockService
}

func NewUserBlockHandler(svc *service.UserBlockService) *UserBlockHandler {
	return &UserBlockHandler{svc: svc}
}

// Block handles POST /api/user-block/block/:userId
func (h *UserBlockHandler) Block(c fiber.Ctx) error {
	blockedID, errMsg := middleware.ValidateID(c.Params("userId"), "userId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}
	blockerID := middleware.UserID(c)

	if err := h.svc.Block(c.Context(), blockerID, blockedID); err != nil {
		return respondError(c, err)
	}

	countBlock("user")
	middleware.AuditBlockAction(blockerID, middleware.Role(c), "block_user", blockedID)
	return c.JSON(fiber.Map{"success": true, "message": "User blocked."})
}

// Unblock handles DELETE /api/user-block/block/:userId
func (h *UserBlockHandler) Unblock(c fiber.Ctx) error {
	blockedID, errMsg := middleware.ValidateID(c.Params("userId"), "userId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}
	blockerID := middleware.UserID(c)

	if err := h.svc.Unblock(c.Context(), blockerID, blockedID); err != nil {
		return respondError(c, err)
	}

	countLift("user")
	middleware.AuditBlockAction(blockerID, middleware.Role(c), "unblock_user", blockedID)
	return c.JSON(fiber.Map{"success": true, "message": "User unblocked."})
}

// ListBlocked handles GET /api/user-block/blocked
func (h *UserBlockHandler) ListBlocked(c fiber.Ctx) error {
	blocks, err := h.svc.ListBlocked(c.Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": blocks})
}
