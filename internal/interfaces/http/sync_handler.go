package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Anvarmag/skladoptima/internal/application/dto"
	appsync "github.com/Anvarmag/skladoptima/internal/application/sync"
	"github.com/Anvarmag/skladoptima/internal/domain"
)

// SyncHandler exposes manual reconciliation triggers on top of the engine.
// The background scheduler drives the same code path on its own timer.
type SyncHandler struct {
	reconciler *appsync.Reconciler
}

// NewSyncHandler builds the handler.
func NewSyncHandler(reconciler *appsync.Reconciler) *SyncHandler {
	return &SyncHandler{reconciler: reconciler}
}

// RunCycle godoc
// @Summary      Run a full reconciliation cycle now
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sync/run [post]
func (h *SyncHandler) RunCycle(c *fiber.Ctx) error {
	if err := h.reconciler.RunCycle(c.UserContext()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "SYNC_FAILED", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReconcileStore godoc
// @Summary      Reconcile one store now
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Store id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{id}/sync [post]
func (h *SyncHandler) ReconcileStore(c *fiber.Ctx) error {
	err := h.reconciler.ReconcileStoreByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "store not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "SYNC_FAILED", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
