package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Anvarmag/skladoptima/internal/application/dto"
	appsync "github.com/Anvarmag/skladoptima/internal/application/sync"
	"github.com/Anvarmag/skladoptima/internal/application/usecase"
	"github.com/Anvarmag/skladoptima/internal/domain"
	"github.com/Anvarmag/skladoptima/internal/domain/entity"
)

// ProductHandler handles the product catalog and the single-product stock
// update (protected). The active store comes from the store-id header.
type ProductHandler struct {
	uc      *usecase.ProductUseCase
	updater *appsync.StockUpdater
}

// NewProductHandler builds the handler.
func NewProductHandler(uc *usecase.ProductUseCase, updater *appsync.StockUpdater) *ProductHandler {
	return &ProductHandler{uc: uc, updater: updater}
}

// List godoc
// @Summary      List the active store's products
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        store-id  header  string  true  "Store id"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return c.JSON([]dto.ProductResponse{})
	}
	out, err := h.uc.List(storeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// BulkUpsert godoc
// @Summary      Bulk upsert products by SKU
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        store-id  header  string  true  "Store id"
// @Param        body      body    []dto.ProductItem  true  "Products"
// @Success      200  {object}  dto.BulkUpsertResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) BulkUpsert(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_STORE", Message: "store-id header required"})
	}
	var items []dto.ProductItem
	if err := c.BodyParser(&items); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "expected a non-empty product array"})
	}
	out, err := h.uc.BulkUpsert(storeID, items)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "expected a non-empty product array with sku on every item"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpdateStocks godoc
// @Summary      Update a product's stock and push to marketplaces
// @Description  Persists the supplied quantities locally, then pushes the
// @Description  master quantity to every configured marketplace in parallel.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        store-id  header  string  true  "Store id"
// @Param        sku       path    string  true  "Product SKU"
// @Param        body      body    dto.UpdateStocksRequest  true  "Quantities"
// @Success      200  {object}  dto.UpdateStocksResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{sku} [put]
func (h *ProductHandler) UpdateStocks(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_STORE", Message: "store-id header required"})
	}
	var in dto.UpdateStocksRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	fields := entity.StockFields{Master: in.StockMaster, WB: in.StockWB, Ozon: in.StockOzon}
	result, err := h.updater.Apply(c.UserContext(), storeID, c.Params("sku"), fields)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product not found in this store"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "at least one stock field is required"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(dto.UpdateStocksResponse{
		Product: *usecase.ToProductResponse(result.Product),
		Marketplaces: dto.MarketplaceStatusResponse{
			WB:   result.Marketplaces.WB,
			Ozon: result.Marketplaces.Ozon,
		},
	})
}

// Delete godoc
// @Summary      Delete a product
// @Tags         products
// @Security     Bearer
// @Param        store-id  header  string  true  "Store id"
// @Param        sku       path    string  true  "Product SKU"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{sku} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_STORE", Message: "store-id header required"})
	}
	if err := h.uc.Delete(storeID, c.Params("sku")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product not found in this store"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
