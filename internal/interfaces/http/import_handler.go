package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Anvarmag/skladoptima/internal/application/dto"
	"github.com/Anvarmag/skladoptima/internal/application/usecase"
	"github.com/Anvarmag/skladoptima/internal/domain"
)

// ImportHandler handles xlsx catalog import and export (protected).
type ImportHandler struct {
	uc *usecase.ProductUseCase
}

// NewImportHandler builds the handler.
func NewImportHandler(uc *usecase.ProductUseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// Import godoc
// @Summary      Import a product catalog from xlsx
// @Description  Accepts a Wildberries stock-report style workbook in the
// @Description  "file" form field and bulk upserts its rows.
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        store-id  header  string  true  "Store id"
// @Param        file      formData  file  true  "xlsx workbook"
// @Success      200  {object}  dto.BulkUpsertResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/import [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_STORE", Message: "store-id header required"})
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "file form field required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "cannot open uploaded file"})
	}
	defer file.Close()

	out, err := h.uc.ImportXLSX(storeID, file)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "workbook has no usable rows"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Export the store's catalog as xlsx
// @Tags         products
// @Security     Bearer
// @Param        store-id  header  string  true  "Store id"
// @Success      200  {file}  binary
// @Router       /api/products/export [get]
func (h *ImportHandler) Export(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_STORE", Message: "store-id header required"})
	}
	buf, err := h.uc.ExportXLSX(storeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.xlsx"`)
	return c.Send(buf.Bytes())
}
