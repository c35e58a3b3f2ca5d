// Package importer reads and writes product catalogs as xlsx, using the
// column layout of a Wildberries stock report so seller exports can be loaded
// directly.
package importer

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Anvarmag/skladoptima/internal/application/dto"
	"github.com/Anvarmag/skladoptima/internal/domain"
	"github.com/Anvarmag/skladoptima/internal/domain/entity"
)

// Header cells recognized on import (matched case-insensitively by substring)
// and written on export.
const (
	headerSKU     = "Артикул продавца"
	headerBarcode = "Баркод"
	headerName    = "Наименование"
	headerStock   = "Количество"
	headerWB      = "Остаток WB"
	headerOzon    = "Остаток Ozon"
)

// ParseCatalog reads the first sheet of an xlsx file and maps its rows to
// bulk upsert items. The header row is located by column names; rows without
// a seller SKU are skipped. The stock column fills stock_master only —
// marketplace quantities converge via sync.
func ParseCatalog(r io.Reader) ([]dto.ProductItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ErrInvalidInput
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, domain.ErrInvalidInput
	}

	cols := mapColumns(rows[0])
	if _, ok := cols["sku"]; !ok {
		return nil, domain.ErrInvalidInput
	}

	items := make([]dto.ProductItem, 0, len(rows)-1)
	for _, row := range rows[1:] {
		sku := strings.TrimSpace(cell(row, cols, "sku"))
		if sku == "" {
			continue
		}
		stock := parseInt(cell(row, cols, "stock"))
		items = append(items, dto.ProductItem{
			SKU:         sku,
			Barcode:     strings.TrimSpace(cell(row, cols, "barcode")),
			Name:        strings.TrimSpace(cell(row, cols, "name")),
			StockMaster: &stock,
		})
	}
	return items, nil
}

// WriteCatalog renders the products as an xlsx workbook ready for download.
// The layout round-trips through ParseCatalog.
func WriteCatalog(products []*entity.Product) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{headerSKU, headerBarcode, headerName, headerStock, headerWB, headerOzon}
	for i, h := range headers {
		cellName, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cellName, h); err != nil {
			return nil, err
		}
	}

	for i, p := range products {
		values := []any{p.SKU, p.Barcode, p.Name, p.StockMaster, p.StockWB, p.StockOzon}
		for j, v := range values {
			cellName, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cellName, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf, nil
}

// mapColumns locates known columns by header name, case-insensitively and by
// substring, so minor header variations in seller exports still match.
func mapColumns(header []string) map[string]int {
	cols := make(map[string]int)
	for i, h := range header {
		lower := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(lower, "артикул"):
			cols["sku"] = i
		case strings.Contains(lower, "баркод"):
			cols["barcode"] = i
		case strings.Contains(lower, "наименование"):
			cols["name"] = i
		case strings.Contains(lower, "количество"):
			cols["stock"] = i
		}
	}
	return cols
}

func cell(row []string, cols map[string]int, key string) string {
	idx, ok := cols[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
