package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/internal/app/repository"
	"github.com/vendra/vendra-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const exportBatchSize = 200

// ExportService writes catalog snapshots as XLSX, one row per variant so
// the file round-trips into spreadsheet-based inventory tools.
type ExportService interface {
	ExportCatalog(w io.Writer) error
}

type exportService struct {
	productRepo repository.ProductRepository
}

func NewExportService(productRepo repository.ProductRepository) ExportService {
	return &exportService{
		productRepo: productRepo,
	}
}

var exportHeader = []interface{}{
	"Product ID", "Title", "Handle", "Status", "Tags", "Collections",
	"Variant ID", "Variant", "Options", "SKU", "Barcode", "Price", "Quantity",
}

func (s *exportService) ExportCatalog(w io.Writer) error {
	logger.Info("Starting catalog export", nil)

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	if err := sw.SetRow("A1", exportHeader); err != nil {
		return err
	}

	row := 2
	offset := 0
	for {
		products, _, err := s.productRepo.FindWithFilter(repository.ProductFilter{
			Limit:  exportBatchSize,
			Offset: offset,
		})
		if err != nil {
			logger.Error("Failed to load products for export", err, map[string]interface{}{
				"offset": offset,
			})
			return err
		}
		if len(products) == 0 {
			break
		}

		for i := range products {
			written, err := writeProductRows(sw, &products[i], row)
			if err != nil {
				return err
			}
			row += written
		}

		offset += len(products)
		if len(products) < exportBatchSize {
			break
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		logger.Error("Failed to write export file", err, nil)
		return err
	}

	logger.Info("Catalog export completed", map[string]interface{}{
		"rows": row - 2,
	})
	return nil
}

// writeProductRows emits one row per variant, or a single row when the
// product has no variants yet.
func writeProductRows(sw *excelize.StreamWriter, product *model.Product, startRow int) (int, error) {
	collections := make([]string, 0, len(product.Collections))
	for _, c := range product.Collections {
		collections = append(collections, c.Title)
	}

	base := []interface{}{
		product.ID,
		product.Title,
		product.Handle,
		string(product.Status),
		strings.Join(product.Tags, ", "),
		strings.Join(collections, ", "),
	}

	if len(product.Variants) == 0 {
		cell, _ := excelize.CoordinatesToCellName(1, startRow)
		if err := sw.SetRow(cell, base); err != nil {
			return 0, err
		}
		return 1, nil
	}

	for i, variant := range product.Variants {
		values := make([]string, 0, len(variant.OptionValues))
		for _, v := range variant.OptionValues {
			values = append(values, v.Value)
		}

		rowValues := append(append([]interface{}{}, base...),
			variant.ID,
			variant.Name,
			strings.Join(values, " / "),
			stringOrEmpty(variant.SKU),
			stringOrEmpty(variant.Barcode),
			variant.Price.InexactFloat64(),
			variant.Quantity,
		)

		cell, _ := excelize.CoordinatesToCellName(1, startRow+i)
		if err := sw.SetRow(cell, rowValues); err != nil {
			return 0, err
		}
	}

	return len(product.Variants), nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
