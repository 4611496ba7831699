package export

import (
	"fmt"
	"io"

	"github.com/marketloop/marketloop-backend/internal/app/model"
	"github.com/marketloop/marketloop-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Listings"

var headers = []string{"ID", "Title", "Category", "Price", "Condition", "Location", "Status", "Created At"}

// WriteProductsXLSX writes the given listings as an xlsx workbook.
func WriteProductsXLSX(w io.Writer, products []model.Product) error {
	logger.Debug("Building listings workbook", map[string]interface{}{
		"count": len(products),
	})

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	for row, product := range products {
		category := ""
		if product.Category != nil {
			category = product.Category.Name
		}

		values := []interface{}{
			product.ID,
			product.Title,
			category,
			fmt.Sprintf("%.2f", float64(product.PriceCents)/100),
			product.Condition,
			product.Location,
			string(product.Status),
			product.CreatedAt.Format("2006-01-02 15:04:05"),
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	logger.Debug("Listings workbook written", map[string]interface{}{
		"count": len(products),
	})
	return nil
}
