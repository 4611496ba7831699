package controller

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marketloop/marketloop-backend/internal/app/service"
	apperrors "github.com/marketloop/marketloop-backend/internal/errors"
	"github.com/marketloop/marketloop-backend/internal/export"
	"github.com/marketloop/marketloop-backend/internal/middleware"
)

type ExportController struct {
	productService service.ProductService
}

func NewExportController(productService service.ProductService) *ExportController {
	return &ExportController{
		productService: productService,
	}
}

// ExportMyProducts downloads the caller's listings as an xlsx workbook
// GET /api/user/products/export
func (ctrl *ExportController) ExportMyProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to export listings", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	products, err := ctrl.productService.GetUserProducts(userID)
	if err != nil {
		log.Error("Failed to fetch listings for export", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "export products")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteProductsXLSX(&buf, products); err != nil {
		log.Error("Failed to build listings workbook", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to export listings")
		return
	}

	log.Info("Listings exported successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(products),
	})

	filename := fmt.Sprintf("listings_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
