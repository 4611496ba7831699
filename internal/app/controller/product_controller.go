package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/marketloop/marketloop-backend/internal/app/model"
	"github.com/marketloop/marketloop-backend/internal/app/service"
	apperrors "github.com/marketloop/marketloop-backend/internal/errors"
	"github.com/marketloop/marketloop-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type CreateProductRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description"`
	CategoryID  *uint  `json:"category_id"`
	PriceCents  int64  `json:"price_cents" binding:"required,gt=0"`
	ImageURL    string `json:"image_url"`
	Condition   string `json:"condition" binding:"omitempty,oneof=new like_new good fair poor"`
	Location    string `json:"location"`
}

type UpdateProductRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	CategoryID  *uint   `json:"category_id"`
	PriceCents  *int64  `json:"price_cents" binding:"omitempty,gt=0"`
	ImageURL    *string `json:"image_url"`
	Condition   *string `json:"condition" binding:"omitempty,oneof=new like_new good fair poor"`
	Location    *string `json:"location"`
	Status      *string `json:"status" binding:"omitempty,oneof=active sold"`
}

// parseIDParam reads a numeric :id path parameter.
func parseIDParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

// GetProducts lists active listings with optional filters
// GET /api/products?category_id=&search=&limit=&offset=
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	// The documented name is categoryId; snake_case is accepted too
	raw := c.Query("categoryId")
	if raw == "" {
		raw = c.Query("category_id")
	}

	var categoryID *uint
	if raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			log.Warn("Invalid category_id filter", map[string]interface{}{
				"category_id": raw,
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
			return
		}
		id := uint(parsed)
		categoryID = &id
	}

	search := c.Query("search")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	products, err := ctrl.productService.GetProducts(categoryID, search, limit, offset)
	if err != nil {
		log.Error("Failed to fetch products", err, map[string]interface{}{
			"search": search,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list products")
		return
	}

	log.Info("Products fetched successfully", map[string]interface{}{
		"count":  len(products),
		"search": search,
	})

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns a single listing
// GET /api/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Listing not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// GetMyProducts lists the caller's own listings, any status
// GET /api/user/products
func (ctrl *ProductController) GetMyProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to own listings", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	products, err := ctrl.productService.GetUserProducts(userID)
	if err != nil {
		log.Error("Failed to fetch user's listings", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list own products")
		return
	}

	log.Info("User's listings fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(products),
	})

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// CreateProduct creates a new listing owned by the caller
// POST /api/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to create product", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create product request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid listing details")
		return
	}

	product := &model.Product{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
		Condition:   req.Condition,
		Location:    req.Location,
	}

	created, err := ctrl.productService.CreateProduct(userID, product)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			log.Warn("Create product failed: category not found", map[string]interface{}{
				"user_id":     userID,
				"category_id": req.CategoryID,
			})
			apperrors.BadRequest(c, apperrors.ProductInvalidCategory, "Category not found")
			return
		}
		if errors.Is(err, service.ErrInvalidPrice) {
			log.Warn("Create product failed: invalid price", map[string]interface{}{
				"user_id":     userID,
				"price_cents": req.PriceCents,
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Price must be positive")
			return
		}
		log.Error("Failed to create product", err, map[string]interface{}{
			"user_id": userID,
			"title":   req.Title,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create product")
		return
	}

	log.Info("Product created successfully", map[string]interface{}{
		"user_id":    userID,
		"product_id": created.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Listing created successfully",
		"product": created,
	})
}

// UpdateProduct updates a listing owned by the caller
// PATCH /api/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to update product", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update product request", map[string]interface{}{
			"user_id":    userID,
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid listing details")
		return
	}

	update := service.ProductUpdate{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
		Condition:   req.Condition,
		Location:    req.Location,
	}
	if req.Status != nil {
		status := model.ProductStatus(*req.Status)
		update.Status = &status
	}

	product, err := ctrl.productService.UpdateProduct(userID, id, update)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for update", map[string]interface{}{
				"user_id":    userID,
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Listing not found")
			return
		}
		if errors.Is(err, service.ErrNotProductOwner) {
			log.Warn("Product update denied: not the owner", map[string]interface{}{
				"user_id":    userID,
				"product_id": id,
			})
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "Only the listing owner can update it")
			return
		}
		if errors.Is(err, service.ErrInvalidCategory) {
			apperrors.BadRequest(c, apperrors.ProductInvalidCategory, "Category not found")
			return
		}
		if errors.Is(err, service.ErrInvalidPrice) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Price must be positive")
			return
		}
		log.Error("Failed to update product", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update product")
		return
	}

	log.Info("Product updated successfully", map[string]interface{}{
		"user_id":    userID,
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Listing updated successfully",
		"product": product,
	})
}

// DeleteProduct removes a listing owned by the caller
// DELETE /api/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to delete product", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := ctrl.productService.DeleteProduct(userID, id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for delete", map[string]interface{}{
				"user_id":    userID,
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Listing not found")
			return
		}
		if errors.Is(err, service.ErrNotProductOwner) {
			log.Warn("Product delete denied: not the owner", map[string]interface{}{
				"user_id":    userID,
				"product_id": id,
			})
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "Only the listing owner can delete it")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete product")
		return
	}

	log.Info("Product deleted successfully", map[string]interface{}{
		"user_id":    userID,
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Listing deleted successfully",
	})
}
