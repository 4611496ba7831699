package service

import (
	"errors"

	"github.com/marketloop/marketloop-backend/internal/app/model"
	"github.com/marketloop/marketloop-backend/internal/app/repository"
	"github.com/marketloop/marketloop-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNotProductOwner = errors.New("not the product owner")
	ErrInvalidCategory = errors.New("category not found")
	ErrInvalidPrice    = errors.New("price must be positive")
)

// ProductUpdate carries partial listing changes. Nil fields are left
// untouched.
type ProductUpdate struct {
	Title       *string
	Description *string
	CategoryID  *uint
	PriceCents  *int64
	ImageURL    *string
	Condition   *string
	Location    *string
	Status      *model.ProductStatus
}

type ProductService interface {
	CreateProduct(ownerID uint, product *model.Product) (*model.Product, error)
	GetProducts(categoryID *uint, search string, limit, offset int) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	GetUserProducts(ownerID uint) ([]model.Product, error)
	UpdateProduct(userID, productID uint, update ProductUpdate) (*model.Product, error)
	DeleteProduct(userID, productID uint) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cartRepo     repository.CartRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	cartRepo repository.CartRepository,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cartRepo:     cartRepo,
	}
}

func (s *productService) CreateProduct(ownerID uint, product *model.Product) (*model.Product, error) {
	logger.Info("Creating product listing", map[string]interface{}{
		"owner_id":    ownerID,
		"title":       product.Title,
		"price_cents": product.PriceCents,
	})

	if product.PriceCents <= 0 {
		logger.Warn("Product creation failed: invalid price", map[string]interface{}{
			"owner_id":    ownerID,
			"price_cents": product.PriceCents,
		})
		return nil, ErrInvalidPrice
	}

	if product.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*product.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Product creation failed: category not found", map[string]interface{}{
					"owner_id":    ownerID,
					"category_id": *product.CategoryID,
				})
				return nil, ErrInvalidCategory
			}
			return nil, err
		}
	}

	product.OwnerID = ownerID
	if product.Condition == "" {
		product.Condition = "good"
	}
	if product.Status == "" {
		product.Status = model.ProductStatusActive
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product listing", err, map[string]interface{}{
			"owner_id": ownerID,
			"title":    product.Title,
		})
		return nil, err
	}

	logger.Info("Product listing created successfully", map[string]interface{}{
		"product_id": product.ID,
		"owner_id":   ownerID,
		"title":      product.Title,
	})

	return s.productRepo.FindByID(product.ID)
}

// GetProducts returns active listings, newest first. Search matches the
// title case-insensitively.
func (s *productService) GetProducts(categoryID *uint, search string, limit, offset int) ([]model.Product, error) {
	logger.Debug("Fetching product listings", map[string]interface{}{
		"category_id": categoryID,
		"search":      search,
		"limit":       limit,
		"offset":      offset,
	})

	active := model.ProductStatusActive
	products, err := s.productRepo.FindWithFilter(repository.ProductFilter{
		CategoryID: categoryID,
		Search:     search,
		Status:     &active,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		logger.Error("Failed to fetch product listings", err, map[string]interface{}{
			"search": search,
		})
		return nil, err
	}

	logger.Debug("Product listings fetched successfully", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	logger.Debug("Fetching product by ID", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	return product, nil
}

func (s *productService) GetUserProducts(ownerID uint) ([]model.Product, error) {
	logger.Debug("Fetching user's product listings", map[string]interface{}{
		"owner_id": ownerID,
	})

	products, err := s.productRepo.FindByOwnerID(ownerID)
	if err != nil {
		logger.Error("Failed to fetch user's product listings", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		return nil, err
	}

	logger.Debug("User's product listings fetched successfully", map[string]interface{}{
		"owner_id": ownerID,
		"count":    len(products),
	})
	return products, nil
}

func (s *productService) UpdateProduct(userID, productID uint, update ProductUpdate) (*model.Product, error) {
	logger.Info("Updating product listing", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product update failed: not found", map[string]interface{}{
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product for update", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	if product.OwnerID != userID {
		logger.Warn("Product update denied: ownership mismatch", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"owner_id":   product.OwnerID,
		})
		return nil, ErrNotProductOwner
	}

	if update.PriceCents != nil && *update.PriceCents <= 0 {
		logger.Warn("Product update failed: invalid price", map[string]interface{}{
			"product_id":  productID,
			"price_cents": *update.PriceCents,
		})
		return nil, ErrInvalidPrice
	}

	if update.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*update.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Product update failed: category not found", map[string]interface{}{
					"product_id":  productID,
					"category_id": *update.CategoryID,
				})
				return nil, ErrInvalidCategory
			}
			return nil, err
		}
		product.CategoryID = update.CategoryID
	}

	if update.Title != nil {
		product.Title = *update.Title
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.PriceCents != nil {
		product.PriceCents = *update.PriceCents
	}
	if update.ImageURL != nil {
		product.ImageURL = *update.ImageURL
	}
	if update.Condition != nil {
		product.Condition = *update.Condition
	}
	if update.Location != nil {
		product.Location = *update.Location
	}
	if update.Status != nil {
		product.Status = *update.Status
	}

	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product listing", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	logger.Info("Product listing updated successfully", map[string]interface{}{
		"product_id": product.ID,
		"owner_id":   product.OwnerID,
	})

	return s.productRepo.FindByID(product.ID)
}

// DeleteProduct removes a listing and drops it from every cart. Order
// history keeps its snapshot rows.
func (s *productService) DeleteProduct(userID, productID uint) error {
	logger.Info("Deleting product listing", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product delete failed: not found", map[string]interface{}{
				"product_id": productID,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to fetch product for delete", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}

	if product.OwnerID != userID {
		logger.Warn("Product delete denied: ownership mismatch", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"owner_id":   product.OwnerID,
		})
		return ErrNotProductOwner
	}

	if err := s.cartRepo.DeleteItemsByProductID(productID); err != nil {
		logger.Error("Failed to remove deleted product from carts", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}

	if err := s.productRepo.Delete(productID); err != nil {
		logger.Error("Failed to delete product listing", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}

	logger.Info("Product listing deleted successfully", map[string]interface{}{
		"product_id": productID,
		"owner_id":   userID,
	})
	return nil
}
