package repository

import (
	"fmt"

	"github.com/marketloop/marketloop-backend/internal/app/model"
	"github.com/marketloop/marketloop-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultProductLimit caps browse and search results when no limit is given.
const DefaultProductLimit = 20

type ProductFilter struct {
	CategoryID *uint
	OwnerID    *uint
	Search     string
	Status     *model.ProductStatus
	Limit      int
	Offset     int
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindByIDForUpdate(tx *gorm.DB, id uint) (*model.Product, error)
	FindByOwnerID(ownerID uint) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"title":       product.Title,
		"owner_id":    product.OwnerID,
		"category_id": product.CategoryID,
		"price_cents": product.PriceCents,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"title":    product.Title,
			"owner_id": product.OwnerID,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"title":      product.Title,
		"owner_id":   product.OwnerID,
	})
	return nil
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"category_id": filter.CategoryID,
		"owner_id":    filter.OwnerID,
		"search":      filter.Search,
		"status":      filter.Status,
		"limit":       filter.Limit,
		"offset":      filter.Offset,
	})

	query := r.db.Model(&model.Product{}).
		Preload("Category").
		Preload("Owner")

	if filter.Status != nil {
		query = query.Where("products.status = ?", *filter.Status)
	}

	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}

	if filter.OwnerID != nil {
		query = query.Where("products.owner_id = ?", *filter.OwnerID)
	}

	if filter.Search != "" {
		// LOWER on both sides keeps the match case-insensitive on
		// SQLite and PostgreSQL alike.
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where("LOWER(products.title) LIKE LOWER(?)", like)
	}

	query = query.Order("products.created_at DESC").Order("products.id DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultProductLimit
	}
	query = query.Limit(limit)

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	err := r.db.Preload("Category").Preload("Owner").First(&product, id).Error
	if err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	logger.Debug("Product found by ID in database", map[string]interface{}{
		"product_id": product.ID,
		"title":      product.Title,
	})
	return &product, nil
}

// FindByIDForUpdate loads a product inside the given transaction with a
// row lock, for checkout price snapshots.
func (r *productRepository) FindByIDForUpdate(tx *gorm.DB, id uint) (*model.Product, error) {
	var product model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, id).Error
	if err != nil {
		logger.Error("Failed to find product for update in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByOwnerID(ownerID uint) ([]model.Product, error) {
	logger.Debug("Finding products by owner in database", map[string]interface{}{
		"owner_id": ownerID,
	})

	var products []model.Product
	err := r.db.Where("owner_id = ?", ownerID).
		Preload("Category").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to find products by owner in database", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		return nil, err
	}

	logger.Debug("Products found by owner in database", map[string]interface{}{
		"owner_id": ownerID,
		"count":    len(products),
	})
	return products, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id":  product.ID,
		"title":       product.Title,
		"price_cents": product.PriceCents,
		"status":      product.Status,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	logger.Debug("Product updated in database", map[string]interface{}{
		"product_id": product.ID,
		"title":      product.Title,
	})
	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Debug("Product deleted from database", map[string]interface{}{
		"product_id": id,
	})
	return nil
}
