package repository

import (
	"time"

	"github.com/marketloop/marketloop-backend/internal/app/model"
	"github.com/marketloop/marketloop-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	GetOrCreate(userID uint) (*model.Cart, error)
	FindByUserID(userID uint) (*model.Cart, error)
	FindItems(cartID uint) ([]model.CartItem, error)
	FindItem(cartID, productID uint) (*model.CartItem, error)
	AddItem(cartID, productID uint, quantity int) error
	UpdateItemQuantity(cartID, productID uint, quantity int) error
	DeleteItem(cartID, productID uint) error
	DeleteItemsByCartID(cartID uint) error
	DeleteItemsByProductID(productID uint) error
	DeleteStaleItems(olderThan time.Time) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// GetOrCreate returns the user's cart, creating it on first use.
func (r *cartRepository) GetOrCreate(userID uint) (*model.Cart, error) {
	logger.Debug("Getting or creating cart in database", map[string]interface{}{
		"user_id": userID,
	})

	var cart model.Cart
	err := r.db.Where(model.Cart{UserID: userID}).FirstOrCreate(&cart).Error
	if err != nil {
		logger.Error("Failed to get or create cart in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Cart ready in database", map[string]interface{}{
		"cart_id": cart.ID,
		"user_id": userID,
	})
	return &cart, nil
}

func (r *cartRepository) FindByUserID(userID uint) (*model.Cart, error) {
	logger.Debug("Finding cart by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var cart model.Cart
	err := r.db.Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find cart by user ID in database", err, map[string]interface{}{
				"user_id": userID,
			})
		}
		return nil, err
	}

	logger.Debug("Cart found by user ID in database", map[string]interface{}{
		"cart_id": cart.ID,
		"user_id": userID,
	})
	return &cart, nil
}

func (r *cartRepository) FindItems(cartID uint) ([]model.CartItem, error) {
	logger.Debug("Finding cart items in database", map[string]interface{}{
		"cart_id": cartID,
	})

	var items []model.CartItem
	err := r.db.Where("cart_id = ?", cartID).
		Preload("Product").
		Preload("Product.Category").
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find cart items in database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return nil, err
	}

	logger.Debug("Cart items found in database", map[string]interface{}{
		"cart_id": cartID,
		"count":   len(items),
	})
	return items, nil
}

func (r *cartRepository) FindItem(cartID, productID uint) (*model.CartItem, error) {
	logger.Debug("Finding cart item in database", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
	})

	var item model.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find cart item in database", err, map[string]interface{}{
				"cart_id":    cartID,
				"product_id": productID,
			})
		}
		return nil, err
	}

	logger.Debug("Cart item found in database", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
		"quantity":   item.Quantity,
	})
	return &item, nil
}

// AddItem merges the quantity into an existing row with an atomic
// increment, or inserts a new row when the product is not in the cart
// yet. Two concurrent adds for the same product both land as
// increments, so quantities always sum.
func (r *cartRepository) AddItem(cartID, productID uint, quantity int) error {
	logger.Debug("Adding cart item in database", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
		"quantity":   quantity,
	})

	res := r.db.Model(&model.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", gorm.Expr("quantity + ?", quantity))
	if res.Error != nil {
		logger.Error("Failed to increment cart item quantity in database", res.Error, map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
		})
		return res.Error
	}

	if res.RowsAffected == 0 {
		item := model.CartItem{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := r.db.Create(&item).Error; err != nil {
			// A concurrent insert may have won the race; retry as
			// an increment before giving up.
			retry := r.db.Model(&model.CartItem{}).
				Where("cart_id = ? AND product_id = ?", cartID, productID).
				Update("quantity", gorm.Expr("quantity + ?", quantity))
			if retry.Error != nil || retry.RowsAffected == 0 {
				logger.Error("Failed to add cart item in database", err, map[string]interface{}{
					"cart_id":    cartID,
					"product_id": productID,
				})
				return err
			}
		}
	}

	logger.Debug("Cart item added in database", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
	})
	return nil
}

func (r *cartRepository) UpdateItemQuantity(cartID, productID uint, quantity int) error {
	logger.Debug("Updating cart item quantity in database", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
		"quantity":   quantity,
	})

	res := r.db.Model(&model.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", quantity)
	if res.Error != nil {
		logger.Error("Failed to update cart item quantity in database", res.Error, map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
		})
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Cart item quantity updated in database", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
		"quantity":   quantity,
	})
	return nil
}

func (r *cartRepository) DeleteItem(cartID, productID uint) error {
	logger.Debug("Deleting cart item from database", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
	})

	res := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&model.CartItem{})
	if res.Error != nil {
		logger.Error("Failed to delete cart item from database", res.Error, map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
		})
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Cart item deleted from database", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
	})
	return nil
}

func (r *cartRepository) DeleteItemsByCartID(cartID uint) error {
	logger.Debug("Deleting cart items by cart ID from database", map[string]interface{}{
		"cart_id": cartID,
	})

	if err := r.db.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to delete cart items by cart ID from database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}

	logger.Debug("Cart items deleted by cart ID from database", map[string]interface{}{
		"cart_id": cartID,
	})
	return nil
}

// DeleteItemsByProductID removes a deleted listing from every cart.
func (r *cartRepository) DeleteItemsByProductID(productID uint) error {
	logger.Debug("Deleting cart items by product ID from database", map[string]interface{}{
		"product_id": productID,
	})

	if err := r.db.Where("product_id = ?", productID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to delete cart items by product ID from database", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}

	logger.Debug("Cart items deleted by product ID from database", map[string]interface{}{
		"product_id": productID,
	})
	return nil
}

// DeleteStaleItems prunes cart items untouched since the cutoff.
func (r *cartRepository) DeleteStaleItems(olderThan time.Time) (int64, error) {
	logger.Debug("Deleting stale cart items from database", map[string]interface{}{
		"older_than": olderThan,
	})

	res := r.db.Where("updated_at < ?", olderThan).Delete(&model.CartItem{})
	if res.Error != nil {
		logger.Error("Failed to delete stale cart items from database", res.Error, map[string]interface{}{
			"older_than": olderThan,
		})
		return 0, res.Error
	}

	logger.Debug("Stale cart items deleted from database", map[string]interface{}{
		"deleted": res.RowsAffected,
	})
	return res.RowsAffected, nil
}
