package service

import (
	"errors"

	"github.com/marketloop/marketloop-backend/internal/app/model"
	"github.com/marketloop/marketloop-backend/internal/app/repository"
	"github.com/marketloop/marketloop-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrProductNotActive = errors.New("product is no longer active")
)

// CartSummary is the cart view returned to clients: items plus the
// running total in cents.
type CartSummary struct {
	CartID     uint             `json:"cart_id"`
	Items      []model.CartItem `json:"items"`
	TotalCents int64            `json:"total_cents"`
}

type CartService interface {
	GetCart(userID uint) (*CartSummary, error)
	AddToCart(userID, productID uint, quantity int) (*CartSummary, error)
	UpdateQuantity(userID, productID uint, quantity int) (*CartSummary, error)
	RemoveFromCart(userID, productID uint) (*CartSummary, error)
	ClearCart(userID uint) (*CartSummary, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the user's cart. A user with no cart yet gets an
// empty summary without creating a cart row.
func (s *cartService) GetCart(userID uint) (*CartSummary, error) {
	logger.Debug("Fetching cart", map[string]interface{}{
		"user_id": userID,
	})

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CartSummary{Items: []model.CartItem{}}, nil
		}
		logger.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	return s.buildSummary(cart.ID)
}

// AddToCart puts a product in the cart, creating the cart on first use.
// Adding a product already in the cart increments its quantity.
func (s *cartService) AddToCart(userID, productID uint, quantity int) (*CartSummary, error) {
	if quantity <= 0 {
		quantity = 1
	}

	logger.Info("Adding product to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Add to cart failed: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product for cart", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	if product.Status != model.ProductStatusActive {
		logger.Warn("Add to cart failed: product not active", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"status":     product.Status,
		})
		return nil, ErrProductNotActive
	}

	cart, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.AddItem(cart.ID, productID, quantity); err != nil {
		logger.Error("Failed to add product to cart", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	logger.Info("Product added to cart successfully", map[string]interface{}{
		"user_id":    userID,
		"cart_id":    cart.ID,
		"product_id": productID,
		"quantity":   quantity,
	})

	return s.buildSummary(cart.ID)
}

// UpdateQuantity sets the quantity of a cart line. A quantity of zero
// or less removes the line.
func (s *cartService) UpdateQuantity(userID, productID uint, quantity int) (*CartSummary, error) {
	logger.Info("Updating cart item quantity", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity <= 0 {
		return s.RemoveFromCart(userID, productID)
	}

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Quantity update failed: no cart", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	if err := s.cartRepo.UpdateItemQuantity(cart.ID, productID, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Quantity update failed: item not in cart", map[string]interface{}{
				"user_id":    userID,
				"cart_id":    cart.ID,
				"product_id": productID,
			})
			return nil, ErrCartItemNotFound
		}
		logger.Error("Failed to update cart item quantity", err, map[string]interface{}{
			"cart_id":    cart.ID,
			"product_id": productID,
		})
		return nil, err
	}

	logger.Info("Cart item quantity updated successfully", map[string]interface{}{
		"user_id":    userID,
		"cart_id":    cart.ID,
		"product_id": productID,
		"quantity":   quantity,
	})

	return s.buildSummary(cart.ID)
}

// RemoveFromCart deletes the line for a product. Removing a product
// that is not in the cart, or removing from a user with no cart, is a
// no-op rather than an error.
func (s *cartService) RemoveFromCart(userID, productID uint) (*CartSummary, error) {
	logger.Info("Removing product from cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CartSummary{Items: []model.CartItem{}}, nil
		}
		return nil, err
	}

	if err := s.cartRepo.DeleteItem(cart.ID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Debug("Product was not in cart, nothing to remove", map[string]interface{}{
				"user_id":    userID,
				"cart_id":    cart.ID,
				"product_id": productID,
			})
			return s.buildSummary(cart.ID)
		}
		logger.Error("Failed to remove product from cart", err, map[string]interface{}{
			"cart_id":    cart.ID,
			"product_id": productID,
		})
		return nil, err
	}

	logger.Info("Product removed from cart successfully", map[string]interface{}{
		"user_id":    userID,
		"cart_id":    cart.ID,
		"product_id": productID,
	})

	return s.buildSummary(cart.ID)
}

// ClearCart empties the cart. A user with no cart gets an empty
// summary back without error.
func (s *cartService) ClearCart(userID uint) (*CartSummary, error) {
	logger.Info("Clearing cart", map[string]interface{}{
		"user_id": userID,
	})

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CartSummary{Items: []model.CartItem{}}, nil
		}
		return nil, err
	}

	if err := s.cartRepo.DeleteItemsByCartID(cart.ID); err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"cart_id": cart.ID,
		})
		return nil, err
	}

	logger.Info("Cart cleared successfully", map[string]interface{}{
		"user_id": userID,
		"cart_id": cart.ID,
	})

	return s.buildSummary(cart.ID)
}

func (s *cartService) buildSummary(cartID uint) (*CartSummary, error) {
	items, err := s.cartRepo.FindItems(cartID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, item := range items {
		total += item.Product.PriceCents * int64(item.Quantity)
	}

	return &CartSummary{
		CartID:     cartID,
		Items:      items,
		TotalCents: total,
	}, nil
}
