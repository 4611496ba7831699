package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/marketloop/marketloop-backend/internal/app/model"
	"github.com/marketloop/marketloop-backend/internal/app/repository"
	"github.com/marketloop/marketloop-backend/pkg/logger"
	"github.com/marketloop/marketloop-backend/pkg/payment/razorpay"
	"gorm.io/gorm"
)

var ErrInvalidSignature = errors.New("invalid payment signature")

// CheckoutSession is returned to the client so it can open the
// provider's payment flow.
type CheckoutSession struct {
	ProviderOrderID string `json:"provider_order_id"`
	AmountCents     int64  `json:"amount_cents"`
	Currency        string `json:"currency"`
	KeyID           string `json:"key_id"`
}

type PaymentService interface {
	CreateCheckout(ctx context.Context, userID uint) (*CheckoutSession, error)
	VerifyAndPlaceOrder(ctx context.Context, userID uint, providerOrderID, paymentID, signature string) (*model.Order, error)
}

type paymentService struct {
	client   *razorpay.Client
	cartRepo repository.CartRepository
	orderSvc OrderService
}

func NewPaymentService(
	client *razorpay.Client,
	cartRepo repository.CartRepository,
	orderSvc OrderService,
) PaymentService {
	return &paymentService{
		client:   client,
		cartRepo: cartRepo,
		orderSvc: orderSvc,
	}
}

// CreateCheckout opens a provider order for the current cart total.
func (s *paymentService) CreateCheckout(ctx context.Context, userID uint) (*CheckoutSession, error) {
	logger.Info("Creating payment checkout", map[string]interface{}{
		"user_id": userID,
	})

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Checkout failed: no cart", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrEmptyCart
		}
		return nil, err
	}

	items, err := s.cartRepo.FindItems(cart.ID)
	if err != nil {
		logger.Error("Failed to fetch cart items for checkout", err, map[string]interface{}{
			"user_id": userID,
			"cart_id": cart.ID,
		})
		return nil, err
	}

	if len(items) == 0 {
		logger.Warn("Checkout failed: cart is empty", map[string]interface{}{
			"user_id": userID,
			"cart_id": cart.ID,
		})
		return nil, ErrEmptyCart
	}

	var totalCents int64
	for _, item := range items {
		totalCents += item.Product.PriceCents * int64(item.Quantity)
	}

	receipt := fmt.Sprintf("cart_%d_user_%d", cart.ID, userID)
	providerOrder, err := s.client.CreateOrder(ctx, totalCents, receipt)
	if err != nil {
		logger.Error("Failed to create provider order", err, map[string]interface{}{
			"user_id":     userID,
			"total_cents": totalCents,
		})
		return nil, err
	}

	logger.Info("Payment checkout created successfully", map[string]interface{}{
		"user_id":           userID,
		"provider_order_id": providerOrder.ID,
		"total_cents":       totalCents,
	})

	return &CheckoutSession{
		ProviderOrderID: providerOrder.ID,
		AmountCents:     totalCents,
		Currency:        providerOrder.Currency,
		KeyID:           s.client.GetConfig().KeyID,
	}, nil
}

// VerifyAndPlaceOrder checks the provider signature and, when valid,
// runs the same checkout path as a direct order.
func (s *paymentService) VerifyAndPlaceOrder(ctx context.Context, userID uint, providerOrderID, paymentID, signature string) (*model.Order, error) {
	logger.Info("Verifying payment signature", map[string]interface{}{
		"user_id":           userID,
		"provider_order_id": providerOrderID,
	})

	if err := s.client.VerifySignature(providerOrderID, paymentID, signature); err != nil {
		logger.Warn("Payment signature verification failed", map[string]interface{}{
			"user_id":           userID,
			"provider_order_id": providerOrderID,
		})
		return nil, ErrInvalidSignature
	}

	order, err := s.orderSvc.PlaceOrder(userID, &PaymentInfo{
		Provider:  "razorpay",
		OrderID:   providerOrderID,
		PaymentID: paymentID,
	})
	if err != nil {
		logger.Error("Failed to place order after payment", err, map[string]interface{}{
			"user_id":           userID,
			"provider_order_id": providerOrderID,
		})
		return nil, err
	}

	logger.Info("Paid order placed successfully", map[string]interface{}{
		"user_id":           userID,
		"order_id":          order.ID,
		"provider_order_id": providerOrderID,
	})

	return order, nil
}
