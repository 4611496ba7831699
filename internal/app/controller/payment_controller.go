package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marketloop/marketloop-backend/internal/app/service"
	apperrors "github.com/marketloop/marketloop-backend/internal/errors"
	"github.com/marketloop/marketloop-backend/internal/middleware"
	"github.com/marketloop/marketloop-backend/pkg/payment/razorpay"
)

type PaymentController struct {
	paymentService service.PaymentService
}

func NewPaymentController(paymentService service.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

type VerifyPaymentRequest struct {
	ProviderOrderID string `json:"provider_order_id" binding:"required"`
	PaymentID       string `json:"payment_id" binding:"required"`
	Signature       string `json:"signature" binding:"required"`
}

// CreateCheckout opens a provider payment for the caller's cart total
// POST /api/payments/checkout
func (ctrl *PaymentController) CreateCheckout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to create checkout", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	session, err := ctrl.paymentService.CreateCheckout(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			log.Warn("Checkout rejected: cart is empty", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.BadRequest(c, apperrors.CartEmpty, "Your cart is empty")
			return
		}
		if errors.Is(err, razorpay.ErrNetworkError) || errors.Is(err, razorpay.ErrUnauthorized) {
			log.Error("Provider checkout failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.PaymentProviderError, "Payment provider is unavailable")
			return
		}
		log.Error("Failed to create checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create checkout")
		return
	}

	log.Info("Checkout created successfully", map[string]interface{}{
		"user_id":           userID,
		"provider_order_id": session.ProviderOrderID,
		"amount_cents":      session.AmountCents,
	})

	c.JSON(http.StatusCreated, gin.H{
		"checkout": session,
	})
}

// VerifyPayment confirms a provider payment and places the order
// POST /api/payments/verify
func (ctrl *PaymentController) VerifyPayment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to verify payment", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid verify payment request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid payment details")
		return
	}

	order, err := ctrl.paymentService.VerifyAndPlaceOrder(c.Request.Context(), userID, req.ProviderOrderID, req.PaymentID, req.Signature)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSignature) {
			log.Warn("Payment verification failed: invalid signature", map[string]interface{}{
				"user_id":           userID,
				"provider_order_id": req.ProviderOrderID,
			})
			apperrors.BadRequest(c, apperrors.PaymentSignatureInvalid, "Payment could not be verified")
			return
		}
		if errors.Is(err, service.ErrEmptyCart) {
			log.Warn("Payment verified but cart is empty", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.BadRequest(c, apperrors.CartEmpty, "Your cart is empty")
			return
		}
		log.Error("Failed to verify payment", err, map[string]interface{}{
			"user_id":           userID,
			"provider_order_id": req.ProviderOrderID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "verify payment")
		return
	}

	log.Info("Payment verified and order placed", map[string]interface{}{
		"user_id":  userID,
		"order_id": order.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment verified and order placed",
		"order":   order,
	})
}
