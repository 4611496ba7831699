package razorpay

import "errors"

var (
	// ErrInvalidRequest is returned when the request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrPaymentFailed is returned when the payment process fails
	ErrPaymentFailed = errors.New("payment failed")

	// ErrInvalidSignature is returned when the payment signature does not verify
	ErrInvalidSignature = errors.New("invalid payment signature")

	// ErrNetworkError is returned when there's a network communication error
	ErrNetworkError = errors.New("network error")

	// ErrUnauthorized is returned when the API credentials are invalid
	ErrUnauthorized = errors.New("unauthorized: invalid API credentials")
)
