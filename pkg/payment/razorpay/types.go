package razorpay

// CreateOrderRequest represents a request to create a provider order
type CreateOrderRequest struct {
	// Amount is the order amount in the smallest currency unit (cents)
	Amount int64 `json:"amount"`

	// Currency is the ISO currency code
	Currency string `json:"currency"`

	// Receipt is a merchant-side reference for the order
	Receipt string `json:"receipt"`
}

// Order represents a provider order
type Order struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

// ErrorResponse represents a provider API error response
type ErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}
