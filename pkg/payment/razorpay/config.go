package razorpay

// Config represents the configuration for the Razorpay client
type Config struct {
	// KeyID is the public API key identifier
	KeyID string

	// KeySecret is the private API key used for basic auth and signature checks
	KeySecret string

	// BaseURL is the Razorpay API base URL
	BaseURL string

	// Currency is the ISO currency code used for provider orders
	Currency string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.KeyID == "" {
		return ErrInvalidRequest
	}
	if c.KeySecret == "" {
		return ErrInvalidRequest
	}
	if c.BaseURL == "" {
		return ErrInvalidRequest
	}
	if c.Currency == "" {
		return ErrInvalidRequest
	}
	return nil
}
