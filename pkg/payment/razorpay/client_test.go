package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		KeyID:     "rzp_test_key",
		KeySecret: "test-key-secret",
		BaseURL:   "https://api.razorpay.com/v1",
		Currency:  "USD",
	}
}

func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(testConfig())
	require.NoError(t, err)
	assert.NotNil(t, client)

	_, err = NewClient(Config{})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestVerifySignature(t *testing.T) {
	cfg := testConfig()
	client, err := NewClient(cfg)
	require.NoError(t, err)

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		wantErr   error
	}{
		{
			name:      "Valid signature",
			orderID:   "order_ABC123",
			paymentID: "pay_XYZ789",
			signature: signPayload(cfg.KeySecret, "order_ABC123", "pay_XYZ789"),
			wantErr:   nil,
		},
		{
			name:      "Signature for different order",
			orderID:   "order_ABC123",
			paymentID: "pay_XYZ789",
			signature: signPayload(cfg.KeySecret, "order_OTHER", "pay_XYZ789"),
			wantErr:   ErrInvalidSignature,
		},
		{
			name:      "Signature with wrong secret",
			orderID:   "order_ABC123",
			paymentID: "pay_XYZ789",
			signature: signPayload("wrong-secret", "order_ABC123", "pay_XYZ789"),
			wantErr:   ErrInvalidSignature,
		},
		{
			name:      "Empty signature",
			orderID:   "order_ABC123",
			paymentID: "pay_XYZ789",
			signature: "",
			wantErr:   ErrInvalidSignature,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.VerifySignature(tt.orderID, tt.paymentID, tt.signature)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
