package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const secret = "test_secret"

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		want      bool
	}{
		{
			name:      "valid signature",
			orderID:   "order_abc123",
			paymentID: "pay_xyz789",
			signature: sign("order_abc123", "pay_xyz789", secret),
			want:      true,
		},
		{
			name:      "signature for different payment",
			orderID:   "order_abc123",
			paymentID: "pay_xyz789",
			signature: sign("order_abc123", "pay_other", secret),
			want:      false,
		},
		{
			name:      "signature under wrong secret",
			orderID:   "order_abc123",
			paymentID: "pay_xyz789",
			signature: sign("order_abc123", "pay_xyz789", "wrong_secret"),
			want:      false,
		},
		{
			name:      "empty signature",
			orderID:   "order_abc123",
			paymentID: "pay_xyz789",
			signature: "",
			want:      false,
		},
		{
			name:      "tampered hex digest",
			orderID:   "order_abc123",
			paymentID: "pay_xyz789",
			signature: "deadbeef" + sign("order_abc123", "pay_xyz789", secret)[8:],
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerifySignature(tt.orderID, tt.paymentID, tt.signature, secret)
			if got != tt.want {
				t.Errorf("VerifySignature() = %v, want %v", got, tt.want)
			}
		})
	}
}
