package payment

import (
	"fmt"
	"math"

	"motoclub/config"

	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
)

// GatewayOrder is the provider-side order a booking references until
// payment is confirmed.
type GatewayOrder struct {
	OrderID  string
	Amount   float64
	Currency string
	KeyID    string
}

// Gateway creates provider-side orders and verifies payment callbacks.
type Gateway interface {
	CreateOrder(amount float64, currency, receipt string, notes map[string]interface{}) (*GatewayOrder, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}

// RazorpayGateway is the production Gateway backed by the Razorpay SDK.
type RazorpayGateway struct {
	client *razorpay.Client
	keyID  string
	secret string
	logger *zap.Logger
}

func NewRazorpayGateway(logger *zap.Logger) *RazorpayGateway {
	cfg := config.AppConfig
	return &RazorpayGateway{
		client: razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpaySecret),
		keyID:  cfg.RazorpayKeyID,
		secret: cfg.RazorpaySecret,
		logger: logger,
	}
}

// CreateOrder registers an order with the gateway for the given amount.
// Razorpay amounts are integer paise.
func (g *RazorpayGateway) CreateOrder(amount float64, currency, receipt string, notes map[string]interface{}) (*GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":   int64(math.Round(amount * 100)),
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("gateway order create failed: %w", err)
	}
	orderID, ok := order["id"].(string)
	if !ok || orderID == "" {
		return nil, fmt.Errorf("gateway order create returned no id")
	}

	g.logger.Info("gateway order created",
		zap.String("order_id", orderID),
		zap.Float64("amount", amount),
		zap.String("currency", currency),
	)
	return &GatewayOrder{
		OrderID:  orderID,
		Amount:   amount,
		Currency: currency,
		KeyID:    g.keyID,
	}, nil
}

// VerifyPaymentSignature checks the callback signature against the
// configured gateway secret.
func (g *RazorpayGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return VerifySignature(orderID, paymentID, signature, g.secret)
}
