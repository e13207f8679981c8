package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"motoclub/config"
)

// WhatsAppSender delivers booking confirmations through the WhatsApp
// Cloud API (graph.facebook.com messages endpoint).
type WhatsAppSender struct {
	token   string
	phoneID string
	apiBase string
	client  *http.Client
}

// NewWhatsAppSender returns nil when the Cloud API credentials are not
// configured; callers treat a nil sender as a disabled channel.
func NewWhatsAppSender() *WhatsAppSender {
	cfg := config.AppConfig
	if cfg.WhatsAppToken == "" || cfg.WhatsAppPhoneID == "" {
		return nil
	}
	return &WhatsAppSender{
		token:   cfg.WhatsAppToken,
		phoneID: cfg.WhatsAppPhoneID,
		apiBase: cfg.WhatsAppAPIBase,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type whatsAppText struct {
	Body string `json:"body"`
}

type whatsAppPayload struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsAppText `json:"text"`
}

func (w *WhatsAppSender) Send(ctx context.Context, msg BookingMessage) error {
	if msg.Phone == "" {
		return fmt.Errorf("booking %s has no phone number", msg.BookingID)
	}

	body := fmt.Sprintf(
		"Hi %s! Your booking for %s is confirmed. Ref: %s, seats: %d, paid: ₹%.2f. Ride safe!",
		msg.Name, msg.OfferingTitle, msg.BookingID, msg.Seats, msg.Amount,
	)
	payload, err := json.Marshal(whatsAppPayload{
		MessagingProduct: "whatsapp",
		To:               msg.Phone,
		Type:             "text",
		Text:             whatsAppText{Body: body},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", w.apiBase, w.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+w.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp api returned %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}
