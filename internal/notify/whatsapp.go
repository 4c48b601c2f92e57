// Package notify delivers purchase-confirmation messages to buyers through
// the WhatsApp Business API. Delivery is advisory: failures are logged and
// returned but never block or roll back a settlement.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lottostack/lottery-booking/internal/queue"
)

// Sender posts text messages to the Meta graph API. A zero AccessToken or
// PhoneNumberID disables delivery; Send then reports a configuration error
// without making any network call.
type Sender struct {
	AccessToken   string
	PhoneNumberID string
	BaseURL       string // override for tests; default https://graph.facebook.com/v18.0
	Client        *http.Client
}

// NewSender builds a Sender with a bounded-timeout HTTP client.
func NewSender(accessToken, phoneNumberID string) *Sender {
	return &Sender{
		AccessToken:   accessToken,
		PhoneNumberID: phoneNumberID,
		Client:        &http.Client{Timeout: 10 * time.Second},
	}
}

// FormatPhone normalizes a stored phone number for the messaging API:
// non-digits are stripped and a bare 10-digit local number gets the India
// country code prefixed.
func FormatPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	digits := b.String()
	if len(digits) == 10 && !strings.HasPrefix(digits, "91") {
		return "91" + digits
	}
	return digits
}

// Message renders the confirmation text for one settled purchase.
func Message(name string, ev queue.OrderConfirmedEvent) string {
	if name == "" {
		name = "Customer"
	}
	return fmt.Sprintf(`Lottery Ticket Confirmation

Hello %s!

Your lottery ticket purchase has been confirmed.

Details:
- Lottery: %s
- Ticket Numbers: %s
- Draw Date: %s
- Transaction ID: %s

Payment:
- Price per Ticket: Rs.%d
- Total Amount: Rs.%d

Good luck!

Thank you for choosing us.`,
		name, ev.LotteryName, strings.Join(ev.TicketNumbers, ", "),
		ev.DrawDate, ev.TransactionID, ev.TicketPrice, ev.TotalAmount)
}

type textPayload struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		PreviewURL bool   `json:"preview_url"`
		Body       string `json:"body"`
	} `json:"text"`
}

// Send delivers a rendered message to the given (already formatted) phone
// number. Non-2xx responses are returned as errors with a body excerpt so
// the consumer can log what the API rejected.
func (s *Sender) Send(ctx context.Context, phone, body string) error {
	if s.AccessToken == "" || s.PhoneNumberID == "" {
		return fmt.Errorf("whatsapp sender not configured")
	}
	base := s.BaseURL
	if base == "" {
		base = "https://graph.facebook.com/v18.0"
	}
	payload := textPayload{MessagingProduct: "whatsapp", To: phone, Type: "text"}
	payload.Text.Body = body

	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/%s/messages", base, s.PhoneNumberID), bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp api status %d: %s", resp.StatusCode, string(excerpt))
	}
	return nil
}
