// Package qr encodes and decodes the scan-to-pay payload carried in the
// app's QR codes. The payload is opaque to the scanner; decoding turns it
// into the inputs of a send-money checkout.
package qr

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// payloadPrefix mimics the EMV merchant QR preamble the real rails use.
const payloadPrefix = "00020101021226620015"

// PaymentRequest is the decoded content of a scanned code.
type PaymentRequest struct {
	Reference string          `json:"reference"`
	Recipient string          `json:"recipient"`
	Amount    decimal.Decimal `json:"amount"`
}

// Generate builds a QR payload for receiving amount from a payer, along
// with the reference embedded in it.
func Generate(recipient string, amount decimal.Decimal) (payload, reference string, err error) {
	if recipient == "" {
		return "", "", fmt.Errorf("recipient is required")
	}
	// The payload is pipe-delimited; a recipient carrying the delimiter
	// would produce a code Decode cannot parse.
	if strings.Contains(recipient, "|") {
		return "", "", fmt.Errorf("recipient must not contain %q", "|")
	}
	if amount.Sign() <= 0 {
		return "", "", fmt.Errorf("amount must be positive")
	}

	reference = "P" + uuid.NewString()[:10]
	payload = fmt.Sprintf("%s%s|%s|%s", payloadPrefix, reference, recipient, amount.StringFixed(2))
	return payload, reference, nil
}

// Decode parses a scanned payload back into a payment request.
func Decode(payload string) (PaymentRequest, error) {
	if !strings.HasPrefix(payload, payloadPrefix) {
		return PaymentRequest{}, fmt.Errorf("not a payment code")
	}

	parts := strings.Split(strings.TrimPrefix(payload, payloadPrefix), "|")
	if len(parts) != 3 {
		return PaymentRequest{}, fmt.Errorf("malformed payment code")
	}

	amount, err := decimal.NewFromString(parts[2])
	if err != nil {
		return PaymentRequest{}, fmt.Errorf("malformed amount: %w", err)
	}
	if amount.Sign() <= 0 {
		return PaymentRequest{}, fmt.Errorf("amount must be positive")
	}
	if parts[0] == "" || parts[1] == "" {
		return PaymentRequest{}, fmt.Errorf("malformed payment code")
	}

	return PaymentRequest{Reference: parts[0], Recipient: parts[1], Amount: amount}, nil
}
