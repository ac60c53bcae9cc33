package gateway

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"github.com/iho/tripledger/internal/domain"
)

// Verifier checks the authenticity of payment-gateway notifications.
// The gateway signs each notification with SHA-512 over the concatenation
// of order id, status code, gross amount string and the shared server key.
type Verifier struct {
	serverKey string
}

// NewVerifier creates a new Verifier.
func NewVerifier(serverKey string) *Verifier {
	return &Verifier{serverKey: serverKey}
}

// Signature computes the expected signature for a notification.
func (v *Verifier) Signature(orderID, statusCode, grossAmount string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + v.serverKey))
	return hex.EncodeToString(sum[:])
}

// Verify compares the received signature against the expected one in
// constant time.
func (v *Verifier) Verify(orderID, statusCode, grossAmount, signature string) error {
	expected := v.Signature(orderID, statusCode, grossAmount)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) != 1 {
		return domain.ErrInvalidSignature
	}

	return nil
}
