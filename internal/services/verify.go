package services

import "errors"

// Webhook verification failures. The handler maps these to 400 and 403.
var (
	ErrVerificationBadRequest = errors.New("missing mode or token")
	ErrVerificationForbidden  = errors.New("verification token mismatch")
)

// VerifyWebhook implements the provider's subscription handshake. The
// challenge is echoed back only when the mode is the fixed "subscribe"
// literal and the token matches the configured secret. Stateless and pure.
func VerifyWebhook(mode, token, challenge, verifySecret string) (string, error) {
	if mode == "" || token == "" {
		return "", ErrVerificationBadRequest
	}
	if mode != "subscribe" || verifySecret == "" || token != verifySecret {
		return "", ErrVerificationForbidden
	}
	return challenge, nil
}
