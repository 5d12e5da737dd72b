package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CheckAdminCredentials compares presented admin credentials against the
// configured pair. The configured password may be a bcrypt hash (recommended)
// or plaintext, in which case a constant-time compare is used. Empty
// configured credentials never match anything.
func CheckAdminCredentials(username, password, cfgUsername, cfgPassword string) bool {
	if cfgUsername == "" || cfgPassword == "" {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(cfgUsername)) == 1

	var passOK bool
	if strings.HasPrefix(cfgPassword, "$2a$") || strings.HasPrefix(cfgPassword, "$2b$") || strings.HasPrefix(cfgPassword, "$2y$") {
		passOK = bcrypt.CompareHashAndPassword([]byte(cfgPassword), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(cfgPassword)) == 1
	}

	return userOK && passOK
}

// HashPassword generates a bcrypt hash, used to produce ADMIN_PASSWORD values
// for deployment.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
