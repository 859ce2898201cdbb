package utils

import (
	"crypto/rand"
)

// confirmationCharset matches the codes printed on booking receipts.
const confirmationCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateConfirmationCode returns length characters drawn from A-Z and 0-9.
func GenerateConfirmationCode(length int) (string, error) {
	// Make a slice of length random bytes.
	code := make([]byte, length)

	// Read into the slice.
	if _, err := rand.Read(code); err != nil {
		return "", err
	}

	// Map bytes onto the charset.
	for i := 0; i < length; i++ {
		code[i] = confirmationCharset[int(code[i])%len(confirmationCharset)]
	}

	return string(code), nil
}
