package utils

import (
	"crypto/sha256"
	"fmt"
)

// ShortHash returns the first 8 hex characters of the SHA-256 of value.
// Used to refer to identifiers in logs without printing them.
func ShortHash(value string) string {
	if value == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(value))
	return fmt.Sprintf("%x", sum[:4])
}
