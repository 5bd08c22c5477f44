package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// DigestInput joins the five integrity-check fields with a tilde in the
// exact order the gateway hashes them.
func DigestInput(meID, orderNumber, amount, country, currency string) string {
	return strings.Join([]string{meID, orderNumber, amount, country, currency}, "~")
}

// Digest computes the SHA-256 of the tilde-joined field tuple as lowercase hex.
func Digest(meID, orderNumber, amount, country, currency string) string {
	sum := sha256.Sum256([]byte(DigestInput(meID, orderNumber, amount, country, currency)))
	return hex.EncodeToString(sum[:])
}
