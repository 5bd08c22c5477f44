// Package redact masks sensitive payment values before they reach logs.
package redact

import "strings"

// maskedKeys are field names whose values must never be logged in full.
var maskedKeys = map[string]struct{}{
	"cardNumber":       {},
	"cvv":              {},
	"expiryMonth":      {},
	"expiryYear":       {},
	"encryptionKey":    {},
	"merchant_request": {},
	"merchantRequest":  {},
	"hash":             {},
	"response":         {},
}

// MaskTail keeps only the last visible characters of a value.
func MaskTail(value string, visible int) string {
	if len(value) <= visible {
		return value
	}
	return strings.Repeat("*", len(value)-visible) + value[len(value)-visible:]
}

// Map returns a shallow copy with known sensitive keys masked.
func Map(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if _, ok := maskedKeys[k]; ok {
			out[k] = MaskTail(v, 4)
		} else {
			out[k] = v
		}
	}
	return out
}

// PreviewBase64 shortens a long base64 string for log lines while keeping
// enough of both ends to compare values.
func PreviewBase64(value string) string {
	const head, tail = 8, 8
	if len(value) <= head+tail {
		return value
	}
	return value[:head] + "..." + value[len(value)-tail:]
}
