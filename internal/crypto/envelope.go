// Package crypto implements the cipher envelope the gateway expects:
// AES-256-CBC with a static initialization vector and manual PKCS#7
// padding.
//
// The fixed, non-secret IV and the manual padding are protocol quirks of
// the remote gateway, not a cryptographic recommendation. They are
// preserved exactly for wire compatibility; switching to a random IV
// breaks interoperability.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"

	errors "github.com/yagoutpay/gateway/internal"
)

// staticIV is mandated by the gateway protocol and identical for every call.
var staticIV = []byte("0123456789abcdef")

// ParseKey decodes a base64-encoded merchant key and enforces the 32-byte
// length AES-256 requires.
func ParseKey(keyB64 string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(keyB64)
	if err != nil {
		return nil, errors.NewCryptoError("merchant key is not valid base64", errors.ErrCodeInvalidKey).WithCause(err)
	}
	if len(key) != 32 {
		return nil, errors.NewCryptoError(
			fmt.Sprintf("merchant key must decode to 32 bytes, got %d", len(key)),
			errors.ErrCodeInvalidKey)
	}
	return key, nil
}

// Encrypt pads the plaintext with PKCS#7, encrypts it with AES-256-CBC
// under the static IV, and returns the ciphertext as base64.
func Encrypt(plaintext, key []byte) (string, error) {
	if len(key) != 32 {
		return "", errors.NewCryptoError(
			fmt.Sprintf("key must be 32 bytes, got %d", len(key)),
			errors.ErrCodeInvalidKey)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", errors.NewCryptoError("create cipher", errors.ErrCodeInvalidKey).WithCause(err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	mode := cipher.NewCBCEncrypter(block, staticIV)
	mode.CryptBlocks(ciphertext, padded)

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt: base64 decode, AES-256-CBC decrypt under the
// static IV, then strip PKCS#7 padding. Invalid base64, unaligned
// ciphertext and out-of-range padding all fail with a crypto error.
func Decrypt(cipherB64 string, key []byte) ([]byte, error) {
	if len(key) != 32 {
		return nil, errors.NewCryptoError(
			fmt.Sprintf("key must be 32 bytes, got %d", len(key)),
			errors.ErrCodeInvalidKey)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(cipherB64)
	if err != nil {
		return nil, errors.NewCryptoError("ciphertext is not valid base64", errors.ErrCodeMalformedCiphertext).WithCause(err)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, errors.NewCryptoError("ciphertext length is not a multiple of the block size", errors.ErrCodeMalformedCiphertext)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.NewCryptoError("create cipher", errors.ErrCodeInvalidKey).WithCause(err)
	}

	padded := make([]byte, len(ciphertext))
	mode := cipher.NewCBCDecrypter(block, staticIV)
	mode.CryptBlocks(padded, ciphertext)

	return pkcs7Unpad(padded, aes.BlockSize)
}

// pkcs7Pad appends n bytes each holding value n, where n is the number of
// bytes needed to reach the next block boundary (16 when already aligned).
func pkcs7Pad(b []byte, blockSize int) []byte {
	padLen := blockSize - (len(b) % blockSize)
	if padLen == 0 {
		padLen = blockSize
	}
	return append(b, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

func pkcs7Unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, errors.NewCryptoError("padded data length invalid", errors.ErrCodeMalformedPadding)
	}
	padLen := int(b[len(b)-1])
	if padLen < 1 || padLen > blockSize {
		return nil, errors.NewCryptoError(
			fmt.Sprintf("padding value %d outside 1-%d", padLen, blockSize),
			errors.ErrCodeMalformedPadding)
	}
	for i := 0; i < padLen; i++ {
		if b[len(b)-1-i] != byte(padLen) {
			return nil, errors.NewCryptoError("inconsistent padding bytes", errors.ErrCodeMalformedPadding)
		}
	}
	return b[:len(b)-padLen], nil
}
