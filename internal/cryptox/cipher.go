// Package cryptox implements the cryptographic core of Secure Locker:
// authenticated encryption of secret payloads and one-way password hashing.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/hasilakhwa/secure-locker-api/internal/common"
)

// KeySize is the required cipher key length (AES-256).
const KeySize = 32

// Cipher provides authenticated encryption (AES-256-GCM) under a single
// process-lifetime key. The zero value is unusable; construct with NewCipher.
// Safe for concurrent use.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher builds a Cipher from a raw 32-byte key. Key material of any other
// length is rejected so a misconfigured deployment fails at startup, not on
// the first request.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", common.ErrInvalidKey, KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidKey, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidKey, err)
	}

	return &Cipher{aead: aead}, nil
}

// ParseKey decodes a base64-encoded key (standard or url-safe alphabet, with
// or without padding) and validates its length.
func ParseKey(encoded string) ([]byte, error) {
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding, base64.URLEncoding,
		base64.RawStdEncoding, base64.RawURLEncoding,
	} {
		if key, err := enc.DecodeString(encoded); err == nil {
			if len(key) != KeySize {
				return nil, fmt.Errorf("%w: need %d bytes, got %d", common.ErrInvalidKey, KeySize, len(key))
			}
			return key, nil
		}
	}
	return nil, fmt.Errorf("%w: not valid base64", common.ErrInvalidKey)
}

// Encrypt seals plaintext and returns a self-describing token:
// base64(nonce || ciphertext || tag). A fresh random nonce is generated per
// call, so Decrypt needs only the key.
func (c *Cipher) Encrypt(plaintext []byte) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("nonce generation: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a token produced by Encrypt. It returns
// common.ErrDecryptionFailed when the token is malformed, truncated, or its
// authentication tag does not verify (tampering or wrong key).
func (c *Cipher) Decrypt(token string) ([]byte, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, common.ErrDecryptionFailed
	}

	ns := c.aead.NonceSize()
	if len(sealed) < ns {
		return nil, common.ErrDecryptionFailed
	}

	plaintext, err := c.aead.Open(nil, sealed[:ns], sealed[ns:], nil)
	if err != nil {
		return nil, common.ErrDecryptionFailed
	}

	return plaintext, nil
}
