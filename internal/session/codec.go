// Package session issues, validates and revokes user sessions. The client
// never holds the session id itself: it holds an AES-GCM envelope whose
// plaintext is the id, encoded as base64(nonce || ciphertext).
package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

const nonceSize = 12

// ErrInvalidToken covers every decode failure: malformed base64, truncated
// input, authentication failure. Callers must not learn which one.
var ErrInvalidToken = errors.New("invalid session token")

// Encode seals sessionID under secret with a fresh random nonce per call.
func Encode(sessionID string, secret []byte) (string, error) {
	gcm, err := newGCM(secret)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := gcm.Seal(nonce, nonce, []byte(sessionID), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decode reverses Encode. All failures collapse to ErrInvalidToken.
func Decode(token string, secret []byte) (string, error) {
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil || len(data) <= nonceSize {
		return "", ErrInvalidToken
	}
	gcm, err := newGCM(secret)
	if err != nil {
		return "", ErrInvalidToken
	}
	plain, err := gcm.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return "", ErrInvalidToken
	}
	return string(plain), nil
}

func newGCM(secret []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(secret)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
