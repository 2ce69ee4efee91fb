package internal

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
)

// url-safe alphabet, same character set nanoid uses
const (
	shortCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	ShortCodeLength   = 6
)

var (
	allDigits = regexp.MustCompile(`^[0-9]+$`)
	bigLen    = big.NewInt(int64(len(shortCodeAlphabet)))
)

// GenerateShortCode returns a random 6-character url-safe code. Collisions
// are rare but possible; callers detect them at the cache layer.
func GenerateShortCode() (string, error) {
	code := make([]byte, ShortCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, bigLen)
		if err != nil {
			return "", err
		}
		code[i] = shortCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

// ValidShortCode reports whether a code may be used as a redirect key:
// non-empty, not just whitespace, not purely numeric, and free of the
// path/query/fragment delimiters / ? #.
func ValidShortCode(code string) bool {
	if code == "" || strings.TrimSpace(code) == "" {
		return false
	}
	if allDigits.MatchString(code) {
		return false
	}
	return !strings.ContainsAny(code, "/?#")
}
