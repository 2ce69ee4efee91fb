// Package account is the credential store: user rows and password hashes.
package account

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/MagnunAVF/shortlinks/internal"
)

// ErrEmailTaken indicates a signup with an already-registered email.
var ErrEmailTaken = errors.New("email already registered")

const bcryptCost = 10

// Store is the port for user persistence. FindByEmail and FindByID return
// (nil, nil) when no row matches.
type Store interface {
	Create(ctx context.Context, email, passwordHash, name string) (*internal.User, error)
	FindByEmail(ctx context.Context, email string) (*internal.User, error)
	FindByID(ctx context.Context, id string) (*internal.User, error)
}

// HashPassword derives a bcrypt hash; the raw password is never persisted.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
