// Package credential is the single password-hashing strategy used both when a
// password is set and when it is checked.
package credential

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrMismatch = errors.New("credential mismatch")

// MinPasswordLength applies to passwords set through this package.
const MinPasswordLength = 8

// MaxPasswordLength is the bcrypt input limit in bytes; longer input would be
// silently truncated.
const MaxPasswordLength = 72

type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Bcrypt hashes with golang.org/x/crypto/bcrypt.
type Bcrypt struct {
	cost  int
	dummy []byte
}

// NewBcrypt returns a Hasher with the given cost; out-of-range costs fall
// back to bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// Digest compared against when no principal matched, so both failure
	// paths spend the same time.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("jvhelp-dummy-password"), cost)
	return &Bcrypt{cost: cost, dummy: dummy}
}

func (b *Bcrypt) Hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return "", fmt.Errorf("password must be at most %d bytes", MaxPasswordLength)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(h), nil
}

// Compare returns ErrMismatch for a wrong password. An empty hash and a
// password over MaxPasswordLength are compared against the dummy digest and
// always mismatch.
func (b *Bcrypt) Compare(hash, password string) error {
	if hash == "" || len(password) > MaxPasswordLength {
		_ = bcrypt.CompareHashAndPassword(b.dummy, []byte(password[:min(len(password), MaxPasswordLength)]))
		return ErrMismatch
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	if err != nil {
		return fmt.Errorf("failed to compare password: %w", err)
	}
	return nil
}
