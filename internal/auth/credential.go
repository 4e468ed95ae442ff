// Package auth implements password credential handling. A stored password is
// represented by Secret, a write-only type: it can verify a plaintext guess
// and round-trip through the database, but the underlying hash has no public
// read path and any attempt to serialize it fails.
package auth

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrSecretNotReadable is returned when code attempts to serialize a Secret.
var ErrSecretNotReadable = errors.New("password hash is not readable")

// Secret holds a bcrypt password hash with no accessor for the raw value.
type Secret struct {
	hash []byte
}

// HashPassword derives a Secret from a plaintext password.
func HashPassword(plaintext string) (Secret, error) {
	if plaintext == "" {
		return Secret{}, errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return Secret{}, fmt.Errorf("failed to hash password: %w", err)
	}
	return Secret{hash: hash}, nil
}

// Verify reports whether plaintext matches the stored hash. A wrong password
// is a plain false, never an error.
func (s Secret) Verify(plaintext string) bool {
	if len(s.hash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(s.hash, []byte(plaintext)) == nil
}

// IsZero reports whether the Secret holds no hash.
func (s Secret) IsZero() bool {
	return len(s.hash) == 0
}

// MarshalJSON always fails; a Secret must never appear in a response body.
func (s Secret) MarshalJSON() ([]byte, error) {
	return nil, ErrSecretNotReadable
}

// String redacts the hash so it cannot leak through logging or %v formatting.
func (s Secret) String() string {
	return "[redacted]"
}

// Value implements driver.Valuer so the hash can be persisted.
func (s Secret) Value() (driver.Value, error) {
	return string(s.hash), nil
}

// Scan implements sql.Scanner to load the hash back from the database.
func (s *Secret) Scan(src any) error {
	switch v := src.(type) {
	case string:
		s.hash = []byte(v)
	case []byte:
		s.hash = append([]byte(nil), v...)
	case nil:
		s.hash = nil
	default:
		return fmt.Errorf("cannot scan %T into Secret", src)
	}
	return nil
}
