package mocks

import (
	"errors"
	"strings"
)

// MockHasher implements service.Hasher with a reversible fake hash, so
// tests can assert what a stored hash was derived from without paying
// bcrypt cost.
type MockHasher struct {
	HashFn    func(password string) (string, error)
	HashError error
}

const mockHashPrefix = "hashed:"

func (m *MockHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashError != nil {
		return "", m.HashError
	}
	return mockHashPrefix + password, nil
}

func (m *MockHasher) Compare(hashedPassword, password string) error {
	if hashedPassword != mockHashPrefix+password {
		return errors.New("password mismatch")
	}
	return nil
}

// Plaintext recovers the password a mock hash was derived from.
func Plaintext(hashedPassword string) string {
	return strings.TrimPrefix(hashedPassword, mockHashPrefix)
}
