package mocks

import "errors"

// ErrPasswordMismatch is the default failure returned by MockPasswordVerifier.
var ErrPasswordMismatch = errors.New("password mismatch")

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	CompareFn func(hashedPassword, password string) error

	// ShouldSucceed controls the default behavior when CompareFn is nil.
	ShouldSucceed bool
	Err           error
}

// Compare implements auth.PasswordVerifier
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	if m.Err != nil {
		return m.Err
	}
	return ErrPasswordMismatch
}
