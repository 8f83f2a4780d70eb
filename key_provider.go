package bcrypt

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// KeyProvider is an interface for providing symmetric keys
type KeyProvider interface {
	// DeriveKey derives a key from the given salt
	DeriveKey(salt []byte) ([]byte, error)

	// GenerateSalt generates a new random salt
	GenerateSalt() ([]byte, error)
}

// PasswordKeyProvider implements KeyProvider using bcrypt_pbkdf
type PasswordKeyProvider struct {
	password []byte
	params   KDFParams
	rand     io.Reader
}

// NewPasswordKeyProvider creates a new password-based key provider. Zero
// fields in params are replaced by defaults.
func NewPasswordKeyProvider(password []byte, params KDFParams) *PasswordKeyProvider {
	// Set defaults
	if params.Rounds == 0 {
		params.Rounds = 16
	}
	if params.SaltSize == 0 {
		params.SaltSize = SaltLen
	}
	if params.KeySize == 0 {
		params.KeySize = 32
	}

	return &PasswordKeyProvider{
		password: password,
		params:   params,
		rand:     rand.Reader,
	}
}

// Params returns the effective KDF parameters.
func (p *PasswordKeyProvider) Params() KDFParams {
	return p.params
}

// DeriveKey derives a key from the password and salt
func (p *PasswordKeyProvider) DeriveKey(salt []byte) ([]byte, error) {
	if len(p.password) == 0 {
		return nil, errors.New("password cannot be empty")
	}
	if len(salt) == 0 {
		return nil, errors.New("salt cannot be empty")
	}

	key, err := Kdf(p.password, salt, p.params.KeySize, p.params.Rounds)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return key, nil
}

// GenerateSalt generates a new random salt
func (p *PasswordKeyProvider) GenerateSalt() ([]byte, error) {
	if p.params.SaltSize < 1 || p.params.SaltSize > maxKDFSaltLen {
		return nil, NewValidationError("salt_size", p.params.SaltSize, "salt size out of range", ErrInvalidSalt)
	}
	salt := make([]byte, p.params.SaltSize)
	if _, err := io.ReadFull(p.rand, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}
