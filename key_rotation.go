package bcrypt

import (
	"errors"
	"fmt"
)

// ErrNoMatchingKey is returned by MultiKeyProvider.TryDeriveKey when no
// provider produced a key the check accepted.
var ErrNoMatchingKey = errors.New("bcrypt: no provider produced a matching key")

// MultiKeyProvider tries multiple key providers in order when reading
// This is useful while rotating a passphrase: data written under the old
// one stays readable until it is rewritten
type MultiKeyProvider struct {
	providers []KeyProvider
	primary   KeyProvider // Primary provider for new keys
}

// NewMultiKeyProvider creates a new multi-key provider
// The first provider is used for new keys, others for read fallback
func NewMultiKeyProvider(providers ...KeyProvider) (*MultiKeyProvider, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("at least one key provider required")
	}
	for i, p := range providers {
		if p == nil {
			return nil, fmt.Errorf("key provider %d is nil", i)
		}
	}

	return &MultiKeyProvider{
		providers: providers,
		primary:   providers[0],
	}, nil
}

// DeriveKey uses the primary provider
func (m *MultiKeyProvider) DeriveKey(salt []byte) ([]byte, error) {
	return m.primary.DeriveKey(salt)
}

// GenerateSalt uses the primary provider
func (m *MultiKeyProvider) GenerateSalt() ([]byte, error) {
	return m.primary.GenerateSalt()
}

// TryDeriveKey derives a key with each provider in order and returns the
// first one check accepts, along with the index of its provider. A derived
// key is always "valid", so the caller decides what matching means, for
// example by checking a MAC over stored data.
func (m *MultiKeyProvider) TryDeriveKey(salt []byte, check func(key []byte) bool) ([]byte, int, error) {
	if check == nil {
		return nil, -1, errors.New("check function cannot be nil")
	}

	var lastErr error
	for i, provider := range m.providers {
		key, err := provider.DeriveKey(salt)
		if err != nil {
			lastErr = err
			continue
		}
		if check(key) {
			return key, i, nil
		}
		clear(key)
	}

	if lastErr != nil {
		return nil, -1, fmt.Errorf("all key providers failed: %w", errors.Join(ErrNoMatchingKey, lastErr))
	}
	return nil, -1, ErrNoMatchingKey
}
