package bcrypt

import (
	"crypto/hmac"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sealTag(key, data []byte) []byte {
	m := hmac.New(sha256.New, key)
	m.Write(data)
	return m.Sum(nil)
}

func TestMultiKeyProvider(t *testing.T) {
	params := KDFParams{Rounds: 2, KeySize: 32}
	original := NewPasswordKeyProvider([]byte("original-password"), params)

	// Data sealed under the original password
	salt, err := original.GenerateSalt()
	require.NoError(t, err)
	oldKey, err := original.DeriveKey(salt)
	require.NoError(t, err)
	data := []byte("Secret data sealed with original key")
	tag := sealTag(oldKey, data)

	// Create multi-key provider with new and old passwords
	updated := NewPasswordKeyProvider([]byte("new-password"), params)
	multiKey, err := NewMultiKeyProvider(updated, original)
	require.NoError(t, err, "failed to create multi-key provider")

	check := func(key []byte) bool {
		return hmac.Equal(sealTag(key, data), tag)
	}
	key, idx, err := multiKey.TryDeriveKey(salt, check)
	require.NoError(t, err)
	assert.Equal(t, 1, idx, "matched provider")
	assert.Equal(t, oldKey, key)

	// New keys come from the primary
	primaryKey, err := multiKey.DeriveKey(salt)
	require.NoError(t, err)
	want, err := updated.DeriveKey(salt)
	require.NoError(t, err)
	assert.Equal(t, want, primaryKey, "DeriveKey did not use the primary provider")

	fresh, err := multiKey.GenerateSalt()
	require.NoError(t, err)
	assert.Len(t, fresh, SaltLen)
}

func TestMultiKeyProvider_NoMatch(t *testing.T) {
	params := KDFParams{Rounds: 1, KeySize: 16}
	multiKey, err := NewMultiKeyProvider(
		NewPasswordKeyProvider([]byte("a"), params),
		NewPasswordKeyProvider([]byte("b"), params),
	)
	require.NoError(t, err)

	calls := 0
	_, idx, err := multiKey.TryDeriveKey([]byte("salt"), func([]byte) bool {
		calls++
		return false
	})
	assert.ErrorIs(t, err, ErrNoMatchingKey)
	assert.Equal(t, -1, idx)
	assert.Equal(t, 2, calls)

	// A provider error is reported alongside the mismatch
	broken := NewPasswordKeyProvider(nil, params)
	multiKey, err = NewMultiKeyProvider(broken)
	require.NoError(t, err)
	_, _, err = multiKey.TryDeriveKey([]byte("salt"), func([]byte) bool { return true })
	assert.ErrorIs(t, err, ErrNoMatchingKey)

	_, _, err = multiKey.TryDeriveKey([]byte("salt"), nil)
	assert.Error(t, err, "nil check should be rejected")
}

func TestNewMultiKeyProvider_Errors(t *testing.T) {
	_, err := NewMultiKeyProvider()
	assert.Error(t, err, "expected error for no providers")

	_, err = NewMultiKeyProvider(NewPasswordKeyProvider([]byte("pw"), KDFParams{}), nil)
	assert.Error(t, err, "expected error for nil provider")
}
