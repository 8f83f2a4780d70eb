package bcrypt

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKdf_Vectors(t *testing.T) {
	seq := make([]byte, 16)
	for i := range seq {
		seq[i] = byte(i + 1)
	}

	tests := []struct {
		name     string
		password string
		salt     []byte
		keyLen   int
		rounds   int
		want     string
	}{
		{
			name: "openbsd regress", password: "password", salt: []byte("salt"), keyLen: 32, rounds: 4,
			want: "5bbf0cc293587f1c3635555c27796598d47e579071bf427e9d8fbe842aba34d9",
		},
		{
			name: "two blocks", password: "password", salt: []byte("salt"), keyLen: 64, rounds: 4,
			want: "5ba4bfc60c7ac272931458407f4c1c4936ea356c55125c5a279b791d65bf9842" +
				"d49d7e1b572a9052715ebfa9421e7e949d8f8f19be3284732af1ba28341dd9bf",
		},
		{
			name: "embedded zero bytes", password: "\x00\x01pass\x00word", salt: []byte("\x00salt\x00"), keyLen: 40, rounds: 2,
			want: "5ea4363b4c27c6cb089ae36117cb5773422bf82ac3413c1e167c6e18469fe8861f4f4c47a529dc4a",
		},
		{
			name: "single byte", password: "password", salt: []byte("salt"), keyLen: 1, rounds: 1,
			want: "7a",
		},
		{
			name: "one past a block", password: "password", salt: []byte("salt"), keyLen: 33, rounds: 1,
			want: "7aecf4a3148069a4e52b28a060c4da05492ede72bf0caa4f6a2a4e5f1252a24ccb",
		},
		{
			name: "short key", password: "password", salt: []byte("salt"), keyLen: 16, rounds: 8,
			want: "e17e1533acc14423155493c99b9c3bbe",
		},
		{
			name: "four blocks", password: "hunter2", salt: seq, keyLen: 100, rounds: 3,
			want: "0e9020f60cb219602a5fd2d193d3d57fb967b21a4f3d911d74b68ad3b7f1ae61" +
				"41a6c0478b5da0ad6bc624084ed36ed2900d4169a0243cbad225cd089bc67357" +
				"ee2c499ed70c2b0a3187ebaf91fc0b5e51be1b271fa111a5319aa82c423bb786" +
				"180c16fb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Kdf([]byte(tt.password), tt.salt, tt.keyLen, tt.rounds)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hex.EncodeToString(got))
		})
	}
}

func TestKdf_OutputLength(t *testing.T) {
	for _, n := range []int{1, 2, 31, 32, 33, 48, 63, 64, 65, 96, 97} {
		key, err := Kdf([]byte("password"), []byte("salt"), n, 1)
		require.NoError(t, err, "Kdf(%d)", n)
		assert.Len(t, key, n)
	}
}

func TestKdf_SensitiveToEveryInput(t *testing.T) {
	base, err := Kdf([]byte("password"), []byte("salt"), 32, 2)
	require.NoError(t, err)

	variants := map[string]func() ([]byte, error){
		"password": func() ([]byte, error) { return Kdf([]byte("passwore"), []byte("salt"), 32, 2) },
		"salt":     func() ([]byte, error) { return Kdf([]byte("password"), []byte("salu"), 32, 2) },
		"rounds":   func() ([]byte, error) { return Kdf([]byte("password"), []byte("salt"), 32, 3) },
	}
	for name, fn := range variants {
		got, err := fn()
		require.NoError(t, err, name)
		assert.NotEqual(t, base, got, "changing %s did not change the key", name)
	}
}

func TestKdf_Errors(t *testing.T) {
	tests := []struct {
		name     string
		password []byte
		salt     []byte
		keyLen   int
		rounds   int
		want     error
	}{
		{"zero key length", []byte("pw"), []byte("salt"), 0, 1, ErrInvalidKeyLength},
		{"negative key length", []byte("pw"), []byte("salt"), -5, 1, ErrInvalidKeyLength},
		{"key too long", []byte("pw"), []byte("salt"), maxKeyLen + 1, 1, ErrInvalidKeyLength},
		{"zero rounds", []byte("pw"), []byte("salt"), 32, 0, ErrInvalidRounds},
		{"empty password", nil, []byte("salt"), 32, 1, ErrEmptyPassword},
		{"empty salt", []byte("pw"), nil, 32, 1, ErrInvalidSalt},
		{"huge salt", []byte("pw"), make([]byte, maxKDFSaltLen+1), 32, 1, ErrInvalidSalt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := Kdf(tt.password, tt.salt, tt.keyLen, tt.rounds)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, key)
			assert.True(t, IsValidationError(err))
		})
	}
}
