package blowfish

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xblowfish "golang.org/x/crypto/blowfish"
)

// decryptBlock runs the Feistel network backwards. The package only ever
// encrypts; this checks that the rounds are wired as a permutation.
func decryptBlock(c *Cipher, l, r uint32) (uint32, uint32) {
	l ^= c.p[17]
	for i := 16; i > 0; i -= 2 {
		r ^= c.f(l) ^ c.p[i]
		l ^= c.f(r) ^ c.p[i-1]
	}
	r ^= c.p[0]
	return r, l
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestEncryptKnownVectors(t *testing.T) {
	tests := []struct {
		key, plain, cipher string
	}{
		{"0000000000000000", "0000000000000000", "4ef997456198dd78"},
		{"ffffffffffffffff", "ffffffffffffffff", "51866fd5b85ecb8a"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c, err := NewCipher(mustHex(t, tt.key))
			require.NoError(t, err)

			got := make([]byte, BlockSize)
			c.Encrypt(got, mustHex(t, tt.plain))
			assert.Equal(t, tt.cipher, hex.EncodeToString(got))

			l, r := decryptBlock(c, binary.BigEndian.Uint32(got[0:4]), binary.BigEndian.Uint32(got[4:8]))
			back := make([]byte, BlockSize)
			binary.BigEndian.PutUint32(back[0:4], l)
			binary.BigEndian.PutUint32(back[4:8], r)
			assert.Equal(t, tt.plain, hex.EncodeToString(back))
		})
	}
}

func TestNewCipherMatchesReference(t *testing.T) {
	keys := [][]byte{
		[]byte("k"),
		[]byte("Blowfish"),
		[]byte("a 56-byte key is the longest the standard schedule takes"),
		bytes.Repeat([]byte{0xa5}, 33),
	}
	block := []byte("8 bytes!")
	for _, key := range keys {
		key = key[:min(len(key), 56)]
		ours, err := NewCipher(key)
		require.NoError(t, err)
		ref, err := xblowfish.NewCipher(key)
		require.NoError(t, err)

		want := make([]byte, BlockSize)
		got := make([]byte, BlockSize)
		ref.Encrypt(want, block)
		ours.Encrypt(got, block)
		assert.Equal(t, want, got, "key %q", key)
	}
}

func TestNewCipherKeySize(t *testing.T) {
	for _, n := range []int{0, 57, 72} {
		_, err := NewCipher(make([]byte, n))
		require.Error(t, err)
		assert.Equal(t, KeySizeError(n), err)
		assert.Contains(t, err.Error(), "invalid key size")
	}
}

func TestEncryptBlockIsInvertible(t *testing.T) {
	c, err := NewCipher([]byte("inverse"))
	require.NoError(t, err)

	for _, in := range [][2]uint32{{0, 0}, {1, 2}, {0xdeadbeef, 0xcafebabe}, {0xffffffff, 0}} {
		l, r := c.EncryptBlock(in[0], in[1])
		l, r = decryptBlock(c, l, r)
		assert.Equal(t, in, [2]uint32{l, r})
	}
}
