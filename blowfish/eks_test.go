package blowfish

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xblowfish "golang.org/x/crypto/blowfish"
)

func TestNewKey(t *testing.T) {
	k := NewKey([]byte("abcd"))
	for i, w := range k {
		assert.Equal(t, uint32(0x61626364), w, "word %d", i)
	}

	// Five bytes do not divide a word; the sixth byte wraps to the start.
	k = NewKey([]byte{1, 2, 3, 4, 5})
	assert.Equal(t, uint32(0x01020304), k[0])
	assert.Equal(t, uint32(0x05010203), k[1])
	assert.Equal(t, uint32(0x04050102), k[2])

	assert.Equal(t, Key{}, NewKey(nil))
}

func TestNewKeyIgnoresBytesPast72(t *testing.T) {
	long := make([]byte, 100)
	for i := range long {
		long[i] = byte(i)
	}
	assert.Equal(t, NewKey(long[:72]), NewKey(long))
}

func TestNewSignExtendedKey(t *testing.T) {
	ascii := []byte("U*U*U\x00")
	assert.Equal(t, NewKey(ascii), NewSignExtendedKey(ascii))

	k := NewSignExtendedKey([]byte{0x41, 0xa3, 0x42, 0x43})
	assert.Equal(t, uint32(0xffa34243), k[0])

	k = NewSignExtendedKey([]byte{0xa3, 0x00})
	assert.Equal(t, uint32(0xffffa300), k[0])
	assert.Equal(t, uint32(0xa300a300), NewKey([]byte{0xa3, 0x00})[0])
}

// The reference package exposes the same building blocks, so the whole
// schedule can be replayed through it.
func TestNewEksCipherMatchesReference(t *testing.T) {
	tests := []struct {
		name   string
		key    []byte
		salt   []byte
		rounds uint64
	}{
		{"one round", []byte("password\x00"), []byte("0123456789abcdef"), 1},
		{"sixteen rounds", []byte("U*U\x00"), []byte("saltsaltsaltsalt"), 16},
		{"long salt", []byte("key"), make([]byte, 64), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewKey(tt.key)
			ours := NewEksCipher(tt.rounds, &key, tt.salt, KeyThenSalt)

			ref, err := xblowfish.NewSaltedCipher(tt.key, tt.salt)
			require.NoError(t, err)
			for i := uint64(0); i < tt.rounds; i++ {
				xblowfish.ExpandKey(tt.key, ref)
				xblowfish.ExpandKey(tt.salt, ref)
			}

			block := []byte("OrpheanB")
			want := make([]byte, BlockSize)
			got := make([]byte, BlockSize)
			ref.Encrypt(want, block)
			ours.Encrypt(got, block)
			assert.Equal(t, want, got)
		})
	}
}

func TestNewEksCipherOrder(t *testing.T) {
	key := NewKey([]byte("password"))
	salt := []byte("0123456789abcdef")

	a := NewEksCipher(2, &key, salt, KeyThenSalt)
	b := NewEksCipher(2, &key, salt, SaltThenKey)
	assert.NotEqual(t, a.p, b.p)

	ref, err := xblowfish.NewSaltedCipher([]byte("password"), salt)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		xblowfish.ExpandKey(salt, ref)
		xblowfish.ExpandKey([]byte("password"), ref)
	}
	want := make([]byte, BlockSize)
	got := make([]byte, BlockSize)
	ref.Encrypt(want, []byte("ordering"))
	b.Encrypt(got, []byte("ordering"))
	assert.Equal(t, want, got)
}

func TestScheduleLeavesTemplateUntouched(t *testing.T) {
	key := NewKey([]byte("mutate me"))
	NewEksCipher(8, &key, []byte("0123456789abcdef"), KeyThenSalt)

	assert.Equal(t, uint32(0x243f6a88), p[0])
	assert.Equal(t, uint32(0x8979fb1b), p[17])
	assert.Equal(t, uint32(0xd1310ba6), s0[0])
	assert.Equal(t, uint32(0x3ac372e6), s3[255])
}

func TestNewEksCipherConcurrent(t *testing.T) {
	key := NewKey([]byte("shared input"))
	salt := []byte("0123456789abcdef")
	want := NewEksCipher(4, &key, salt, KeyThenSalt)

	var wg sync.WaitGroup
	results := make([]*Cipher, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			k := NewKey([]byte("shared input"))
			results[i] = NewEksCipher(4, &k, salt, KeyThenSalt)
		}(i)
	}
	wg.Wait()

	for i, c := range results {
		require.Equal(t, want.p, c.p, "goroutine %d", i)
		require.Equal(t, want.s3, c.s3, "goroutine %d", i)
	}
}
