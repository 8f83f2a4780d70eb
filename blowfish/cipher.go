// Package blowfish implements the Blowfish block cipher and the expensive
// EksBlowfish key schedule that bcrypt and bcrypt_pbkdf are built on.
//
// It is not meant as a general purpose encryption package and offers no
// decryption. NewCipher and Encrypt run the standard schedule only so the
// core can be checked against published Blowfish test vectors; password
// hashing should go through the parent package.
package blowfish

import (
	"encoding/binary"
	"strconv"
)

// BlockSize is the Blowfish block size in bytes.
const BlockSize = 8

// Cipher holds the key-dependent P-array and S-boxes. A Cipher is owned by a
// single goroutine; concurrent schedules each build their own.
type Cipher struct {
	p              [18]uint32
	s0, s1, s2, s3 [256]uint32
}

// KeySizeError is returned by NewCipher for keys outside 1..56 bytes.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "blowfish: invalid key size " + strconv.Itoa(int(k))
}

// NewCipher runs the standard Blowfish key schedule. The key must be between
// 1 and 56 bytes.
func NewCipher(key []byte) (*Cipher, error) {
	if k := len(key); k < 1 || k > 56 {
		return nil, KeySizeError(k)
	}
	var c Cipher
	c.reset()
	k := NewKey(key)
	c.Expand0State(&k)
	return &c, nil
}

// Encrypt encrypts the 8-byte block src into dst. Blocks are read and
// written big-endian.
func (c *Cipher) Encrypt(dst, src []byte) {
	l := binary.BigEndian.Uint32(src[0:4])
	r := binary.BigEndian.Uint32(src[4:8])
	l, r = c.EncryptBlock(l, r)
	binary.BigEndian.PutUint32(dst[0:4], l)
	binary.BigEndian.PutUint32(dst[4:8], r)
}

func (c *Cipher) f(x uint32) uint32 {
	return ((c.s0[x>>24] + c.s1[x>>16&0xff]) ^ c.s2[x>>8&0xff]) + c.s3[x&0xff]
}

// EncryptBlock runs the 16-round Feistel network over one block held as two
// 32-bit halves.
func (c *Cipher) EncryptBlock(l, r uint32) (uint32, uint32) {
	l ^= c.p[0]
	for i := 1; i < 17; i += 2 {
		r ^= c.f(l) ^ c.p[i]
		l ^= c.f(r) ^ c.p[i+1]
	}
	r ^= c.p[17]
	return r, l
}

// reset copies the pi template into c.
func (c *Cipher) reset() {
	c.p = p
	c.s0 = s0
	c.s1 = s1
	c.s2 = s2
	c.s3 = s3
}
