package bcrypt

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/absfs/bcrypt/blowfish"
)

const (
	// kdfBlockLen is the output size of one bcrypt_hash invocation.
	kdfBlockLen = 32
	// kdfCostRounds is the fixed EksBlowfish round count inside bcrypt_hash.
	kdfCostRounds = 64

	maxKeyLen     = kdfBlockLen * kdfBlockLen
	maxKDFSaltLen = 1 << 20

	kdfMagic = "OxychromaticBlowfishSwatDynamite"
)

// Kdf derives keyLen bytes of key material from password and salt using
// OpenBSD's bcrypt_pbkdf. rounds is a literal count, not a logarithm. Both
// inputs may contain zero bytes; neither may be empty.
//
// The output is meant for keys, IVs and MAC keys. It must not be used as an
// encryption keystream.
func Kdf(password, salt []byte, keyLen, rounds int) ([]byte, error) {
	if err := ValidateKeyLength(keyLen); err != nil {
		return nil, err
	}
	if err := ValidateRounds(rounds); err != nil {
		return nil, err
	}
	if err := ValidateKDFInput(password, salt); err != nil {
		return nil, err
	}

	// Each block contributes one byte to every stride-th output position, so
	// no output byte depends on a single block only.
	stride := (keyLen + kdfBlockLen - 1) / kdfBlockLen
	key := make([]byte, stride*kdfBlockLen)

	h := sha512.New()
	h.Write(password)
	shaPass := h.Sum(nil)
	defer clear(shaPass)

	var (
		count   [4]byte
		shaSalt = make([]byte, 0, sha512.Size)
		tmp     [kdfBlockLen]byte
		out     [kdfBlockLen]byte
	)
	for block := 1; block <= stride; block++ {
		binary.BigEndian.PutUint32(count[:], uint32(block))
		h.Reset()
		h.Write(salt)
		h.Write(count[:])
		shaSalt = h.Sum(shaSalt[:0])
		bcryptHash(&tmp, shaPass, shaSalt)
		out = tmp

		for i := 1; i < rounds; i++ {
			h.Reset()
			h.Write(tmp[:])
			shaSalt = h.Sum(shaSalt[:0])
			bcryptHash(&tmp, shaPass, shaSalt)
			for j := range out {
				out[j] ^= tmp[j]
			}
		}

		for i, v := range out {
			key[i*stride+block-1] = v
		}
	}
	clear(tmp[:])
	clear(out[:])
	return key[:keyLen], nil
}

// bcryptHash is the bcrypt_pbkdf PRF: a bcrypt-like digest with a fixed
// cost, a 32-byte magic text and little-endian output words.
func bcryptHash(dst *[kdfBlockLen]byte, shaPass, shaSalt []byte) {
	key := blowfish.NewKey(shaPass)
	c := blowfish.NewEksCipher(kdfCostRounds, &key, shaSalt, blowfish.SaltThenKey)

	var words [kdfBlockLen / 4]uint32
	for i := range words {
		words[i] = binary.BigEndian.Uint32([]byte(kdfMagic[4*i:]))
	}
	for i := 0; i < len(words); i += 2 {
		l, r := words[i], words[i+1]
		for n := 0; n < 64; n++ {
			l, r = c.EncryptBlock(l, r)
		}
		words[i], words[i+1] = l, r
	}
	for i, w := range words {
		binary.LittleEndian.PutUint32(dst[4*i:], w)
	}
}
