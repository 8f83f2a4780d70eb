package bcrypt

import (
	"encoding/binary"

	"github.com/absfs/bcrypt/blowfish"
)

// magicText is encrypted under the expensive key schedule to produce the
// digest: three 64-bit blocks.
const magicText = "OrpheanBeholderScryDoubt"

// Hashpw hashes password with the cost, version and salt encoded in salt,
// which is either a prefix from Gensalt or a complete stored hash. Hashing a
// password with its own stored hash reproduces that hash.
//
// Neither argument may contain a zero byte. Only the first MaxPasswordLen
// bytes of the password (counting the terminator) affect the result.
func Hashpw(password, salt []byte) ([]byte, error) {
	if err := ValidateNoNul(password, "password"); err != nil {
		return nil, err
	}
	if err := ValidateNoNul(salt, "salt"); err != nil {
		return nil, err
	}
	rec, err := ParseSalt(salt)
	if err != nil {
		return nil, err
	}
	rec.Digest = digest(password, rec)
	return rec.Encode(), nil
}

// GenerateFromPassword hashes password under a fresh random salt at the
// given cost, producing a $2b$ hash.
func GenerateFromPassword(password []byte, cost int) ([]byte, error) {
	if err := ValidateCost(cost); err != nil {
		return nil, err
	}
	salt, err := Gensalt(cost)
	if err != nil {
		return nil, err
	}
	return Hashpw(password, salt)
}

// Cost returns the cost factor recorded in a hash or salt string.
func Cost(hash []byte) (int, error) {
	rec, err := ParseSalt(hash)
	if err != nil {
		return 0, err
	}
	return rec.Cost, nil
}

// digest runs EksBlowfish with rec's cost and salt and returns the first
// DigestLen bytes of the encrypted magic text. The caller has already
// checked password for zero bytes and rec for a valid cost.
func digest(password []byte, rec *HashRecord) [DigestLen]byte {
	key := passwordKey(password, rec.Version)
	c := blowfish.NewEksCipher(uint64(1)<<uint(rec.Cost), &key, rec.Salt[:], blowfish.KeyThenSalt)
	clear(key[:])

	var words [len(magicText) / 4]uint32
	for i := range words {
		words[i] = binary.BigEndian.Uint32([]byte(magicText[4*i:]))
	}
	for i := 0; i < len(words); i += 2 {
		l, r := words[i], words[i+1]
		for n := 0; n < 64; n++ {
			l, r = c.EncryptBlock(l, r)
		}
		words[i], words[i+1] = l, r
	}

	var full [len(magicText)]byte
	for i, w := range words {
		binary.BigEndian.PutUint32(full[4*i:], w)
	}
	var out [DigestLen]byte
	copy(out[:], full[:])
	clear(full[:])
	return out
}

// passwordKey turns a password into key material according to v's quirks.
func passwordKey(password []byte, v Version) blowfish.Key {
	n := min(len(password), MaxPasswordLen)
	buf := make([]byte, n, n+1)
	copy(buf, password)
	if v.appendsTerminator() {
		buf = append(buf, 0)
	}
	defer clear(buf)

	if v == Version2x {
		return blowfish.NewSignExtendedKey(buf)
	}
	return blowfish.NewKey(buf)
}
