package blowfish

// Key is key material folded into the 18 words XORed into the P-array. Only
// the first 72 bytes of the cyclically repeated input contribute, so longer
// inputs are truncated by construction.
type Key [18]uint32

// NewKey folds b into a Key, repeating it as often as needed. An empty b
// yields the all-zero key.
func NewKey(b []byte) Key {
	var k Key
	if len(b) == 0 {
		return k
	}
	j := 0
	for i := range k {
		k[i] = nextWord(b, &j)
	}
	return k
}

// NewSignExtendedKey folds b into a Key the way the historical $2x$ hashes
// were produced: each byte is sign-extended to 32 bits before being ORed into
// the word, so bytes >= 0x80 clobber the bytes before them.
func NewSignExtendedKey(b []byte) Key {
	var k Key
	if len(b) == 0 {
		return k
	}
	j := 0
	for i := range k {
		var w uint32
		for n := 0; n < 4; n++ {
			w = w<<8 | uint32(int32(int8(b[j])))
			j++
			if j >= len(b) {
				j = 0
			}
		}
		k[i] = w
	}
	return k
}

// nextWord reads four bytes of b big-endian starting at *pos, wrapping
// around the end of b.
func nextWord(b []byte, pos *int) uint32 {
	var w uint32
	j := *pos
	for i := 0; i < 4; i++ {
		w = w<<8 | uint32(b[j])
		j++
		if j >= len(b) {
			j = 0
		}
	}
	*pos = j
	return w
}

// Order selects which input is re-keyed first in each round of the
// expensive loop.
type Order uint8

const (
	// KeyThenSalt is the bcrypt ordering.
	KeyThenSalt Order = iota
	// SaltThenKey is the bcrypt_pbkdf ordering.
	SaltThenKey
)

// NewEksCipher runs the EksBlowfish setup: the state is reset to the pi
// template, expanded once with key and salt, then re-keyed rounds times with
// the key and the salt alone. Callers validate rounds; bcrypt passes 1<<cost.
func NewEksCipher(rounds uint64, key *Key, salt []byte, order Order) *Cipher {
	var c Cipher
	c.reset()
	c.ExpandState(key, salt)

	saltKey := NewKey(salt)
	first, second := key, &saltKey
	if order == SaltThenKey {
		first, second = second, first
	}
	for i := uint64(0); i < rounds; i++ {
		c.Expand0State(first)
		c.Expand0State(second)
	}
	return &c
}

// ExpandState XORs key into the P-array and then refills the P-array and
// S-boxes with chained encryptions. Before each encryption the running block
// is XORed with the next 64 bits of salt, which is cycled as needed. An empty
// salt makes this identical to Expand0State.
func (c *Cipher) ExpandState(key *Key, salt []byte) {
	if len(salt) == 0 {
		c.Expand0State(key)
		return
	}
	for i := range c.p {
		c.p[i] ^= key[i]
	}

	j := 0
	var l, r uint32
	for i := 0; i < 18; i += 2 {
		l ^= nextWord(salt, &j)
		r ^= nextWord(salt, &j)
		l, r = c.EncryptBlock(l, r)
		c.p[i], c.p[i+1] = l, r
	}
	for _, s := range [...]*[256]uint32{&c.s0, &c.s1, &c.s2, &c.s3} {
		for i := 0; i < 256; i += 2 {
			l ^= nextWord(salt, &j)
			r ^= nextWord(salt, &j)
			l, r = c.EncryptBlock(l, r)
			s[i], s[i+1] = l, r
		}
	}
}

// Expand0State XORs key into the P-array and refills the P-array and S-boxes
// by repeatedly encrypting a block that starts at zero. With a fresh state
// this is the standard Blowfish key schedule.
func (c *Cipher) Expand0State(key *Key) {
	for i := range c.p {
		c.p[i] ^= key[i]
	}

	var l, r uint32
	for i := 0; i < 18; i += 2 {
		l, r = c.EncryptBlock(l, r)
		c.p[i], c.p[i+1] = l, r
	}
	for _, s := range [...]*[256]uint32{&c.s0, &c.s1, &c.s2, &c.s3} {
		for i := 0; i < 256; i += 2 {
			l, r = c.EncryptBlock(l, r)
			s[i], s[i+1] = l, r
		}
	}
}
