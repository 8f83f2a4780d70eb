package bcrypt

import (
	"encoding/base64"
)

// alphabet is the bcrypt ordering of the 64 symbols. It differs from the
// standard base64 alphabet, so the two are not interchangeable.
const alphabet = "./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var radix64 = base64.NewEncoding(alphabet).WithPadding(base64.NoPadding)

// EncodeRadix64 encodes src with the bcrypt alphabet. Every 3 bytes become 4
// characters; a trailing partial group produces only the characters it needs
// (16 bytes encode to 22 characters, 23 bytes to 31).
func EncodeRadix64(src []byte) []byte {
	dst := make([]byte, radix64.EncodedLen(len(src)))
	radix64.Encode(dst, src)
	return dst
}

// DecodeRadix64 is the inverse of EncodeRadix64. It fails on characters
// outside the alphabet and on lengths no encoding can produce. Unused low
// bits in the last character are ignored, as the reference implementations
// do.
func DecodeRadix64(src []byte) ([]byte, error) {
	if len(src)%4 == 1 {
		return nil, &DecodeError{
			Kind:    ErrInvalidEncoding,
			Offset:  len(src) - 1,
			Message: "impossible encoded length",
		}
	}
	// The base64 decoder silently skips CR and LF, so check every byte first.
	for i, c := range src {
		if !isRadix64(c) {
			return nil, &DecodeError{
				Kind:    ErrInvalidEncoding,
				Offset:  i,
				Message: "character outside the radix-64 alphabet",
			}
		}
	}
	dst := make([]byte, radix64.DecodedLen(len(src)))
	n, err := radix64.Decode(dst, src)
	if err != nil {
		return nil, &DecodeError{
			Kind:    ErrInvalidEncoding,
			Offset:  -1,
			Message: err.Error(),
		}
	}
	return dst[:n], nil
}

func isRadix64(c byte) bool {
	switch {
	case c == '.' || c == '/':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= '0' && c <= '9':
		return true
	}
	return false
}
