package bcrypt

import (
	"bytes"
)

// HashRecord is the parsed form of a stored hash:
//
//	$<version>$<cost>$<22-char salt><31-char digest>
//
// The record is self-describing, so verification needs nothing besides the
// password and the string.
type HashRecord struct {
	Version Version
	Cost    int
	Salt    [SaltLen]byte
	Digest  [DigestLen]byte
}

// ParseHash decodes a complete hash string. Errors wrap ErrMalformedHash
// together with the specific cause (ErrUnsupportedVersion, ErrInvalidCost or
// ErrInvalidSalt).
func ParseHash(hash []byte) (*HashRecord, error) {
	rec, n, err := parsePrefix(hash, ErrMalformedHash)
	if err != nil {
		return nil, err
	}
	digest := hash[n:]
	if len(digest) != EncodedDigestLen {
		return nil, newHashError(n, "digest must be 31 characters", nil)
	}
	raw, err := DecodeRadix64(digest)
	if err != nil {
		return nil, newHashError(n+offsetOf(err), "digest is not radix-64", ErrInvalidEncoding)
	}
	copy(rec.Digest[:], raw)
	return rec, nil
}

// ParseSalt decodes the salt prefix produced by Gensalt. A complete hash
// string is accepted too; its digest is checked for well-formedness and
// otherwise ignored. Errors wrap ErrInvalidSalt.
func ParseSalt(salt []byte) (*HashRecord, error) {
	rec, n, err := parsePrefix(salt, ErrInvalidSalt)
	if err != nil {
		return nil, err
	}
	switch rest := salt[n:]; len(rest) {
	case 0:
	case EncodedDigestLen:
		if _, err := DecodeRadix64(rest); err != nil {
			return nil, newSaltError(n+offsetOf(err), "trailing digest is not radix-64", ErrInvalidEncoding)
		}
	default:
		return nil, newSaltError(n, "unexpected data after salt", nil)
	}
	return rec, nil
}

// parsePrefix reads "$<version>$<cost>$<salt>" and returns the number of
// bytes consumed. kind selects the error family reported.
func parsePrefix(s []byte, kind error) (*HashRecord, int, error) {
	fail := func(offset int, message string, cause error) (*HashRecord, int, error) {
		return nil, 0, &DecodeError{Kind: kind, Offset: offset, Message: message, Err: cause}
	}

	if len(s) == 0 || s[0] != '$' {
		return fail(0, "missing leading '$'", nil)
	}
	end := bytes.IndexByte(s[1:], '$')
	if end < 0 || end > 2 {
		return fail(1, "missing version terminator", ErrUnsupportedVersion)
	}
	end++
	version, err := ParseVersion(string(s[1:end]))
	if err != nil {
		return fail(1, "unknown version "+quote(s[1:end]), ErrUnsupportedVersion)
	}

	pos := end + 1
	if len(s) < pos+3 || !isDigit(s[pos]) || !isDigit(s[pos+1]) || s[pos+2] != '$' {
		return fail(pos, "cost must be two digits followed by '$'", ErrInvalidSalt)
	}
	cost := int(s[pos]-'0')*10 + int(s[pos+1]-'0')
	if err := ValidateCost(cost); err != nil {
		return fail(pos, err.Error(), ErrInvalidCost)
	}

	pos += 3
	if len(s) < pos+EncodedSaltLen {
		return fail(pos, "salt must be 22 characters", ErrInvalidSalt)
	}
	raw, err := DecodeRadix64(s[pos : pos+EncodedSaltLen])
	if err != nil {
		return fail(pos+offsetOf(err), "salt is not radix-64", ErrInvalidSalt)
	}

	rec := &HashRecord{Version: version, Cost: cost}
	copy(rec.Salt[:], raw)
	return rec, pos + EncodedSaltLen, nil
}

// Encode returns the full hash string. The cost is always two digits.
func (r *HashRecord) Encode() []byte {
	b := r.appendPrefix(make([]byte, 0, 7+EncodedSaltLen+EncodedDigestLen))
	return append(b, EncodeRadix64(r.Digest[:])...)
}

// SaltString returns the "$<version>$<cost>$<salt>" prefix accepted by
// Hashpw.
func (r *HashRecord) SaltString() []byte {
	return r.appendPrefix(make([]byte, 0, 7+EncodedSaltLen))
}

func (r *HashRecord) String() string {
	return string(r.Encode())
}

func (r *HashRecord) appendPrefix(b []byte) []byte {
	b = append(b, '$')
	b = append(b, r.Version.String()...)
	b = append(b, '$', byte('0'+r.Cost/10), byte('0'+r.Cost%10), '$')
	return append(b, EncodeRadix64(r.Salt[:])...)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// offsetOf extracts the offset carried by a DecodeError, or 0.
func offsetOf(err error) int {
	if de, ok := err.(*DecodeError); ok && de.Offset > 0 {
		return de.Offset
	}
	return 0
}

func quote(b []byte) string {
	const limit = 8
	if len(b) > limit {
		b = b[:limit]
	}
	return "\"" + string(bytes.ToValidUTF8(b, []byte("?"))) + "\""
}
