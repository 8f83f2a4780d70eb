package bcrypt

import (
	"crypto/subtle"
)

// Verify reports whether password produces hash. A mismatch is (false, nil);
// an error means hash could not be parsed or password cannot be hashed at
// all (it contains a zero byte).
//
// The digests are compared in constant time.
func Verify(password, hash []byte) (bool, error) {
	if err := ValidateNoNul(password, "password"); err != nil {
		return false, err
	}
	rec, err := ParseHash(hash)
	if err != nil {
		return false, err
	}
	return verifyRecord(password, rec), nil
}

// Checkpw is Verify for callers that treat every failure as a mismatch.
func Checkpw(password, hash []byte) bool {
	ok, err := Verify(password, hash)
	return err == nil && ok
}

func verifyRecord(password []byte, rec *HashRecord) bool {
	got := digest(password, rec)
	return subtle.ConstantTimeCompare(got[:], rec.Digest[:]) == 1
}
