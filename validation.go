package bcrypt

import (
	"bytes"
	"fmt"
)

// Input validation helpers shared by the hashing and KDF entry points

// ValidateCost checks that cost is within [MinCost, MaxCost]
func ValidateCost(cost int) error {
	if cost < MinCost || cost > MaxCost {
		return &ValidationError{
			Field:   "cost",
			Value:   cost,
			Message: fmt.Sprintf("cost %d outside [%d, %d]", cost, MinCost, MaxCost),
			Err:     ErrInvalidCost,
		}
	}
	return nil
}

// ValidateRounds checks a literal KDF round count
func ValidateRounds(rounds int) error {
	if rounds < 1 {
		return &ValidationError{
			Field:   "rounds",
			Value:   rounds,
			Message: "rounds must be at least 1",
			Err:     ErrInvalidRounds,
		}
	}
	return nil
}

// ValidateKeyLength checks a requested KDF output length
func ValidateKeyLength(n int) error {
	if n < 1 || n > maxKeyLen {
		return &ValidationError{
			Field:   "key_length",
			Value:   n,
			Message: fmt.Sprintf("key length %d outside [1, %d]", n, maxKeyLen),
			Err:     ErrInvalidKeyLength,
		}
	}
	return nil
}

// ValidateNoNul rejects inputs containing a zero byte. Textual hashing treats
// the zero byte as a terminator, so accepting it would silently drop the
// rest of the input.
func ValidateNoNul(b []byte, name string) error {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return &ValidationError{
			Field:   name,
			Value:   i,
			Message: fmt.Sprintf("nul byte at offset %d", i),
			Err:     ErrEmbeddedNul,
		}
	}
	return nil
}

// ValidateKDFInput checks the password and salt given to Kdf
func ValidateKDFInput(password, salt []byte) error {
	if len(password) == 0 {
		return &ValidationError{
			Field:   "password",
			Message: "password cannot be empty",
			Err:     ErrEmptyPassword,
		}
	}
	if len(salt) == 0 || len(salt) > maxKDFSaltLen {
		return &ValidationError{
			Field:   "salt",
			Value:   len(salt),
			Message: fmt.Sprintf("salt length %d outside [1, %d]", len(salt), maxKDFSaltLen),
			Err:     ErrInvalidSalt,
		}
	}
	return nil
}
