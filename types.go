package bcrypt

import (
	"crypto/rand"
	"errors"
	"io"
)

const (
	// MinCost is the smallest accepted cost factor.
	MinCost = 4
	// MaxCost is the largest accepted cost factor.
	MaxCost = 31
	// DefaultCost is used by Gensalt and DefaultConfig.
	DefaultCost = 12

	// SaltLen is the raw salt size in bytes.
	SaltLen = 16
	// EncodedSaltLen is the salt size once Radix-64 encoded.
	EncodedSaltLen = 22
	// DigestLen is the number of digest bytes kept in a hash string. The
	// digest builder produces one more byte that is always dropped.
	DigestLen = 23
	// EncodedDigestLen is the digest size once Radix-64 encoded.
	EncodedDigestLen = 31

	// MaxPasswordLen is the number of password bytes that influence the
	// hash, counting the terminating zero byte added by most versions.
	MaxPasswordLen = 72
)

// Version identifies one of the historical bcrypt variants. They share the
// algorithm and differ only in how the password bytes become key material.
type Version uint8

const (
	// Version2b is the current OpenBSD variant.
	Version2b Version = iota
	// Version2a appends the terminating zero byte to the password.
	Version2a
	// Version2y is crypt_blowfish's name for the correct behaviour; it hashes
	// like Version2b.
	Version2y
	// Version2x reproduces the crypt_blowfish sign-extension bug for
	// passwords containing bytes >= 0x80. Verification only.
	Version2x
	// Version2 is the original variant, which does not append the zero byte.
	Version2
)

// String returns the tag as it appears between the first two '$'.
func (v Version) String() string {
	switch v {
	case Version2b:
		return "2b"
	case Version2a:
		return "2a"
	case Version2y:
		return "2y"
	case Version2x:
		return "2x"
	case Version2:
		return "2"
	default:
		return "unknown"
	}
}

// ParseVersion maps a tag such as "2b" to its Version.
func ParseVersion(tag string) (Version, error) {
	switch tag {
	case "2b":
		return Version2b, nil
	case "2a":
		return Version2a, nil
	case "2y":
		return Version2y, nil
	case "2x":
		return Version2x, nil
	case "2":
		return Version2, nil
	default:
		return 0, ErrUnsupportedVersion
	}
}

// appendsTerminator reports whether the password is hashed with its trailing
// zero byte.
func (v Version) appendsTerminator() bool {
	return v != Version2
}

// KDFParams contains parameters for bcrypt_pbkdf key derivation
type KDFParams struct {
	Rounds   int // Literal number of rounds (default 16)
	SaltSize int // Salt size in bytes (default 16)
	KeySize  int // Derived key size in bytes (default 32)
}

// Config contains configuration for a Hasher
type Config struct {
	// Version tag written into new hashes. Version2x is rejected: it exists
	// only to verify old hashes.
	Version Version

	// Cost factor for new hashes
	Cost int

	// Rand supplies salt bytes. Defaults to crypto/rand.Reader. A Hasher
	// serializes its reads, so a plain bytes.Reader is fine.
	Rand io.Reader

	// Parallel controls batch hashing and verification
	Parallel ParallelConfig
}

// DefaultConfig returns a configuration producing $2b$ hashes at
// DefaultCost.
func DefaultConfig() *Config {
	return &Config{
		Version:  Version2b,
		Cost:     DefaultCost,
		Rand:     rand.Reader,
		Parallel: DefaultParallelConfig(),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}
	if c.Version > Version2 {
		return errors.New("unsupported version")
	}
	if c.Version == Version2x {
		return errors.New("version 2x can only be verified, not generated")
	}
	if err := ValidateCost(c.Cost); err != nil {
		return err
	}
	if err := c.Parallel.Validate(); err != nil {
		return err
	}
	return nil
}
