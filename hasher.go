package bcrypt

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"sync"
)

// Hasher produces and checks hashes under a fixed configuration. It is safe
// for concurrent use; reads from Config.Rand are serialized, so the reader
// itself need not be.
type Hasher struct {
	config Config

	randMu sync.Mutex
}

// NewHasher creates a Hasher. A nil config means DefaultConfig.
func NewHasher(config *Config) (*Hasher, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := *config
	if c.Rand == nil {
		c.Rand = rand.Reader
	}
	return &Hasher{config: c}, nil
}

// Config returns a copy of the hasher's configuration.
func (h *Hasher) Config() Config {
	return h.config
}

// Hash hashes password under a fresh salt.
func (h *Hasher) Hash(password []byte) ([]byte, error) {
	salt, err := h.salt()
	if err != nil {
		return nil, err
	}
	return Hashpw(password, salt)
}

func (h *Hasher) salt() ([]byte, error) {
	h.randMu.Lock()
	defer h.randMu.Unlock()
	return GensaltFrom(h.config.Rand, h.config.Cost, h.config.Version)
}

// Verify is the package-level Verify; it accepts hashes of any version and
// cost.
func (h *Hasher) Verify(password, hash []byte) (bool, error) {
	return Verify(password, hash)
}

// NeedsRehash reports whether hash was produced with a different cost or
// version than the hasher's configuration, meaning it should be replaced the
// next time the password is known.
func (h *Hasher) NeedsRehash(hash []byte) (bool, error) {
	rec, err := ParseHash(hash)
	if err != nil {
		return false, err
	}
	return rec.Cost != h.config.Cost || rec.Version != h.config.Version, nil
}

// HashContext is Hash that stops waiting when ctx is done. The computation
// cannot be interrupted; it finishes in the background and its result is
// discarded.
func (h *Hasher) HashContext(ctx context.Context, password []byte) ([]byte, error) {
	type result struct {
		hash []byte
		err  error
	}
	// The goroutine may outlive the call, so it works on its own copy.
	password = bytes.Clone(password)
	done := make(chan result, 1)
	go func() {
		defer clear(password)
		hash, err := h.Hash(password)
		done <- result{hash, err}
	}()

	select {
	case res := <-done:
		return res.hash, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// VerifyContext is Verify that stops waiting when ctx is done.
func (h *Hasher) VerifyContext(ctx context.Context, password, hash []byte) (bool, error) {
	type result struct {
		ok  bool
		err error
	}
	password = bytes.Clone(password)
	hash = bytes.Clone(hash)
	done := make(chan result, 1)
	go func() {
		defer clear(password)
		ok, err := Verify(password, hash)
		done <- result{ok, err}
	}()

	select {
	case res := <-done:
		return res.ok, res.err
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
