package bcrypt

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Gensalt returns a "$2b$NN$<salt>" prefix for Hashpw built from 16 bytes of
// crypto/rand. logRounds is clamped to [MinCost, MaxCost] rather than
// rejected.
func Gensalt(logRounds int) ([]byte, error) {
	return GensaltFrom(rand.Reader, logRounds, Version2b)
}

// GensaltFrom is Gensalt with an explicit random source and version tag.
func GensaltFrom(r io.Reader, logRounds int, v Version) ([]byte, error) {
	if v > Version2 {
		return nil, NewValidationError("version", v, "unknown version", ErrUnsupportedVersion)
	}
	rec := &HashRecord{Version: v, Cost: clampCost(logRounds)}
	if _, err := io.ReadFull(r, rec.Salt[:]); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return rec.SaltString(), nil
}

func clampCost(cost int) int {
	return min(max(cost, MinCost), MaxCost)
}
