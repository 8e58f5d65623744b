// Package entropy provides the random sources used by a game session.
// A zero seed means live randomness drawn from crypto/rand; any other seed
// reproduces the same valley, events and story timing.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	mrand "math/rand"
	"time"
)

// CryptoSeed returns a non-zero seed read from crypto/rand.
func CryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// This should never happen; fall back to the clock.
		slog.Debug("crypto seed failed", "error", err)
		return time.Now().UnixNano() | 1
	}
	seed := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed
}

// NewRand creates a source for seed, replacing a zero seed with CryptoSeed.
// The effective seed is returned so a session can be replayed.
func NewRand(seed int64) (*mrand.Rand, int64) {
	if seed == 0 {
		seed = CryptoSeed()
	}
	return mrand.New(mrand.NewSource(seed)), seed
}

// Split derives an independent source from parent, so terrain generation and
// turn events do not disturb each other's sequence.
func Split(parent *mrand.Rand) *mrand.Rand {
	return mrand.New(mrand.NewSource(parent.Int63()))
}
