/*
Package randx provides identifiers and random sources used across the classroom service.

Message and competition identifiers are UUID v4 strings. Shuffles draw from a
math/rand/v2 generator seeded from crypto/rand so callers can also inject a fixed seed in tests.
*/
package randx

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
)

// MessageID generates a UUID v4 string identifying a live message.
func MessageID() string {
	return uuid.New().String()
}

// CompetitionID generates a UUID v4 string identifying one competition run.
func CompetitionID() string {
	return uuid.New().String()
}

// ConnectionID generates a UUID v4 string identifying one WebSocket connection.
func ConnectionID() string {
	return uuid.New().String()
}

// Source is the subset of *rand.Rand the roster engine needs.
type Source interface {
	Shuffle(n int, swap func(i, j int))
}

// NewSeeded returns a deterministic generator for the given seed.
func NewSeeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// lockedSource serializes access to a *rand.Rand, which is not safe for concurrent use.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *lockedSource) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rng.Shuffle(n, swap)
}

// NewSource returns a concurrency-safe Source seeded from crypto/rand.
func NewSource() Source {
	var seed [16]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// crypto/rand.Read does not fail on supported platforms.
		panic(err)
	}

	return &lockedSource{
		rng: rand.New(rand.NewPCG(
			binary.LittleEndian.Uint64(seed[:8]),
			binary.LittleEndian.Uint64(seed[8:]),
		)),
	}
}
