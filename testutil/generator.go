package testutil

import (
	"math/rand/v2"

	"github.com/arthur-debert/nanoenum/nanoenum/ids"
)

// NewSeededGenerator returns an id generator whose output is fully
// determined by seed, so tests can compare ids across runs
func NewSeededGenerator(seed byte) *ids.RandomGenerator {
	var s [32]byte
	s[0] = seed
	return ids.NewWithReader(rand.NewChaCha8(s))
}
