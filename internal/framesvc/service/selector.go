package service

import "math/rand/v2"

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// IntN returns a non-negative random int in [0, n).
	IntN(n int) int
}

type stdRNG struct{}

func (stdRNG) IntN(n int) int { return rand.IntN(n) }

// Selector picks the deck position a reading will mint.
type Selector struct {
	rng      RNG
	deckSize int
	fixed    int
}

// NewSelector draws uniformly from [0, deckSize-1]. A non-negative fixed index
// pins every draw, which is how a testnet with only a few minted tokens is served.
func NewSelector(rng RNG, deckSize, fixed int) *Selector {
	if rng == nil {
		rng = stdRNG{}
	}
	if deckSize < 1 {
		deckSize = 1
	}
	return &Selector{rng: rng, deckSize: deckSize, fixed: fixed}
}

func (s *Selector) Next() int {
	if s.fixed >= 0 {
		return s.fixed
	}
	return s.rng.IntN(s.deckSize)
}
