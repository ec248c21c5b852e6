package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sequenceRNG struct {
	values []int
	idx    int
}

func (r *sequenceRNG) IntN(n int) int {
	v := r.values[r.idx%len(r.values)] % n
	r.idx++
	return v
}

func TestSelectorRange(t *testing.T) {
	s := NewSelector(nil, 156, -1)

	for i := 0; i < 10000; i++ {
		n := s.Next()
		if n < 0 || n > 155 {
			t.Fatalf("Next() = %d, want value in [0, 155]", n)
		}
	}
}

func TestSelectorRoughlyUniform(t *testing.T) {
	const deck = 6
	const draws = 60000

	s := NewSelector(nil, deck, -1)
	counts := make([]int, deck)
	for i := 0; i < draws; i++ {
		counts[s.Next()]++
	}

	expected := draws / deck
	for i, c := range counts {
		assert.InDeltaf(t, expected, c, float64(expected)*0.1, "position %d drawn %d times", i, c)
	}
}

func TestSelectorUsesRNG(t *testing.T) {
	s := NewSelector(&sequenceRNG{values: []int{3, 42, 200}}, 156, -1)

	assert.Equal(t, 3, s.Next())
	assert.Equal(t, 42, s.Next())
	assert.Equal(t, 44, s.Next())
}

func TestSelectorFixedIndex(t *testing.T) {
	s := NewSelector(&sequenceRNG{values: []int{1}}, 156, 6)

	for i := 0; i < 5; i++ {
		assert.Equal(t, 6, s.Next())
	}
}
