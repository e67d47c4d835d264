package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardGuess_Correct(t *testing.T) {
	rng := &scriptedRand{ints: []int{1}} // draws card 2

	res := CardGuess(rng, 2)

	assert.True(t, res.Correct)
	assert.Equal(t, 2, res.Drawn)
	assert.Equal(t, 50.0, res.Delta)
}

func TestCardGuess_Wrong(t *testing.T) {
	rng := &scriptedRand{ints: []int{0}} // draws card 1

	res := CardGuess(rng, 3)

	assert.False(t, res.Correct)
	assert.Equal(t, -10.0, res.Delta)
}

func TestCardEscalate_Correct(t *testing.T) {
	rng := &scriptedRand{ints: []int{3}} // draws card 4

	res := CardEscalate(rng, 4)

	assert.True(t, res.Correct)
	assert.Equal(t, 500.0, res.Delta)
}

func TestCardEscalate_Wrong(t *testing.T) {
	rng := &scriptedRand{ints: []int{2}} // draws card 3

	res := CardEscalate(rng, 1)

	assert.False(t, res.Correct)
	assert.Equal(t, -100.0, res.Delta)
}
