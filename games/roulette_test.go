package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpinRoulette_StraightWin(t *testing.T) {
	rng := &scriptedRand{ints: []int{17}}

	res := SpinRoulette(rng, 10, RouletteBetNumber, 17, "")

	assert.True(t, res.Won)
	assert.Equal(t, 17, res.Number)
	assert.Equal(t, 360.0, res.Payout)
	assert.Equal(t, 350.0, res.Delta)
}

func TestSpinRoulette_StraightLoss(t *testing.T) {
	rng := &scriptedRand{ints: []int{18}}

	res := SpinRoulette(rng, 10, RouletteBetNumber, 17, "")

	assert.False(t, res.Won)
	assert.Equal(t, -10.0, res.Delta)
}

func TestSpinRoulette_ColorWin(t *testing.T) {
	rng := &scriptedRand{ints: []int{3}} // 3 is red

	res := SpinRoulette(rng, 20, RouletteBetColor, 0, Red)

	assert.True(t, res.Won)
	assert.Equal(t, Red, res.Color)
	assert.Equal(t, 40.0, res.Payout)
	assert.Equal(t, 20.0, res.Delta)
}

func TestSpinRoulette_GreenBeatsColorBets(t *testing.T) {
	rng := &scriptedRand{ints: []int{0}}

	res := SpinRoulette(rng, 20, RouletteBetColor, 0, Red)

	assert.False(t, res.Won)
	assert.Equal(t, Green, res.Color)
	assert.Equal(t, -20.0, res.Delta)
}

func TestColorOf(t *testing.T) {
	assert.Equal(t, Green, ColorOf(0))
	assert.Equal(t, Red, ColorOf(1))
	assert.Equal(t, Black, ColorOf(2))
	assert.Equal(t, Red, ColorOf(36))
	assert.Equal(t, Black, ColorOf(35))
}
