package games

import (
	"math/rand"
	"time"
)

// Rand is the subset of math/rand used by the engines. Injected so tests
// can script draws.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a time-seeded source suitable for production play.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
