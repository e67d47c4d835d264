package games

// scriptedRand feeds predetermined draws to the engines.
type scriptedRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptedRand) Float64() float64 {
	v := r.floats[r.fi]
	r.fi++
	return v
}

func (r *scriptedRand) Intn(n int) int {
	v := r.ints[r.ii]
	r.ii++
	return v % n
}
