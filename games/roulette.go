package games

// RouletteColor is a wheel pocket color.
type RouletteColor string

const (
	Red   RouletteColor = "red"
	Black RouletteColor = "black"
	Green RouletteColor = "green"
)

// RouletteBetKind distinguishes the supported bet types.
type RouletteBetKind int

const (
	RouletteBetNumber RouletteBetKind = iota
	RouletteBetColor
)

var redNumbers = map[int]struct{}{
	1: {}, 3: {}, 5: {}, 7: {}, 9: {}, 12: {}, 14: {}, 16: {}, 18: {},
	19: {}, 21: {}, 23: {}, 25: {}, 27: {}, 30: {}, 32: {}, 34: {}, 36: {},
}

// ColorOf returns the color of a wheel pocket on a standard 0-36 wheel.
func ColorOf(n int) RouletteColor {
	if n == 0 {
		return Green
	}
	if _, ok := redNumbers[n]; ok {
		return Red
	}
	return Black
}

// RouletteResult describes one spin against a single bet.
type RouletteResult struct {
	Number int
	Color  RouletteColor
	Won    bool
	Payout float64
	Delta  float64
}

// SpinRoulette spins the wheel against a number or color bet. Straight
// number bets pay 35:1, color bets pay 1:1; green is never matched by a
// color bet.
func SpinRoulette(rng Rand, bet float64, kind RouletteBetKind, number int, color RouletteColor) RouletteResult {
	n := rng.Intn(37)
	res := RouletteResult{Number: n, Color: ColorOf(n)}

	switch kind {
	case RouletteBetNumber:
		res.Won = n == number
		if res.Won {
			res.Payout = bet * 36
		}
	case RouletteBetColor:
		res.Won = res.Color == color && res.Color != Green
		if res.Won {
			res.Payout = bet * 2
		}
	}

	if res.Won {
		res.Delta = res.Payout - bet
	} else {
		res.Delta = -bet
	}
	return res
}
