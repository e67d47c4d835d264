package games

// SlotSymbol is one reel symbol tier with its draw weight and line payout.
type SlotSymbol struct {
	Emoji      string
	Weight     int
	Multiplier float64
}

// Five tiers, rarest pays best. Weights are relative draw frequencies.
var slotSymbols = []SlotSymbol{
	{"🍒", 30, 2},
	{"🍋", 20, 3},
	{"🔔", 10, 5},
	{"💎", 5, 10},
	{"7️⃣", 2, 20},
}

var slotTotalWeight = func() int {
	total := 0
	for _, s := range slotSymbols {
		total += s.Weight
	}
	return total
}()

// SlotsResult describes one spin of the 3x3 grid.
type SlotsResult struct {
	Grid           [3][3]int // indexes into the symbol table
	LineMultiplier float64   // sum of multipliers over all matching lines
	Payout         float64   // bet * LineMultiplier
	Delta          float64   // Payout - bet
	Won            bool
}

// SlotSymbols returns the symbol table for rendering.
func SlotSymbols() []SlotSymbol {
	return slotSymbols
}

// SpinSlots draws a 3x3 grid of weighted symbols and scores it.
func SpinSlots(rng Rand, bet float64) SlotsResult {
	var grid [3][3]int
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			grid[r][c] = drawSymbol(rng)
		}
	}
	return scoreGrid(grid, bet)
}

func drawSymbol(rng Rand) int {
	roll := rng.Intn(slotTotalWeight)
	for i, s := range slotSymbols {
		if roll < s.Weight {
			return i
		}
		roll -= s.Weight
	}
	return len(slotSymbols) - 1
}

// scoreGrid evaluates 8 lines: 3 rows, 3 columns and both diagonals. Every
// line of three identical symbols adds that symbol's multiplier.
func scoreGrid(grid [3][3]int, bet float64) SlotsResult {
	lines := [8][3][2]int{
		{{0, 0}, {0, 1}, {0, 2}},
		{{1, 0}, {1, 1}, {1, 2}},
		{{2, 0}, {2, 1}, {2, 2}},
		{{0, 0}, {1, 0}, {2, 0}},
		{{0, 1}, {1, 1}, {2, 1}},
		{{0, 2}, {1, 2}, {2, 2}},
		{{0, 0}, {1, 1}, {2, 2}},
		{{0, 2}, {1, 1}, {2, 0}},
	}

	res := SlotsResult{Grid: grid}
	for _, line := range lines {
		a := grid[line[0][0]][line[0][1]]
		b := grid[line[1][0]][line[1][1]]
		c := grid[line[2][0]][line[2][1]]
		if a == b && b == c {
			res.LineMultiplier += slotSymbols[a].Multiplier
		}
	}

	res.Payout = bet * res.LineMultiplier
	res.Delta = res.Payout - bet
	res.Won = res.LineMultiplier > 0
	return res
}
