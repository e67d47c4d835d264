package games

// Daily card-guess payouts. Flat amounts, not bet-relative.
const (
	CardCount          = 4
	CardWinAmount      = 50
	CardLossAmount     = 10
	EscalateWinAmount  = 500
	EscalateLossAmount = 100
)

// CardResult describes one card draw against a player's pick.
type CardResult struct {
	Drawn   int // 1..CardCount
	Correct bool
	Delta   float64
}

// CardGuess resolves the daily pick-a-card draw: +50 on a correct guess,
// -10 otherwise.
func CardGuess(rng Rand, pick int) CardResult {
	drawn := rng.Intn(CardCount) + 1
	res := CardResult{Drawn: drawn, Correct: drawn == pick}
	if res.Correct {
		res.Delta = CardWinAmount
	} else {
		res.Delta = -CardLossAmount
	}
	return res
}

// CardEscalate resolves the one-shot x10 escalation offered after a losing
// guess: the same 1-in-4 draw paying +500 on success, -100 on failure.
func CardEscalate(rng Rand, pick int) CardResult {
	drawn := rng.Intn(CardCount) + 1
	res := CardResult{Drawn: drawn, Correct: drawn == pick}
	if res.Correct {
		res.Delta = EscalateWinAmount
	} else {
		res.Delta = -EscalateLossAmount
	}
	return res
}
