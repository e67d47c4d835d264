package games

// CoinSide is a coinflip pick or outcome.
type CoinSide string

const (
	Heads CoinSide = "heads"
	Tails CoinSide = "tails"
)

const (
	// specialWinChance is the chance a winning flip pays 10x instead of 2x.
	specialWinChance = 0.01
	// riskOfferChance is the chance a winning flip offers risk mode.
	riskOfferChance = 0.05
	// extremeLossChance is the chance a losing flip costs 4x the bet.
	extremeLossChance = 0.10

	// RiskMaxRounds is how many consecutive 50/50 wins complete a risk chain.
	RiskMaxRounds = 3
	// RiskBonusMultiplier is the bonus paid for a completed risk chain.
	RiskBonusMultiplier = 5
)

// CoinflipResult describes a single resolved flip.
type CoinflipResult struct {
	Drawn       CoinSide
	Won         bool
	Special     bool // 10x payout branch
	Extreme     bool // 4x loss branch
	RiskOffered bool
	Payout      float64 // gross payout on a win (includes the returned bet)
	Delta       float64 // signed balance change
}

// Coinflip resolves one coin flip for the given bet and pick. The caller is
// responsible for validating the bet before the draw.
func Coinflip(rng Rand, bet float64, pick CoinSide) CoinflipResult {
	drawn := Tails
	if rng.Float64() < 0.5 {
		drawn = Heads
	}

	res := CoinflipResult{Drawn: drawn, Won: drawn == pick}
	if res.Won {
		res.Payout = bet * 2
		if rng.Float64() < specialWinChance {
			res.Special = true
			res.Payout = bet * 10
		}
		res.Delta = res.Payout - bet
		if rng.Float64() < riskOfferChance {
			res.RiskOffered = true
		}
		return res
	}

	res.Delta = -bet
	if rng.Float64() < extremeLossChance {
		res.Extreme = true
		res.Delta = -bet * 4
	}
	return res
}

// RiskDraw resolves one 50/50 round of a risk chain.
func RiskDraw(rng Rand) bool {
	return rng.Float64() < 0.5
}

/// RiskDelta returns the balance change for a finished risk chain: the 5x
// bonus when all rounds were won, losing the original bet again otherwise.
// A manual stop before any loss settles at zero.
func RiskDelta(bet float64, roundsWon int, busted bool) float64 {
	if busted {
		return -bet
	}
	if roundsWon >= RiskMaxRounds {
		return bet * RiskBonusMultiplier
	}
	return 0
}
