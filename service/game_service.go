package service

import (
	"context"
	"fmt"
	"math"

	"github.com/Hiroshi025/Nebura-sub000/events"
	"github.com/Hiroshi025/Nebura-sub000/games"
	"github.com/Hiroshi025/Nebura-sub000/models"
)

type gameService struct {
	uowFactory UnitOfWorkFactory
	rng        games.Rand
}

// NewGameService creates a new game service. A nil rng uses a time-seeded
// source.
func NewGameService(uowFactory UnitOfWorkFactory, rng games.Rand) GameService {
	if rng == nil {
		rng = games.NewRand()
	}
	return &gameService{uowFactory: uowFactory, rng: rng}
}

// validateBet rejects missing, non-positive, non-finite and over-balance
// bets. Invalid bets must never reach an engine's RNG draw.
func validateBet(bet, balance float64) error {
	if math.IsNaN(bet) || math.IsInf(bet, 0) || bet <= 0 {
		return fmt.Errorf("%w: bet must be a positive amount", ErrInvalidBet)
	}
	if bet > balance {
		return fmt.Errorf("%w: bet %.2f exceeds balance %.2f", ErrInvalidBet, bet, balance)
	}
	return nil
}

func (s *gameService) PlayCoinflip(ctx context.Context, userID, guildID string, bet float64, pick games.CoinSide) (*games.CoinflipResult, float64, error) {
	rec, uow, err := s.begin(ctx, userID, guildID)
	if err != nil {
		return nil, 0, err
	}
	defer uow.Rollback()

	if err := validateBet(bet, rec.Balance); err != nil {
		return nil, 0, err
	}

	res := games.Coinflip(s.rng, bet, pick)

	txType := models.TransactionTypeGameWin
	if res.Delta < 0 {
		txType = models.TransactionTypeGameLoss
	}
	newBalance, err := applyLedgerDelta(ctx, uow, rec, res.Delta, txType, map[string]any{
		"game":    "coinflip",
		"bet":     bet,
		"pick":    string(pick),
		"drawn":   string(res.Drawn),
		"special": res.Special,
		"extreme": res.Extreme,
	})
	if err != nil {
		return nil, 0, err
	}

	if err := uow.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &res, newBalance, nil
}

func (s *gameService) SettleRisk(ctx context.Context, userID, guildID string, bet float64, roundsWon int, busted bool) (float64, error) {
	delta := games.RiskDelta(bet, roundsWon, busted)

	rec, uow, err := s.begin(ctx, userID, guildID)
	if err != nil {
		return 0, err
	}
	defer uow.Rollback()

	if delta == 0 {
		// Manual stop before any loss settles at zero.
		return rec.Balance, nil
	}

	txType := models.TransactionTypeGameWin
	if delta < 0 {
		txType = models.TransactionTypeGameLoss
	}
	newBalance, err := applyLedgerDelta(ctx, uow, rec, delta, txType, map[string]any{
		"game":       "coinflip_risk",
		"bet":        bet,
		"rounds_won": roundsWon,
		"busted":     busted,
	})
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return newBalance, nil
}

func (s *gameService) PlaySlots(ctx context.Context, userID, guildID string, bet float64) (*games.SlotsResult, float64, error) {
	rec, uow, err := s.begin(ctx, userID, guildID)
	if err != nil {
		return nil, 0, err
	}
	defer uow.Rollback()

	if err := validateBet(bet, rec.Balance); err != nil {
		return nil, 0, err
	}

	res := games.SpinSlots(s.rng, bet)

	txType := models.TransactionTypeGameWin
	if res.Delta < 0 {
		txType = models.TransactionTypeGameLoss
	}
	newBalance, err := applyLedgerDelta(ctx, uow, rec, res.Delta, txType, map[string]any{
		"game":            "slots",
		"bet":             bet,
		"line_multiplier": res.LineMultiplier,
	})
	if err != nil {
		return nil, 0, err
	}

	if err := uow.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &res, newBalance, nil
}

func (s *gameService) PlayCardGuess(ctx context.Context, userID, guildID string, pick int) (*games.CardResult, float64, error) {
	if pick < 1 || pick > games.CardCount {
		return nil, 0, fmt.Errorf("%w: pick a card between 1 and %d", ErrInvalidBet, games.CardCount)
	}

	rec, uow, err := s.begin(ctx, userID, guildID)
	if err != nil {
		return nil, 0, err
	}
	defer uow.Rollback()

	res := games.CardGuess(s.rng, pick)
	newBalance, err := s.settleCards(ctx, uow, rec, &res, "daily_cards")
	if err != nil {
		return nil, 0, err
	}

	return &res, newBalance, nil
}

func (s *gameService) PlayCardEscalation(ctx context.Context, userID, guildID string, pick int) (*games.CardResult, float64, error) {
	if pick < 1 || pick > games.CardCount {
		return nil, 0, fmt.Errorf("%w: pick a card between 1 and %d", ErrInvalidBet, games.CardCount)
	}

	rec, uow, err := s.begin(ctx, userID, guildID)
	if err != nil {
		return nil, 0, err
	}
	defer uow.Rollback()

	res := games.CardEscalate(s.rng, pick)
	newBalance, err := s.settleCards(ctx, uow, rec, &res, "daily_cards_x10")
	if err != nil {
		return nil, 0, err
	}

	return &res, newBalance, nil
}

func (s *gameService) settleCards(ctx context.Context, uow UnitOfWork, rec *models.BalanceRecord, res *games.CardResult, game string) (float64, error) {
	txType := models.TransactionTypeGameWin
	if res.Delta < 0 {
		txType = models.TransactionTypeGameLoss
	}
	newBalance, err := applyLedgerDelta(ctx, uow, rec, res.Delta, txType, map[string]any{
		"game":  game,
		"drawn": res.Drawn,
	})
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return newBalance, nil
}

func (s *gameService) PlayRoulette(ctx context.Context, userID, guildID string, bet float64, kind games.RouletteBetKind, number int, color games.RouletteColor) (*games.RouletteResult, float64, error) {
	if kind == games.RouletteBetNumber && (number < 0 || number > 36) {
		return nil, 0, fmt.Errorf("%w: number must be between 0 and 36", ErrInvalidBet)
	}

	rec, uow, err := s.begin(ctx, userID, guildID)
	if err != nil {
		return nil, 0, err
	}
	defer uow.Rollback()

	if err := validateBet(bet, rec.Balance); err != nil {
		return nil, 0, err
	}

	res := games.SpinRoulette(s.rng, bet, kind, number, color)

	txType := models.TransactionTypeGameWin
	if res.Delta < 0 {
		txType = models.TransactionTypeGameLoss
	}
	newBalance, err := applyLedgerDelta(ctx, uow, rec, res.Delta, txType, map[string]any{
		"game":   "roulette",
		"bet":    bet,
		"number": res.Number,
		"color":  string(res.Color),
	})
	if err != nil {
		return nil, 0, err
	}

	if err := uow.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &res, newBalance, nil
}

func (s *gameService) ResolveDuel(ctx context.Context, guildID, challengerID, opponentID string, stake float64) (*models.DuelResult, error) {
	for _, id := range []string{guildID, challengerID, opponentID} {
		if err := ValidateID(id); err != nil {
			return nil, err
		}
	}
	if challengerID == opponentID {
		return nil, fmt.Errorf("cannot duel yourself")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	challenger, err := getOrCreateBalance(ctx, uow, challengerID, guildID)
	if err != nil {
		return nil, err
	}
	opponent, err := getOrCreateBalance(ctx, uow, opponentID, guildID)
	if err != nil {
		return nil, err
	}

	if err := validateBet(stake, challenger.Balance); err != nil {
		return nil, err
	}
	if err := validateBet(stake, opponent.Balance); err != nil {
		return nil, err
	}

	winner, loser := challenger, opponent
	if s.rng.Float64() >= 0.5 {
		winner, loser = opponent, challenger
	}

	winnerBalance, err := applyLedgerDelta(ctx, uow, winner, stake, models.TransactionTypeDuelWin, map[string]any{
		"opponent": loser.UserID,
		"stake":    stake,
	})
	if err != nil {
		return nil, err
	}
	loserBalance, err := applyLedgerDelta(ctx, uow, loser, -stake, models.TransactionTypeDuelLoss, map[string]any{
		"opponent": winner.UserID,
		"stake":    stake,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Balances().RecordDuelResult(ctx, winner.UserID, guildID, true); err != nil {
		return nil, fmt.Errorf("failed to record duel win: %w", err)
	}
	if err := uow.Balances().RecordDuelResult(ctx, loser.UserID, guildID, false); err != nil {
		return nil, fmt.Errorf("failed to record duel loss: %w", err)
	}

	uow.EventBus().Publish(events.DuelResolvedEvent{
		GuildID:  guildID,
		WinnerID: winner.UserID,
		LoserID:  loser.UserID,
		Stake:    stake,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.DuelResult{
		WinnerID:         winner.UserID,
		LoserID:          loser.UserID,
		Stake:            stake,
		WinnerNewBalance: winnerBalance,
		LoserNewBalance:  loserBalance,
	}, nil
}

// begin validates ids, starts a unit of work and loads (or lazily
// creates) the player's balance record. The caller must Rollback.
func (s *gameService) begin(ctx context.Context, userID, guildID string) (*models.BalanceRecord, UnitOfWork, error) {
	if err := ValidateID(userID); err != nil {
		return nil, nil, err
	}
	if err := ValidateID(guildID); err != nil {
		return nil, nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	rec, err := getOrCreateBalance(ctx, uow, userID, guildID)
	if err != nil {
		uow.Rollback()
		return nil, nil, err
	}

	return rec, uow, nil
}
