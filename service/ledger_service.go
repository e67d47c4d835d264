package service

import (
	"context"
	"fmt"

	"github.com/Hiroshi025/Nebura-sub000/config"
	"github.com/Hiroshi025/Nebura-sub000/models"
)

type ledgerService struct {
	uowFactory UnitOfWorkFactory
}

// NewLedgerService creates a new ledger service
func NewLedgerService(uowFactory UnitOfWorkFactory) LedgerService {
	return &ledgerService{uowFactory: uowFactory}
}

func (s *ledgerService) FetchBalance(ctx context.Context, userID, guildID string) (*models.BalanceRecord, error) {
	if err := ValidateID(userID); err != nil {
		return nil, err
	}
	if err := ValidateID(guildID); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	rec, err := getOrCreateBalance(ctx, uow, userID, guildID)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rec, nil
}

func (s *ledgerService) GetBalance(ctx context.Context, userID, guildID string) (*models.BalanceRecord, error) {
	if err := ValidateID(userID); err != nil {
		return nil, err
	}
	if err := ValidateID(guildID); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.Balances().GetByUserGuild(ctx, userID, guildID)
}

func (s *ledgerService) ApplyChange(ctx context.Context, userID, guildID string, delta float64, txType models.TransactionType, metadata map[string]any) (float64, error) {
	if err := ValidateID(userID); err != nil {
		return 0, err
	}
	if err := ValidateID(guildID); err != nil {
		return 0, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rec, err := getOrCreateBalance(ctx, uow, userID, guildID)
	if err != nil {
		return 0, err
	}

	newBalance, err := applyLedgerDelta(ctx, uow, rec, delta, txType, metadata)
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return newBalance, nil
}

func (s *ledgerService) AddMessageReward(ctx context.Context, userID, guildID string) error {
	if err := ValidateID(userID); err != nil {
		return err
	}
	if err := ValidateID(guildID); err != nil {
		return err
	}

	reward := models.NormalizeAmount(config.Get().MessageReward)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, err := getOrCreateBalance(ctx, uow, userID, guildID); err != nil {
		return err
	}

	if err := uow.Balances().ApplyMessageReward(ctx, userID, guildID, reward); err != nil {
		return fmt.Errorf("failed to apply message reward: %w", err)
	}

	return uow.Commit()
}

func (s *ledgerService) Leaderboard(ctx context.Context, guildID string, limit int) ([]*models.BalanceRecord, error) {
	if err := ValidateID(guildID); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.Balances().TopBalances(ctx, guildID, limit)
}

func (s *ledgerService) History(ctx context.Context, userID, guildID string, limit int) ([]*models.BalanceHistory, error) {
	if err := ValidateID(userID); err != nil {
		return nil, err
	}
	if err := ValidateID(guildID); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.History().GetByUser(ctx, userID, guildID, limit)
}

// applyLedgerDelta adjusts a balance by delta, enforcing the debt policy,
// and appends the history row. The caller owns the transaction.
func applyLedgerDelta(ctx context.Context, uow UnitOfWork, rec *models.BalanceRecord, delta float64, txType models.TransactionType, metadata map[string]any) (float64, error) {
	newBalance := models.NormalizeAmount(rec.Balance + delta)
	floorZero := !config.Get().AllowDebt
	if floorZero && newBalance < 0 {
		newBalance = 0
	}

	if err := uow.Balances().ApplyDelta(ctx, rec.UserID, rec.GuildID, delta, floorZero); err != nil {
		return 0, fmt.Errorf("failed to apply balance delta: %w", err)
	}

	history := &models.BalanceHistory{
		UserID:              rec.UserID,
		GuildID:             rec.GuildID,
		BalanceBefore:       rec.Balance,
		BalanceAfter:        newBalance,
		ChangeAmount:        newBalance - rec.Balance,
		TransactionType:     txType,
		TransactionMetadata: metadata,
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return 0, err
	}

	return newBalance, nil
}
