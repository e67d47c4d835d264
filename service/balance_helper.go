package service

import (
	"context"
	"fmt"

	"github.com/Hiroshi025/Nebura-sub000/events"
	"github.com/Hiroshi025/Nebura-sub000/models"
)

// RecordBalanceChange records a balance history entry and emits the
// matching event. This is the single entry point for all balance changes
// in the system.
func RecordBalanceChange(ctx context.Context, uow UnitOfWork, history *models.BalanceHistory) error {
	if err := uow.History().Record(ctx, history); err != nil {
		return fmt.Errorf("failed to record balance history: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:          history.UserID,
		GuildID:         history.GuildID,
		OldBalance:      history.BalanceBefore,
		NewBalance:      history.BalanceAfter,
		TransactionType: history.TransactionType,
		ChangeAmount:    history.ChangeAmount,
	})

	return nil
}

// getOrCreateBalance is the lazy-create path shared by every service:
// returns the existing record, or creates one with balance 0 and records
// the initial history entry.
func getOrCreateBalance(ctx context.Context, uow UnitOfWork, userID, guildID string) (*models.BalanceRecord, error) {
	rec, err := uow.Balances().GetByUserGuild(ctx, userID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance record: %w", err)
	}
	if rec != nil {
		return rec, nil
	}

	rec, err = uow.Balances().Create(ctx, userID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to create balance record: %w", err)
	}

	history := &models.BalanceHistory{
		UserID:          userID,
		GuildID:         guildID,
		BalanceBefore:   0,
		BalanceAfter:    0,
		ChangeAmount:    0,
		TransactionType: models.TransactionTypeInitial,
		TransactionMetadata: map[string]any{
			"lazy_create": true,
		},
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.LedgerCreatedEvent{UserID: userID, GuildID: guildID})

	return rec, nil
}
