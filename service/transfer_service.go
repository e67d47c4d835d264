package service

import (
	"context"
	"fmt"

	"github.com/Hiroshi025/Nebura-sub000/models"
)

type transferService struct {
	uowFactory UnitOfWorkFactory
}

// NewTransferService creates a new transfer service
func NewTransferService(uowFactory UnitOfWorkFactory) TransferService {
	return &transferService{uowFactory: uowFactory}
}

func (s *transferService) Transfer(ctx context.Context, guildID, fromUserID, toUserID string, amount float64) (*models.TransferResult, error) {
	for _, id := range []string{guildID, fromUserID, toUserID} {
		if err := ValidateID(id); err != nil {
			return nil, err
		}
	}

	amount = models.NormalizeAmount(amount)
	if amount <= 0 {
		return nil, fmt.Errorf("transfer amount must be positive")
	}
	if fromUserID == toUserID {
		return nil, fmt.Errorf("cannot transfer to yourself")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	fromRec, err := getOrCreateBalance(ctx, uow, fromUserID, guildID)
	if err != nil {
		return nil, err
	}
	toRec, err := getOrCreateBalance(ctx, uow, toUserID, guildID)
	if err != nil {
		return nil, err
	}

	if fromRec.Balance < amount {
		return nil, fmt.Errorf("%w: have %.2f, need %.2f", ErrInsufficientBalance, fromRec.Balance, amount)
	}

	if err := uow.Balances().DeductBalance(ctx, fromUserID, guildID, amount); err != nil {
		return nil, fmt.Errorf("failed to deduct transfer amount: %w", err)
	}

	newFromBalance := models.NormalizeAmount(fromRec.Balance - amount)
	fromHistory := &models.BalanceHistory{
		UserID:          fromUserID,
		GuildID:         guildID,
		BalanceBefore:   fromRec.Balance,
		BalanceAfter:    newFromBalance,
		ChangeAmount:    -amount,
		TransactionType: models.TransactionTypeTransferOut,
		TransactionMetadata: map[string]any{
			"recipient_user_id": toUserID,
			"transfer_amount":   amount,
		},
	}
	if err := RecordBalanceChange(ctx, uow, fromHistory); err != nil {
		return nil, err
	}

	if err := uow.Balances().ApplyDelta(ctx, toUserID, guildID, amount, false); err != nil {
		return nil, fmt.Errorf("failed to add transfer amount: %w", err)
	}

	toHistory := &models.BalanceHistory{
		UserID:          toUserID,
		GuildID:         guildID,
		BalanceBefore:   toRec.Balance,
		BalanceAfter:    models.NormalizeAmount(toRec.Balance + amount),
		ChangeAmount:    amount,
		TransactionType: models.TransactionTypeTransferIn,
		TransactionMetadata: map[string]any{
			"sender_user_id":  fromUserID,
			"transfer_amount": amount,
		},
	}
	if err := RecordBalanceChange(ctx, uow, toHistory); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.TransferResult{
		Amount:      amount,
		RecipientID: toUserID,
		NewBalance:  newFromBalance,
	}, nil
}
