package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Hiroshi025/Nebura-sub000/events"
	"github.com/Hiroshi025/Nebura-sub000/models"
)

type loanService struct {
	uowFactory UnitOfWorkFactory
	now        func() time.Time
}

// NewLoanService creates a new loan service
func NewLoanService(uowFactory UnitOfWorkFactory) LoanService {
	return &loanService{uowFactory: uowFactory, now: time.Now}
}

func (s *loanService) RequestLoan(ctx context.Context, userID, guildID string, amount float64) (*models.LoanRecord, error) {
	if err := ValidateID(userID); err != nil {
		return nil, err
	}
	if err := ValidateID(guildID); err != nil {
		return nil, err
	}

	amount = models.NormalizeAmount(amount)
	if amount <= 0 {
		return nil, fmt.Errorf("loan amount must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	// Application-level check, not a database constraint: two concurrent
	// requests can both pass it.
	outstanding, err := uow.Loans().GetOutstanding(ctx, userID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to check outstanding loan: %w", err)
	}
	if outstanding != nil {
		return nil, fmt.Errorf("%w: %.2f due %s", ErrLoanOutstanding, outstanding.TotalDue(), outstanding.DueDate.Format("2006-01-02"))
	}

	rec, err := getOrCreateBalance(ctx, uow, userID, guildID)
	if err != nil {
		return nil, err
	}

	loan := &models.LoanRecord{
		UserID:   userID,
		GuildID:  guildID,
		Amount:   amount,
		Interest: models.LoanInterestRate,
		DueDate:  s.now().Add(models.LoanTerm),
	}
	if err := uow.Loans().Create(ctx, loan); err != nil {
		return nil, fmt.Errorf("failed to create loan: %w", err)
	}

	if _, err := applyLedgerDelta(ctx, uow, rec, amount, models.TransactionTypeLoanDisbursed, map[string]any{
		"loan_id":  loan.ID,
		"interest": loan.Interest,
		"due_date": loan.DueDate,
	}); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.LoanIssuedEvent{
		LoanID:  loan.ID,
		UserID:  userID,
		GuildID: guildID,
		Amount:  amount,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return loan, nil
}

func (s *loanService) RepayLoan(ctx context.Context, userID, guildID string) (*models.LoanRecord, error) {
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

	loan, err := uow.Loans().GetOutstanding(ctx, userID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to find outstanding loan: %w", err)
	}
	if loan == nil {
		return nil, ErrNoLoan
	}

	rec, err := getOrCreateBalance(ctx, uow, userID, guildID)
	if err != nil {
		return nil, err
	}

	total := loan.TotalDue()
	if rec.Balance < total {
		return nil, fmt.Errorf("%w: have %.2f, need %.2f", ErrInsufficientBalance, rec.Balance, total)
	}

	if err := uow.Balances().DeductBalance(ctx, userID, guildID, total); err != nil {
		return nil, fmt.Errorf("failed to deduct repayment: %w", err)
	}

	history := &models.BalanceHistory{
		UserID:          userID,
		GuildID:         guildID,
		BalanceBefore:   rec.Balance,
		BalanceAfter:    models.NormalizeAmount(rec.Balance - total),
		ChangeAmount:    -total,
		TransactionType: models.TransactionTypeLoanRepaid,
		TransactionMetadata: map[string]any{
			"loan_id":   loan.ID,
			"principal": loan.Amount,
			"interest":  loan.Interest,
		},
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, err
	}

	if err := uow.Loans().MarkPaid(ctx, loan.ID); err != nil {
		return nil, fmt.Errorf("failed to mark loan paid: %w", err)
	}
	loan.Paid = true

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return loan, nil
}

func (s *loanService) OutstandingLoan(ctx context.Context, userID, guildID string) (*models.LoanRecord, error) {
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

	return uow.Loans().GetOutstanding(ctx, userID, guildID)
}
