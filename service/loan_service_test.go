package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Hiroshi025/Nebura-sub000/models"
)

func TestLoanService_RequestLoan(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockBalanceRepo, mockHistoryRepo, mockLoanRepo, _, _ := newMockedUnitOfWork()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	existing := &models.BalanceRecord{UserID: testUserID, GuildID: testGuildID, Balance: 10}
	mockBalanceRepo.On("GetByUserGuild", ctx, testUserID, testGuildID).Return(existing, nil)
	mockBalanceRepo.On("ApplyDelta", ctx, testUserID, testGuildID, 100.0, false).Return(nil)

	mockLoanRepo.On("GetOutstanding", ctx, testUserID, testGuildID).Return(nil, nil)
	mockLoanRepo.On("Create", ctx, mock.MatchedBy(func(l *models.LoanRecord) bool {
		return l.UserID == testUserID &&
			l.Amount == 100 &&
			l.Interest == models.LoanInterestRate &&
			!l.Paid
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.LoanRecord).ID = 7
	})

	mockHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.ChangeAmount == 100 &&
			h.TransactionType == models.TransactionTypeLoanDisbursed
	})).Return(nil)

	service := NewLoanService(mockFactory)

	loan, err := service.RequestLoan(ctx, testUserID, testGuildID, 100)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), loan.ID)
	assert.Equal(t, 110.0, loan.TotalDue())
	assert.WithinDuration(t, time.Now().Add(models.LoanTerm), loan.DueDate, time.Minute)

	mockLoanRepo.AssertExpectations(t)
	mockHistoryRepo.AssertExpectations(t)
}

func TestLoanService_RequestLoan_AlreadyOutstanding(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, _, mockLoanRepo, _, _ := newMockedUnitOfWork()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	outstanding := &models.LoanRecord{ID: 3, UserID: testUserID, GuildID: testGuildID, Amount: 50, Interest: 0.10, DueDate: time.Now().Add(24 * time.Hour)}
	mockLoanRepo.On("GetOutstanding", ctx, testUserID, testGuildID).Return(outstanding, nil)

	service := NewLoanService(mockFactory)

	_, err := service.RequestLoan(ctx, testUserID, testGuildID, 100)
	assert.ErrorIs(t, err, ErrLoanOutstanding)

	mockLoanRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoanService_RepayLoan(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockBalanceRepo, mockHistoryRepo, mockLoanRepo, _, _ := newMockedUnitOfWork()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	loan := &models.LoanRecord{ID: 9, UserID: testUserID, GuildID: testGuildID, Amount: 100, Interest: 0.10, DueDate: time.Now().Add(24 * time.Hour)}
	mockLoanRepo.On("GetOutstanding", ctx, testUserID, testGuildID).Return(loan, nil)
	mockLoanRepo.On("MarkPaid", ctx, int64(9)).Return(nil)

	existing := &models.BalanceRecord{UserID: testUserID, GuildID: testGuildID, Balance: 200}
	mockBalanceRepo.On("GetByUserGuild", ctx, testUserID, testGuildID).Return(existing, nil)
	mockBalanceRepo.On("DeductBalance", ctx, testUserID, testGuildID, 110.0).Return(nil)

	mockHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.ChangeAmount == -110 &&
			h.BalanceAfter == 90 &&
			h.TransactionType == models.TransactionTypeLoanRepaid
	})).Return(nil)

	service := NewLoanService(mockFactory)

	repaid, err := service.RepayLoan(ctx, testUserID, testGuildID)

	assert.NoError(t, err)
	assert.True(t, repaid.Paid)

	mockLoanRepo.AssertExpectations(t)
	mockBalanceRepo.AssertExpectations(t)
	mockHistoryRepo.AssertExpectations(t)
}

func TestLoanService_RepayLoan_NoLoan(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, _, mockLoanRepo, _, _ := newMockedUnitOfWork()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockLoanRepo.On("GetOutstanding", ctx, testUserID, testGuildID).Return(nil, nil)

	service := NewLoanService(mockFactory)

	_, err := service.RepayLoan(ctx, testUserID, testGuildID)
	assert.ErrorIs(t, err, ErrNoLoan)
}

func TestLoanService_RepayLoan_InsufficientBalance(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockBalanceRepo, _, mockLoanRepo, _, _ := newMockedUnitOfWork()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	loan := &models.LoanRecord{ID: 9, UserID: testUserID, GuildID: testGuildID, Amount: 100, Interest: 0.10, DueDate: time.Now()}
	mockLoanRepo.On("GetOutstanding", ctx, testUserID, testGuildID).Return(loan, nil)

	existing := &models.BalanceRecord{UserID: testUserID, GuildID: testGuildID, Balance: 50}
	mockBalanceRepo.On("GetByUserGuild", ctx, testUserID, testGuildID).Return(existing, nil)

	service := NewLoanService(mockFactory)

	_, err := service.RepayLoan(ctx, testUserID, testGuildID)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	mockLoanRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
}
