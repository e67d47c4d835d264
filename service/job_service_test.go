package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Hiroshi025/Nebura-sub000/models"
)

func TestJobService_Join(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockBalanceRepo, _, _, _, _ := newMockedUnitOfWork()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	existing := &models.BalanceRecord{UserID: testUserID, GuildID: testGuildID}
	mockBalanceRepo.On("GetByUserGuild", ctx, testUserID, testGuildID).Return(existing, nil)
	mockBalanceRepo.On("UpdateJob", ctx, mock.MatchedBy(func(r *models.BalanceRecord) bool {
		return r.Job == "miner" &&
			r.JobRank == 0 &&
			r.JobStartDate != nil &&
			r.JobCooldown == int64((30*time.Minute)/time.Second)
	})).Return(nil)

	service := NewJobService(mockFactory)

	rec, err := service.Join(ctx, testUserID, testGuildID, " Miner")

	assert.NoError(t, err)
	assert.Equal(t, "miner", rec.Job)

	mockBalanceRepo.AssertExpectations(t)
}

func TestJobService_Join_UnknownJob(t *testing.T) {
	ctx := context.Background()

	_, mockFactory, _, _, _, _, _ := newMockedUnitOfWork()
	service := NewJobService(mockFactory)

	_, err := service.Join(ctx, testUserID, testGuildID, "astronaut")
	assert.ErrorIs(t, err, ErrUnknownJob)
}

func TestJobService_Work(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockBalanceRepo, mockHistoryRepo, _, _, _ := newMockedUnitOfWork()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	existing := &models.BalanceRecord{
		UserID:      testUserID,
		GuildID:     testGuildID,
		Balance:     10,
		Job:         "miner",
		JobCooldown: 1800,
	}
	mockBalanceRepo.On("GetByUserGuild", ctx, testUserID, testGuildID).Return(existing, nil)
	mockBalanceRepo.On("ApplyDelta", ctx, testUserID, testGuildID, 20.0, false).Return(nil)
	mockBalanceRepo.On("UpdateJob", ctx, mock.MatchedBy(func(r *models.BalanceRecord) bool {
		return r.Skills["miner"] == 1 && r.LastWorkDate != nil
	})).Return(nil)

	mockHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.ChangeAmount == 20 &&
			h.TransactionType == models.TransactionTypeWorkPay
	})).Return(nil)

	service := NewJobService(mockFactory)

	res, err := service.Work(ctx, testUserID, testGuildID)

	assert.NoError(t, err)
	assert.Equal(t, "miner", res.Job)
	assert.Equal(t, 20.0, res.Pay)
	assert.Equal(t, 30.0, res.NewBalance)
	assert.Equal(t, 1, res.SkillLevel)
	assert.False(t, res.RankedUp)

	mockBalanceRepo.AssertExpectations(t)
}

func TestJobService_Work_OnCooldown(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockBalanceRepo, _, _, _, _ := newMockedUnitOfWork()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	justWorked := time.Now().Add(-time.Minute)
	existing := &models.BalanceRecord{
		UserID:       testUserID,
		GuildID:      testGuildID,
		Job:          "miner",
		JobCooldown:  1800,
		LastWorkDate: &justWorked,
	}
	mockBalanceRepo.On("GetByUserGuild", ctx, testUserID, testGuildID).Return(existing, nil)

	service := NewJobService(mockFactory)

	_, err := service.Work(ctx, testUserID, testGuildID)

	var cooldownErr *CooldownError
	assert.True(t, errors.As(err, &cooldownErr))
	assert.True(t, cooldownErr.Until.After(time.Now()))

	mockBalanceRepo.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestJobService_Work_NoJob(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockBalanceRepo, _, _, _, _ := newMockedUnitOfWork()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	existing := &models.BalanceRecord{UserID: testUserID, GuildID: testGuildID}
	mockBalanceRepo.On("GetByUserGuild", ctx, testUserID, testGuildID).Return(existing, nil)

	service := NewJobService(mockFactory)

	_, err := service.Work(ctx, testUserID, testGuildID)
	assert.ErrorIs(t, err, ErrNoJob)
}
