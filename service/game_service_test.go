package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Hiroshi025/Nebura-sub000/games"
	"github.com/Hiroshi025/Nebura-sub000/models"
)

// stubRand feeds scripted draws to the game engines and counts calls so
// tests can assert the RNG was never touched.
type stubRand struct {
	floats []float64
	ints   []int
	calls  int
}

func (r *stubRand) Float64() float64 {
	r.calls++
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *stubRand) Intn(n int) int {
	r.calls++
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func TestGameService_PlayCoinflip_Win(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockBalanceRepo, mockHistoryRepo, _, _, _ := newMockedUnitOfWork()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	existing := &models.BalanceRecord{UserID: testUserID, GuildID: testGuildID, Balance: 100}
	mockBalanceRepo.On("GetByUserGuild", ctx, testUserID, testGuildID).Return(existing, nil)
	mockBalanceRepo.On("ApplyDelta", ctx, testUserID, testGuildID, 50.0, false).Return(nil)

	mockHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.BalanceBefore == 100 &&
			h.BalanceAfter == 150 &&
			h.TransactionType == models.TransactionTypeGameWin
	})).Return(nil)

	// Side draw lands heads, no special, no risk offer
	rng := &stubRand{floats: []float64{0.4, 0.5, 0.9}}
	service := NewGameService(mockFactory, rng)

	res, newBalance, err := service.PlayCoinflip(ctx, testUserID, testGuildID, 50, games.Heads)

	assert.NoError(t, err)
	assert.True(t, res.Won)
	assert.False(t, res.Special)
	assert.Equal(t, 50.0, res.Delta)
	assert.Equal(t, 150.0, newBalance)

	mockBalanceRepo.AssertExpectations(t)
	mockHistoryRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestGameService_PlayCoinflip_ExtremeLoss(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockBalanceRepo, mockHistoryRepo, _, _, _ := newMockedUnitOfWork()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	existing := &models.BalanceRecord{UserID: testUserID, GuildID: testGuildID, Balance: 500}
	mockBalanceRepo.On("GetByUserGuild", ctx, testUserID, testGuildID).Return(existing, nil)
	mockBalanceRepo.On("ApplyDelta", ctx, testUserID, testGuildID, -200.0, false).Return(nil)

	mockHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.ChangeAmount == -200 &&
			h.TransactionType == models.TransactionTypeGameLoss
	})).Return(nil)

	// Side draw lands tails, extreme draw hits
	rng := &stubRand{floats: []float64{0.6, 0.05}}
	service := NewGameService(mockFactory, rng)

	res, newBalance, err := service.PlayCoinflip(ctx, testUserID, testGuildID, 50, games.Heads)

	assert.NoError(t, err)
	assert.False(t, res.Won)
	assert.True(t, res.Extreme)
	assert.Equal(t, -200.0, res.Delta)
	assert.Equal(t, 300.0, newBalance)
}

func TestGameService_InvalidBetNeverReachesEngine(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockBalanceRepo, _, _, _, _ := newMockedUnitOfWork()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	existing := &models.BalanceRecord{UserID: testUserID, GuildID: testGuildID, Balance: 100}
	mockBalanceRepo.On("GetByUserGuild", ctx, testUserID, testGuildID).Return(existing, nil)

	rng := &stubRand{}
	service := NewGameService(mockFactory, rng)

	for _, bet := range []float64{0, -5, 200} {
		_, _, err := service.PlayCoinflip(ctx, testUserID, testGuildID, bet, games.Heads)
		assert.ErrorIs(t, err, ErrInvalidBet, "bet %v", bet)
	}

	assert.Zero(t, rng.calls, "invalid bets must not draw from the RNG")
	mockBalanceRepo.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGameService_PlaySlots_Jackpot(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockBalanceRepo, mockHistoryRepo, _, _, _ := newMockedUnitOfWork()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	existing := &models.BalanceRecord{UserID: testUserID, GuildID: testGuildID, Balance: 100}
	mockBalanceRepo.On("GetByUserGuild", ctx, testUserID, testGuildID).Return(existing, nil)

	// Nine max-weight rolls produce a grid of the rarest symbol, all 8
	// lines match at multiplier 20: payout 10*160, delta +1590.
	mockBalanceRepo.On("ApplyDelta", ctx, testUserID, testGuildID, 1590.0, false).Return(nil)
	mockHistoryRepo.On("Record", ctx, mock.AnythingOfType("*models.BalanceHistory")).Return(nil)

	rng := &stubRand{ints: []int{66, 66, 66, 66, 66, 66, 66, 66, 66}}
	service := NewGameService(mockFactory, rng)

	res, newBalance, err := service.PlaySlots(ctx, testUserID, testGuildID, 10)

	assert.NoError(t, err)
	assert.True(t, res.Won)
	assert.Equal(t, 160.0, res.LineMultiplier)
	assert.Equal(t, 1690.0, newBalance)
}

func TestGameService_ResolveDuel(t *testing.T) {
	ctx := context.Background()

	opponentID := "111111111111111111"

	mockUoW, mockFactory, mockBalanceRepo, mockHistoryRepo, _, _, _ := newMockedUnitOfWork()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	challenger := &models.BalanceRecord{UserID: testUserID, GuildID: testGuildID, Balance: 100}
	opponent := &models.BalanceRecord{UserID: opponentID, GuildID: testGuildID, Balance: 100}

	mockBalanceRepo.On("GetByUserGuild", ctx, testUserID, testGuildID).Return(challenger, nil)
	mockBalanceRepo.On("GetByUserGuild", ctx, opponentID, testGuildID).Return(opponent, nil)
	mockBalanceRepo.On("ApplyDelta", ctx, testUserID, testGuildID, 30.0, false).Return(nil)
	mockBalanceRepo.On("ApplyDelta", ctx, opponentID, testGuildID, -30.0, false).Return(nil)
	mockBalanceRepo.On("RecordDuelResult", ctx, testUserID, testGuildID, true).Return(nil)
	mockBalanceRepo.On("RecordDuelResult", ctx, opponentID, testGuildID, false).Return(nil)
	mockHistoryRepo.On("Record", ctx, mock.AnythingOfType("*models.BalanceHistory")).Return(nil)

	// Draw below 0.5: challenger wins
	rng := &stubRand{floats: []float64{0.25}}
	service := NewGameService(mockFactory, rng)

	res, err := service.ResolveDuel(ctx, testGuildID, testUserID, opponentID, 30)

	assert.NoError(t, err)
	assert.Equal(t, testUserID, res.WinnerID)
	assert.Equal(t, opponentID, res.LoserID)
	assert.Equal(t, 130.0, res.WinnerNewBalance)
	assert.Equal(t, 70.0, res.LoserNewBalance)

	mockBalanceRepo.AssertExpectations(t)
}

func TestGameService_ResolveDuel_SelfDuel(t *testing.T) {
	ctx := context.Background()

	_, mockFactory, _, _, _, _, _ := newMockedUnitOfWork()
	service := NewGameService(mockFactory, &stubRand{})

	_, err := service.ResolveDuel(ctx, testGuildID, testUserID, testUserID, 10)
	assert.Error(t, err)
}
