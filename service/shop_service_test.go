package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Hiroshi025/Nebura-sub000/models"
)

func TestShopService_Purchase(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockBalanceRepo, mockHistoryRepo, _, mockInventoryRepo, _ := newMockedUnitOfWork()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	existing := &models.BalanceRecord{UserID: testUserID, GuildID: testGuildID, Balance: 100}
	mockBalanceRepo.On("GetByUserGuild", ctx, testUserID, testGuildID).Return(existing, nil)
	mockBalanceRepo.On("DeductBalance", ctx, testUserID, testGuildID, 10.0).Return(nil)

	mockInventoryRepo.On("Create", ctx, mock.MatchedBy(func(i *models.InventoryItem) bool {
		return i.UserID == testUserID &&
			i.ItemIdentifier == "lottery_ticket" &&
			i.ItemPrice == 10 &&
			i.Money != nil && *i.Money == 25
	})).Return(nil)

	mockHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.ChangeAmount == -10 &&
			h.TransactionType == models.TransactionTypeShopPurchase
	})).Return(nil)

	service := NewShopService(mockFactory)

	item, err := service.Purchase(ctx, testUserID, testGuildID, "Lottery_Ticket ")

	assert.NoError(t, err)
	assert.Equal(t, "lottery_ticket", item.ItemIdentifier)

	mockInventoryRepo.AssertExpectations(t)
	mockHistoryRepo.AssertExpectations(t)
}

func TestShopService_Purchase_UnknownItem(t *testing.T) {
	ctx := context.Background()

	_, mockFactory, _, _, _, _, _ := newMockedUnitOfWork()
	service := NewShopService(mockFactory)

	_, err := service.Purchase(ctx, testUserID, testGuildID, "no_such_item")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestShopService_Purchase_InsufficientBalance(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockBalanceRepo, _, _, mockInventoryRepo, _ := newMockedUnitOfWork()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	existing := &models.BalanceRecord{UserID: testUserID, GuildID: testGuildID, Balance: 5}
	mockBalanceRepo.On("GetByUserGuild", ctx, testUserID, testGuildID).Return(existing, nil)

	service := NewShopService(mockFactory)

	_, err := service.Purchase(ctx, testUserID, testGuildID, "lottery_ticket")
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	mockInventoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestShopService_Redeem_CreditsMoney(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockBalanceRepo, mockHistoryRepo, _, mockInventoryRepo, _ := newMockedUnitOfWork()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	money := 25.0
	owned := &models.InventoryItem{
		ID:             42,
		UserID:         testUserID,
		GuildID:        testGuildID,
		ItemIdentifier: "lottery_ticket",
		Money:          &money,
	}
	mockInventoryRepo.On("GetByID", ctx, int64(42)).Return(owned, nil)
	mockInventoryRepo.On("Delete", ctx, int64(42)).Return(nil)

	existing := &models.BalanceRecord{UserID: testUserID, GuildID: testGuildID, Balance: 0}
	mockBalanceRepo.On("GetByUserGuild", ctx, testUserID, testGuildID).Return(existing, nil)
	mockBalanceRepo.On("ApplyDelta", ctx, testUserID, testGuildID, 25.0, false).Return(nil)

	mockHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.ChangeAmount == 25 &&
			h.BalanceAfter == 25 &&
			h.TransactionType == models.TransactionTypeItemRedeemed
	})).Return(nil)

	service := NewShopService(mockFactory)

	res, err := service.Redeem(ctx, testUserID, testGuildID, 42)

	assert.NoError(t, err)
	assert.Equal(t, 25.0, res.Credited)
	assert.Equal(t, 25.0, res.NewBalance)

	mockInventoryRepo.AssertExpectations(t)
	mockBalanceRepo.AssertExpectations(t)
}

func TestShopService_Redeem_NotOwned(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, _, _, mockInventoryRepo, _ := newMockedUnitOfWork()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	someoneElses := &models.InventoryItem{
		ID:      42,
		UserID:  "111111111111111111",
		GuildID: testGuildID,
	}
	mockInventoryRepo.On("GetByID", ctx, int64(42)).Return(someoneElses, nil)

	service := NewShopService(mockFactory)

	_, err := service.Redeem(ctx, testUserID, testGuildID, 42)
	assert.ErrorIs(t, err, ErrItemNotFound)

	mockInventoryRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestShopService_Catalog_IsACopy(t *testing.T) {
	_, mockFactory, _, _, _, _, _ := newMockedUnitOfWork()
	service := NewShopService(mockFactory)

	catalog := service.Catalog()
	assert.NotEmpty(t, catalog)

	catalog[0].Price = -1
	assert.NotEqual(t, -1.0, service.Catalog()[0].Price)
}
