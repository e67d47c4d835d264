package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Hiroshi025/Nebura-sub000/models"
)

func moneyPtr(v float64) *float64 { return &v }

// defaultCatalog is the static shop. Prices are in the guild currency.
var defaultCatalog = []models.ShopItem{
	{
		Identifier:  "lottery_ticket",
		Name:        "Lottery Ticket",
		Description: "Scratch it off for a flat payout.",
		Price:       10,
		Money:       moneyPtr(25),
	},
	{
		Identifier:  "piggy_bank",
		Name:        "Piggy Bank",
		Description: "Smash it open whenever you need a bailout.",
		Price:       200,
		Money:       moneyPtr(250),
	},
	{
		Identifier:  "vip_role",
		Name:        "VIP Role",
		Description: "Grants the guild's VIP role on redemption.",
		Price:       1000,
		RoleID:      "vip",
	},
	{
		Identifier:  "trophy",
		Name:        "Trophy",
		Description: "A shiny keepsake. Does nothing, looks great.",
		Price:       500,
	},
}

type shopService struct {
	uowFactory UnitOfWorkFactory
	catalog    []models.ShopItem
}

// NewShopService creates a new shop service backed by the default catalog
func NewShopService(uowFactory UnitOfWorkFactory) ShopService {
	return &shopService{uowFactory: uowFactory, catalog: defaultCatalog}
}

func (s *shopService) Catalog() []models.ShopItem {
	out := make([]models.ShopItem, len(s.catalog))
	copy(out, s.catalog)
	return out
}

func (s *shopService) findItem(identifier string) *models.ShopItem {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	for i := range s.catalog {
		if s.catalog[i].Identifier == identifier {
			return &s.catalog[i]
		}
	}
	return nil
}

func (s *shopService) Purchase(ctx context.Context, userID, guildID, itemIdentifier string) (*models.InventoryItem, error) {
	if err := ValidateID(userID); err != nil {
		return nil, err
	}
	if err := ValidateID(guildID); err != nil {
		return nil, err
	}

	item := s.findItem(itemIdentifier)
	if item == nil {
		return nil, fmt.Errorf("%w: %q", ErrItemNotFound, itemIdentifier)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rec, err := getOrCreateBalance(ctx, uow, userID, guildID)
	if err != nil {
		return nil, err
	}
	if rec.Balance < item.Price {
		return nil, fmt.Errorf("%w: have %.2f, need %.2f", ErrInsufficientBalance, rec.Balance, item.Price)
	}

	if err := uow.Balances().DeductBalance(ctx, userID, guildID, item.Price); err != nil {
		return nil, fmt.Errorf("failed to deduct price: %w", err)
	}

	owned := &models.InventoryItem{
		UserID:          userID,
		GuildID:         guildID,
		ItemIdentifier:  item.Identifier,
		ItemName:        item.Name,
		ItemDescription: item.Description,
		ItemPrice:       item.Price,
		Money:           item.Money,
	}
	if item.RoleID != "" {
		roleID := item.RoleID
		owned.RoleID = &roleID
	}
	if err := uow.Inventory().Create(ctx, owned); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	history := &models.BalanceHistory{
		UserID:          userID,
		GuildID:         guildID,
		BalanceBefore:   rec.Balance,
		BalanceAfter:    models.NormalizeAmount(rec.Balance - item.Price),
		ChangeAmount:    -item.Price,
		TransactionType: models.TransactionTypeShopPurchase,
		TransactionMetadata: map[string]any{
			"item":  item.Identifier,
			"price": item.Price,
		},
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return owned, nil
}

func (s *shopService) Inventory(ctx context.Context, userID, guildID string) ([]*models.InventoryItem, error) {
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

	return uow.Inventory().GetByUser(ctx, userID, guildID)
}

func (s *shopService) Redeem(ctx context.Context, userID, guildID string, inventoryID int64) (*models.RedeemResult, error) {
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

	owned, err := uow.Inventory().GetByID(ctx, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory item: %w", err)
	}
	// An item owned by someone else looks the same as a missing one.
	if owned == nil || owned.UserID != userID || owned.GuildID != guildID {
		return nil, fmt.Errorf("%w: inventory item %d", ErrItemNotFound, inventoryID)
	}

	result := &models.RedeemResult{Item: owned}

	if owned.Money != nil && *owned.Money > 0 {
		rec, err := getOrCreateBalance(ctx, uow, userID, guildID)
		if err != nil {
			return nil, err
		}
		newBalance, err := applyLedgerDelta(ctx, uow, rec, *owned.Money, models.TransactionTypeItemRedeemed, map[string]any{
			"item":         owned.ItemIdentifier,
			"inventory_id": owned.ID,
		})
		if err != nil {
			return nil, err
		}
		result.Credited = *owned.Money
		result.NewBalance = newBalance
	}

	if err := uow.Inventory().Delete(ctx, owned.ID); err != nil {
		return nil, fmt.Errorf("failed to consume inventory item: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return result, nil
}
