package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Hiroshi025/Nebura-sub000/database"
	"github.com/Hiroshi025/Nebura-sub000/models"
)

// InventoryRepository implements the InventoryRepository interface
type InventoryRepository struct {
	q queryable
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *database.DB) *InventoryRepository {
	return &InventoryRepository{q: db.Pool}
}

// newInventoryRepositoryWithTx creates a new inventory repository with a transaction
func newInventoryRepositoryWithTx(tx queryable) *InventoryRepository {
	return &InventoryRepository{q: tx}
}

// Create persists a new owned item and fills in its generated id
func (r *InventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (
			user_id, guild_id, item_identifier, item_name,
			item_description, item_price, role_id, money
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		item.UserID,
		item.GuildID,
		item.ItemIdentifier,
		item.ItemName,
		item.ItemDescription,
		item.ItemPrice,
		item.RoleID,
		item.Money,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create inventory item for user %s: %w", item.UserID, err)
	}

	return nil
}

// GetByID retrieves an owned item, nil when none exists
func (r *InventoryRepository) GetByID(ctx context.Context, id int64) (*models.InventoryItem, error) {
	query := `
		SELECT id, user_id, guild_id, item_identifier, item_name,
		       item_description, item_price, role_id, money, created_at
		FROM inventory_items
		WHERE id = $1
	`

	var item models.InventoryItem
	err := r.q.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.UserID,
		&item.GuildID,
		&item.ItemIdentifier,
		&item.ItemName,
		&item.ItemDescription,
		&item.ItemPrice,
		&item.RoleID,
		&item.Money,
		&item.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item %d: %w", id, err)
	}

	return &item, nil
}

// GetByUser returns a user's owned items, newest first
func (r *InventoryRepository) GetByUser(ctx context.Context, userID, guildID string) ([]*models.InventoryItem, error) {
	query := `
		SELECT id, user_id, guild_id, item_identifier, item_name,
		       item_description, item_price, role_id, money, created_at
		FROM inventory_items
		WHERE user_id = $1 AND guild_id = $2
		ORDER BY created_at DESC
	`

	rows, err := r.q.Query(ctx, query, userID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory for user %s: %w", userID, err)
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		var item models.InventoryItem
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.GuildID,
			&item.ItemIdentifier,
			&item.ItemName,
			&item.ItemDescription,
			&item.ItemPrice,
			&item.RoleID,
			&item.Money,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory items: %w", err)
	}

	return items, nil
}

// Delete removes a consumed item
func (r *InventoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("inventory item %d not found", id)
	}

	return nil
}
