package repository

import (
	"context"
	"fmt"

	"github.com/Hiroshi025/Nebura-sub000/database"
	"github.com/Hiroshi025/Nebura-sub000/models"
)

// HistoryRepository implements the HistoryRepository interface
type HistoryRepository struct {
	q queryable
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *database.DB) *HistoryRepository {
	return &HistoryRepository{q: db.Pool}
}

// newHistoryRepositoryWithTx creates a new history repository with a transaction
func newHistoryRepositoryWithTx(tx queryable) *HistoryRepository {
	return &HistoryRepository{q: tx}
}

// Record creates a new balance history entry
func (r *HistoryRepository) Record(ctx context.Context, history *models.BalanceHistory) error {
	query := `
		INSERT INTO balance_history (
			user_id, guild_id, balance_before, balance_after,
			change_amount, transaction_type, transaction_metadata
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	metadata := history.TransactionMetadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	err := r.q.QueryRow(ctx, query,
		history.UserID,
		history.GuildID,
		history.BalanceBefore,
		history.BalanceAfter,
		history.ChangeAmount,
		history.TransactionType,
		metadata,
	).Scan(&history.ID, &history.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record balance history for user %s: %w", history.UserID, err)
	}

	return nil
}

// GetByUser returns recent balance history for a user, newest first
func (r *HistoryRepository) GetByUser(ctx context.Context, userID, guildID string, limit int) ([]*models.BalanceHistory, error) {
	query := `
		SELECT id, user_id, guild_id, balance_before, balance_after,
		       change_amount, transaction_type, transaction_metadata, created_at
		FROM balance_history
		WHERE user_id = $1 AND guild_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.q.Query(ctx, query, userID, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance history for user %s: %w", userID, err)
	}
	defer rows.Close()

	var entries []*models.BalanceHistory
	for rows.Next() {
		var h models.BalanceHistory
		err := rows.Scan(
			&h.ID,
			&h.UserID,
			&h.GuildID,
			&h.BalanceBefore,
			&h.BalanceAfter,
			&h.ChangeAmount,
			&h.TransactionType,
			&h.TransactionMetadata,
			&h.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance history: %w", err)
		}
		entries = append(entries, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balance history: %w", err)
	}

	return entries, nil
}
