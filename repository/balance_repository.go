package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Hiroshi025/Nebura-sub000/database"
	"github.com/Hiroshi025/Nebura-sub000/models"
	"github.com/Hiroshi025/Nebura-sub000/service"
)

const balanceColumns = `
	user_id, guild_id, balance, message_count, job, job_rank,
	job_start_date, last_work_date, job_cooldown, skills,
	reputation, prestige, won_duels, lost_duels, created_at, updated_at`

// BalanceRepository implements the BalanceRepository interface
type BalanceRepository struct {
	q queryable
}

// NewBalanceRepository creates a new balance repository
func NewBalanceRepository(db *database.DB) *BalanceRepository {
	return &BalanceRepository{q: db.Pool}
}

// newBalanceRepositoryWithTx creates a new balance repository with a transaction
func newBalanceRepositoryWithTx(tx queryable) *BalanceRepository {
	return &BalanceRepository{q: tx}
}

func scanBalance(row pgx.Row) (*models.BalanceRecord, error) {
	var rec models.BalanceRecord
	err := row.Scan(
		&rec.UserID,
		&rec.GuildID,
		&rec.Balance,
		&rec.MessageCount,
		&rec.Job,
		&rec.JobRank,
		&rec.JobStartDate,
		&rec.LastWorkDate,
		&rec.JobCooldown,
		&rec.Skills,
		&rec.Reputation,
		&rec.Prestige,
		&rec.WonDuels,
		&rec.LostDuels,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetByUserGuild retrieves a balance record by its composite key, nil when
// none exists
func (r *BalanceRepository) GetByUserGuild(ctx context.Context, userID, guildID string) (*models.BalanceRecord, error) {
	query := `
		SELECT` + balanceColumns + `
		FROM balances
		WHERE user_id = $1 AND guild_id = $2
	`

	rec, err := scanBalance(r.q.QueryRow(ctx, query, userID, guildID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get balance for user %s in guild %s: %w", userID, guildID, err)
	}

	return rec, nil
}

// Create creates a new balance record with a zero balance
func (r *BalanceRepository) Create(ctx context.Context, userID, guildID string) (*models.BalanceRecord, error) {
	query := `
		INSERT INTO balances (user_id, guild_id)
		VALUES ($1, $2)
		RETURNING` + balanceColumns + `
	`

	rec, err := scanBalance(r.q.QueryRow(ctx, query, userID, guildID))
	if err != nil {
		return nil, fmt.Errorf("failed to create balance for user %s in guild %s: %w", userID, guildID, err)
	}

	return rec, nil
}

// ApplyDelta adjusts a balance atomically. The new balance is truncated to
// 2 decimals in SQL so concurrent changes cannot compound rounding drift.
// With floorZero the balance is clamped at 0 instead of going negative.
func (r *BalanceRepository) ApplyDelta(ctx context.Context, userID, guildID string, delta float64, floorZero bool) error {
	query := `
		UPDATE balances
		SET balance = TRUNC((balance + $3)::numeric, 2), updated_at = NOW()
		WHERE user_id = $1 AND guild_id = $2
	`
	if floorZero {
		query = `
		UPDATE balances
		SET balance = GREATEST(TRUNC((balance + $3)::numeric, 2), 0), updated_at = NOW()
		WHERE user_id = $1 AND guild_id = $2
	`
	}

	result, err := r.q.Exec(ctx, query, userID, guildID, delta)
	if err != nil {
		return fmt.Errorf("failed to apply balance delta for user %s: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("balance record for user %s in guild %s not found", userID, guildID)
	}

	return nil
}

// DeductBalance debits atomically, only when funds suffice
func (r *BalanceRepository) DeductBalance(ctx context.Context, userID, guildID string, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE balances
		SET balance = TRUNC((balance - $3)::numeric, 2), updated_at = NOW()
		WHERE user_id = $1 AND guild_id = $2 AND balance >= $3
	`

	result, err := r.q.Exec(ctx, query, userID, guildID, amount)
	if err != nil {
		return fmt.Errorf("failed to deduct balance for user %s: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		rec, err := r.GetByUserGuild(ctx, userID, guildID)
		if err != nil {
			return fmt.Errorf("failed to check balance record: %w", err)
		}
		if rec == nil {
			return fmt.Errorf("balance record for user %s in guild %s not found", userID, guildID)
		}
		return fmt.Errorf("%w: have %.2f, need %.2f", service.ErrInsufficientBalance, rec.Balance, amount)
	}

	return nil
}

// ApplyMessageReward bumps the message counter and credits the reward in a
// single statement
func (r *BalanceRepository) ApplyMessageReward(ctx context.Context, userID, guildID string, amount float64) error {
	query := `
		UPDATE balances
		SET balance = TRUNC((balance + $3)::numeric, 2),
		    message_count = message_count + 1,
		    updated_at = NOW()
		WHERE user_id = $1 AND guild_id = $2
	`

	result, err := r.q.Exec(ctx, query, userID, guildID, amount)
	if err != nil {
		return fmt.Errorf("failed to apply message reward for user %s: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("balance record for user %s in guild %s not found", userID, guildID)
	}

	return nil
}

// TopBalances returns the highest balances in a guild
func (r *BalanceRepository) TopBalances(ctx context.Context, guildID string, limit int) ([]*models.BalanceRecord, error) {
	query := `
		SELECT` + balanceColumns + `
		FROM balances
		WHERE guild_id = $1
		ORDER BY balance DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top balances for guild %s: %w", guildID, err)
	}
	defer rows.Close()

	var records []*models.BalanceRecord
	for rows.Next() {
		rec, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balance records: %w", err)
	}

	return records, nil
}

// RecordDuelResult increments a duel win/loss counter
func (r *BalanceRepository) RecordDuelResult(ctx context.Context, userID, guildID string, won bool) error {
	query := `
		UPDATE balances
		SET won_duels = won_duels + 1, updated_at = NOW()
		WHERE user_id = $1 AND guild_id = $2
	`
	if !won {
		query = `
		UPDATE balances
		SET lost_duels = lost_duels + 1, updated_at = NOW()
		WHERE user_id = $1 AND guild_id = $2
	`
	}

	result, err := r.q.Exec(ctx, query, userID, guildID)
	if err != nil {
		return fmt.Errorf("failed to record duel result for user %s: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("balance record for user %s in guild %s not found", userID, guildID)
	}

	return nil
}

// UpdateJob persists the job-related fields of a record
func (r *BalanceRepository) UpdateJob(ctx context.Context, rec *models.BalanceRecord) error {
	query := `
		UPDATE balances
		SET job = $3,
		    job_rank = $4,
		    job_start_date = $5,
		    last_work_date = $6,
		    job_cooldown = $7,
		    skills = $8,
		    updated_at = NOW()
		WHERE user_id = $1 AND guild_id = $2
	`

	result, err := r.q.Exec(ctx, query,
		rec.UserID,
		rec.GuildID,
		rec.Job,
		rec.JobRank,
		rec.JobStartDate,
		rec.LastWorkDate,
		rec.JobCooldown,
		rec.Skills,
	)
	if err != nil {
		return fmt.Errorf("failed to update job for user %s: %w", rec.UserID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("balance record for user %s in guild %s not found", rec.UserID, rec.GuildID)
	}

	return nil
}
