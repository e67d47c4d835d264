package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Hiroshi025/Nebura-sub000/database"
	"github.com/Hiroshi025/Nebura-sub000/models"
)

// LoanRepository implements the LoanRepository interface
type LoanRepository struct {
	q queryable
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *database.DB) *LoanRepository {
	return &LoanRepository{q: db.Pool}
}

// newLoanRepositoryWithTx creates a new loan repository with a transaction
func newLoanRepositoryWithTx(tx queryable) *LoanRepository {
	return &LoanRepository{q: tx}
}

// Create persists a new loan and fills in its generated id
func (r *LoanRepository) Create(ctx context.Context, loan *models.LoanRecord) error {
	query := `
		INSERT INTO loans (user_id, guild_id, amount, interest, due_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		loan.UserID,
		loan.GuildID,
		loan.Amount,
		loan.Interest,
		loan.DueDate,
	).Scan(&loan.ID, &loan.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create loan for user %s: %w", loan.UserID, err)
	}

	return nil
}

// GetOutstanding returns the unpaid loan for a user, nil when none
func (r *LoanRepository) GetOutstanding(ctx context.Context, userID, guildID string) (*models.LoanRecord, error) {
	query := `
		SELECT id, user_id, guild_id, amount, interest, due_date, paid, created_at
		FROM loans
		WHERE user_id = $1 AND guild_id = $2 AND NOT paid
		ORDER BY created_at DESC
		LIMIT 1
	`

	var loan models.LoanRecord
	err := r.q.QueryRow(ctx, query, userID, guildID).Scan(
		&loan.ID,
		&loan.UserID,
		&loan.GuildID,
		&loan.Amount,
		&loan.Interest,
		&loan.DueDate,
		&loan.Paid,
		&loan.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get outstanding loan for user %s: %w", userID, err)
	}

	return &loan, nil
}

// MarkPaid settles a loan
func (r *LoanRepository) MarkPaid(ctx context.Context, id int64) error {
	query := `
		UPDATE loans
		SET paid = TRUE
		WHERE id = $1 AND NOT paid
	`

	result, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark loan %d paid: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("loan %d not found or already paid", id)
	}

	return nil
}
