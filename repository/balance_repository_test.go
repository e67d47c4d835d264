package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hiroshi025/Nebura-sub000/service"
)

const (
	testUserID  = "123456789012345678"
	testGuildID = "987654321098765432"
)

func newBalanceMock(t *testing.T) (*BalanceRepository, pgxmock.PgxPoolIface) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return &BalanceRepository{q: mock}, mock
}

func balanceRows() *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"user_id", "guild_id", "balance", "message_count", "job", "job_rank",
		"job_start_date", "last_work_date", "job_cooldown", "skills",
		"reputation", "prestige", "won_duels", "lost_duels", "created_at", "updated_at",
	}).AddRow(
		testUserID, testGuildID, 123.45, int64(10), "miner", 2,
		nil, nil, int64(1800), map[string]int{"miner": 21},
		0, 0, 3, 1, now, now,
	)
}

func TestBalanceRepository_GetByUserGuild(t *testing.T) {
	repo, mock := newBalanceMock(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT(.|\n)*FROM balances").
		WithArgs(testUserID, testGuildID).
		WillReturnRows(balanceRows())

	rec, err := repo.GetByUserGuild(ctx, testUserID, testGuildID)

	assert.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 123.45, rec.Balance)
	assert.Equal(t, "miner", rec.Job)
	assert.Equal(t, 21, rec.Skills["miner"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceRepository_GetByUserGuild_NoRows(t *testing.T) {
	repo, mock := newBalanceMock(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT(.|\n)*FROM balances").
		WithArgs(testUserID, testGuildID).
		WillReturnError(pgx.ErrNoRows)

	rec, err := repo.GetByUserGuild(ctx, testUserID, testGuildID)

	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestBalanceRepository_ApplyDelta(t *testing.T) {
	repo, mock := newBalanceMock(t)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE balances\s+SET balance = TRUNC`).
		WithArgs(testUserID, testGuildID, 25.5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.ApplyDelta(ctx, testUserID, testGuildID, 25.5, false)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceRepository_ApplyDelta_FloorZero(t *testing.T) {
	repo, mock := newBalanceMock(t)
	ctx := context.Background()

	mock.ExpectExec(`SET balance = GREATEST`).
		WithArgs(testUserID, testGuildID, -500.0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.ApplyDelta(ctx, testUserID, testGuildID, -500, true)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceRepository_ApplyDelta_MissingRecord(t *testing.T) {
	repo, mock := newBalanceMock(t)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE balances`).
		WithArgs(testUserID, testGuildID, 10.0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.ApplyDelta(ctx, testUserID, testGuildID, 10, false)

	assert.Error(t, err)
}

func TestBalanceRepository_DeductBalance(t *testing.T) {
	repo, mock := newBalanceMock(t)
	ctx := context.Background()

	mock.ExpectExec(`AND balance >= \$3`).
		WithArgs(testUserID, testGuildID, 50.0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.DeductBalance(ctx, testUserID, testGuildID, 50)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceRepository_DeductBalance_Insufficient(t *testing.T) {
	repo, mock := newBalanceMock(t)
	ctx := context.Background()

	mock.ExpectExec(`AND balance >= \$3`).
		WithArgs(testUserID, testGuildID, 500.0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	// The conditional update touched no row, so the repo re-reads the
	// record to distinguish missing from broke.
	mock.ExpectQuery("SELECT(.|\n)*FROM balances").
		WithArgs(testUserID, testGuildID).
		WillReturnRows(balanceRows())

	err := repo.DeductBalance(ctx, testUserID, testGuildID, 500)

	assert.ErrorIs(t, err, service.ErrInsufficientBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceRepository_DeductBalance_NonPositive(t *testing.T) {
	repo, _ := newBalanceMock(t)

	err := repo.DeductBalance(context.Background(), testUserID, testGuildID, 0)
	assert.Error(t, err)
}

func TestBalanceRepository_ApplyMessageReward(t *testing.T) {
	repo, mock := newBalanceMock(t)
	ctx := context.Background()

	mock.ExpectExec(`message_count = message_count \+ 1`).
		WithArgs(testUserID, testGuildID, 0.25).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.ApplyMessageReward(ctx, testUserID, testGuildID, 0.25)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceRepository_TopBalances(t *testing.T) {
	repo, mock := newBalanceMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`ORDER BY balance DESC`).
		WithArgs(testGuildID, 10).
		WillReturnRows(balanceRows())

	records, err := repo.TopBalances(ctx, testGuildID, 10)

	assert.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, testUserID, records[0].UserID)
}

func TestBalanceRepository_TopBalances_QueryError(t *testing.T) {
	repo, mock := newBalanceMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`ORDER BY balance DESC`).
		WithArgs(testGuildID, 10).
		WillReturnError(errors.New("database error"))

	_, err := repo.TopBalances(ctx, testGuildID, 10)
	assert.Error(t, err)
}

func TestBalanceRepository_RecordDuelResult(t *testing.T) {
	repo, mock := newBalanceMock(t)
	ctx := context.Background()

	mock.ExpectExec(`SET won_duels = won_duels \+ 1`).
		WithArgs(testUserID, testGuildID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`SET lost_duels = lost_duels \+ 1`).
		WithArgs(testUserID, testGuildID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.RecordDuelResult(ctx, testUserID, testGuildID, true))
	assert.NoError(t, repo.RecordDuelResult(ctx, testUserID, testGuildID, false))
	assert.NoError(t, mock.ExpectationsWereMet())
}
