package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hiroshi025/Nebura-sub000/models"
)

func newGuildMock(t *testing.T) (*GuildRepository, pgxmock.PgxPoolIface) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return &GuildRepository{q: mock}, mock
}

func TestGuildRepository_GetByID(t *testing.T) {
	repo, mock := newGuildMock(t)
	ctx := context.Background()

	prefix := "?"
	now := time.Now()
	rows := pgxmock.NewRows([]string{
		"guild_id", "prefix", "rooms_channel_id", "rooms_category_id", "created_at", "updated_at",
	}).AddRow(testGuildID, &prefix, nil, nil, now, now)

	mock.ExpectQuery("SELECT(.|\n)*FROM guilds").
		WithArgs(testGuildID).
		WillReturnRows(rows)

	rec, err := repo.GetByID(ctx, testGuildID)

	assert.NoError(t, err)
	require.NotNil(t, rec)
	require.NotNil(t, rec.Prefix)
	assert.Equal(t, "?", *rec.Prefix)
}

func TestGuildRepository_GetByID_NoRows(t *testing.T) {
	repo, mock := newGuildMock(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT(.|\n)*FROM guilds").
		WithArgs(testGuildID).
		WillReturnError(pgx.ErrNoRows)

	rec, err := repo.GetByID(ctx, testGuildID)

	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestGuildRepository_SetPrefix(t *testing.T) {
	repo, mock := newGuildMock(t)
	ctx := context.Background()

	prefix := "$"
	mock.ExpectExec(`UPDATE guilds\s+SET prefix = \$2`).
		WithArgs(testGuildID, &prefix).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.SetPrefix(ctx, testGuildID, &prefix))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGuildRepository_UpsertCustomCommand(t *testing.T) {
	repo, mock := newGuildMock(t)
	ctx := context.Background()

	rows := pgxmock.NewRows([]string{"id", "enabled", "created_at"}).
		AddRow(int64(5), true, time.Now())

	mock.ExpectQuery(`INSERT INTO guild_commands(.|\n)*ON CONFLICT \(guild_id, name\)`).
		WithArgs(testGuildID, "hello", "world").
		WillReturnRows(rows)

	cmd := &models.CustomCommand{GuildID: testGuildID, Name: "hello", Reply: "world"}
	err := repo.UpsertCustomCommand(ctx, cmd)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), cmd.ID)
	assert.True(t, cmd.Enabled)
}

func TestGuildRepository_IncrementCommandUsage(t *testing.T) {
	repo, mock := newGuildMock(t)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO command_usage(.|\n)*uses = command_usage\.uses \+ 1`).
		WithArgs(testGuildID, "coinflip").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.IncrementCommandUsage(ctx, testGuildID, "coinflip"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
