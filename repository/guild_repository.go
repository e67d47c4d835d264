package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Hiroshi025/Nebura-sub000/database"
	"github.com/Hiroshi025/Nebura-sub000/models"
)

// GuildRepository implements the GuildRepository interface
type GuildRepository struct {
	q queryable
}

// NewGuildRepository creates a new guild repository
func NewGuildRepository(db *database.DB) *GuildRepository {
	return &GuildRepository{q: db.Pool}
}

// newGuildRepositoryWithTx creates a new guild repository with a transaction
func newGuildRepositoryWithTx(tx queryable) *GuildRepository {
	return &GuildRepository{q: tx}
}

// GetByID retrieves a guild record, nil when none exists
func (r *GuildRepository) GetByID(ctx context.Context, guildID string) (*models.GuildRecord, error) {
	query := `
		SELECT guild_id, prefix, rooms_channel_id, rooms_category_id, created_at, updated_at
		FROM guilds
		WHERE guild_id = $1
	`

	var rec models.GuildRecord
	err := r.q.QueryRow(ctx, query, guildID).Scan(
		&rec.GuildID,
		&rec.Prefix,
		&rec.RoomsChannelID,
		&rec.RoomsCategoryID,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guild %s: %w", guildID, err)
	}

	return &rec, nil
}

// Create creates a new guild record with default settings
func (r *GuildRepository) Create(ctx context.Context, guildID string) (*models.GuildRecord, error) {
	query := `
		INSERT INTO guilds (guild_id)
		VALUES ($1)
		ON CONFLICT (guild_id) DO NOTHING
		RETURNING guild_id, prefix, rooms_channel_id, rooms_category_id, created_at, updated_at
	`

	var rec models.GuildRecord
	err := r.q.QueryRow(ctx, query, guildID).Scan(
		&rec.GuildID,
		&rec.Prefix,
		&rec.RoomsChannelID,
		&rec.RoomsCategoryID,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		// Lost the insert race; the existing row wins.
		return r.GetByID(ctx, guildID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create guild %s: %w", guildID, err)
	}

	return &rec, nil
}

// SetPrefix updates the command prefix override, nil restores the default
func (r *GuildRepository) SetPrefix(ctx context.Context, guildID string, prefix *string) error {
	query := `
		UPDATE guilds
		SET prefix = $2, updated_at = NOW()
		WHERE guild_id = $1
	`

	result, err := r.q.Exec(ctx, query, guildID, prefix)
	if err != nil {
		return fmt.Errorf("failed to set prefix for guild %s: %w", guildID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("guild %s not found", guildID)
	}

	return nil
}

// GetCustomCommand retrieves an enabled custom command, nil when none
func (r *GuildRepository) GetCustomCommand(ctx context.Context, guildID, name string) (*models.CustomCommand, error) {
	query := `
		SELECT id, guild_id, name, reply, enabled, created_at
		FROM guild_commands
		WHERE guild_id = $1 AND name = $2 AND enabled
	`

	var cmd models.CustomCommand
	err := r.q.QueryRow(ctx, query, guildID, name).Scan(
		&cmd.ID,
		&cmd.GuildID,
		&cmd.Name,
		&cmd.Reply,
		&cmd.Enabled,
		&cmd.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get custom command %s for guild %s: %w", name, guildID, err)
	}

	return &cmd, nil
}

// UpsertCustomCommand creates or replaces a custom command
func (r *GuildRepository) UpsertCustomCommand(ctx context.Context, cmd *models.CustomCommand) error {
	query := `
		INSERT INTO guild_commands (guild_id, name, reply, enabled)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (guild_id, name)
		DO UPDATE SET reply = EXCLUDED.reply, enabled = TRUE
		RETURNING id, enabled, created_at
	`

	err := r.q.QueryRow(ctx, query, cmd.GuildID, cmd.Name, cmd.Reply).Scan(
		&cmd.ID,
		&cmd.Enabled,
		&cmd.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert custom command %s for guild %s: %w", cmd.Name, cmd.GuildID, err)
	}

	return nil
}

// DeleteCustomCommand removes a custom command
func (r *GuildRepository) DeleteCustomCommand(ctx context.Context, guildID, name string) error {
	result, err := r.q.Exec(ctx,
		`DELETE FROM guild_commands WHERE guild_id = $1 AND name = $2`,
		guildID, name,
	)
	if err != nil {
		return fmt.Errorf("failed to delete custom command %s for guild %s: %w", name, guildID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("custom command %s not found in guild %s", name, guildID)
	}

	return nil
}

// ListCustomCommands returns all custom commands of a guild
func (r *GuildRepository) ListCustomCommands(ctx context.Context, guildID string) ([]*models.CustomCommand, error) {
	query := `
		SELECT id, guild_id, name, reply, enabled, created_at
		FROM guild_commands
		WHERE guild_id = $1
		ORDER BY name
	`

	rows, err := r.q.Query(ctx, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom commands for guild %s: %w", guildID, err)
	}
	defer rows.Close()

	var cmds []*models.CustomCommand
	for rows.Next() {
		var cmd models.CustomCommand
		err := rows.Scan(
			&cmd.ID,
			&cmd.GuildID,
			&cmd.Name,
			&cmd.Reply,
			&cmd.Enabled,
			&cmd.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan custom command: %w", err)
		}
		cmds = append(cmds, &cmd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate custom commands: %w", err)
	}

	return cmds, nil
}

// IncrementCommandUsage bumps a per-guild usage counter
func (r *GuildRepository) IncrementCommandUsage(ctx context.Context, guildID, command string) error {
	query := `
		INSERT INTO command_usage (guild_id, command, uses)
		VALUES ($1, $2, 1)
		ON CONFLICT (guild_id, command)
		DO UPDATE SET uses = command_usage.uses + 1
	`

	if _, err := r.q.Exec(ctx, query, guildID, command); err != nil {
		return fmt.Errorf("failed to increment usage for command %s in guild %s: %w", command, guildID, err)
	}

	return nil
}
