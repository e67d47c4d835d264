package models

import (
	"time"
)

// GuildRecord holds per-guild configuration. Created on the first message
// seen from a guild.
type GuildRecord struct {
	GuildID         string    `db:"guild_id"`
	Prefix          *string   `db:"prefix"` // nil means the global default applies
	RoomsChannelID  *string   `db:"rooms_channel_id"`
	RoomsCategoryID *string   `db:"rooms_category_id"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// CustomCommand is a guild-admin configured auto-responder: when a prefixed
// message matches no registered command, a matching custom command replies
// with its stored text.
type CustomCommand struct {
	ID        int64     `db:"id"`
	GuildID   string    `db:"guild_id"`
	Name      string    `db:"name"`
	Reply     string    `db:"reply"`
	Enabled   bool      `db:"enabled"`
	CreatedAt time.Time `db:"created_at"`
}
