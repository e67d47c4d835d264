package models

import (
	"time"
)

// BalanceRecord represents a user's economy state within a single guild.
// Identified by the (UserID, GuildID) composite key and created lazily on
// first access with a zero balance.
type BalanceRecord struct {
	UserID       string         `db:"user_id"`
	GuildID      string         `db:"guild_id"`
	Balance      float64        `db:"balance"`
	MessageCount int64          `db:"message_count"`
	Job          string         `db:"job"`
	JobRank      int            `db:"job_rank"`
	JobStartDate *time.Time     `db:"job_start_date"`
	LastWorkDate *time.Time     `db:"last_work_date"`
	JobCooldown  int64          `db:"job_cooldown"` // seconds between work shifts
	Skills       map[string]int `db:"skills"`       // job name -> skill level
	Reputation   int            `db:"reputation"`
	Prestige     int            `db:"prestige"`
	WonDuels     int            `db:"won_duels"`
	LostDuels    int            `db:"lost_duels"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}
