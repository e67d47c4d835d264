package models

import (
	"time"
)

// LoanInterestRate is the fixed interest applied to every loan.
const LoanInterestRate = 0.10

// LoanTerm is how long a borrower has before a loan is due.
const LoanTerm = 7 * 24 * time.Hour

// LoanRecord represents a loan taken out against a guild's treasury.
// A user may have at most one outstanding (Paid=false) loan per guild.
type LoanRecord struct {
	ID        int64     `db:"id"`
	UserID    string    `db:"user_id"`
	GuildID   string    `db:"guild_id"`
	Amount    float64   `db:"amount"`
	Interest  float64   `db:"interest"`
	DueDate   time.Time `db:"due_date"`
	Paid      bool      `db:"paid"`
	CreatedAt time.Time `db:"created_at"`
}

// TotalDue returns the amount required to settle the loan.
func (l *LoanRecord) TotalDue() float64 {
	return NormalizeAmount(l.Amount * (1 + l.Interest))
}

// Overdue reports whether the loan is past its due date at the given time.
func (l *LoanRecord) Overdue(now time.Time) bool {
	return !l.Paid && now.After(l.DueDate)
}
