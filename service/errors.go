package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidIdentifier means a supplied user/guild id is neither a
	// 17-20 digit snowflake nor a 24-hex store id.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrInvalidBet means a bet is missing, non-positive, non-finite or
	// exceeds the player's current balance.
	ErrInvalidBet = errors.New("invalid bet")

	// ErrInsufficientBalance means a debit would overdraw an account that
	// is not allowed to go negative.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrLoanOutstanding means the user already has an unpaid loan.
	ErrLoanOutstanding = errors.New("an unpaid loan already exists")

	// ErrNoLoan means the user has no outstanding loan to repay.
	ErrNoLoan = errors.New("no outstanding loan")

	// ErrItemNotFound means a shop or inventory item does not exist or is
	// not owned by the requesting user.
	ErrItemNotFound = errors.New("item not found")

	// ErrNoJob means the user has no job for the requested operation.
	ErrNoJob = errors.New("no job")

	// ErrUnknownJob means the requested job is not in the catalog.
	ErrUnknownJob = errors.New("unknown job")
)

// CooldownError reports when a rate-limited operation becomes available
// again.
type CooldownError struct {
	Until time.Time
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("on cooldown until %s", e.Until.Format(time.RFC3339))
}
