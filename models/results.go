package models

import "time"

// TransferResult contains the outcome of a user-to-user transfer
type TransferResult struct {
	Amount        float64
	RecipientID   string
	NewBalance    float64
}

// WorkResult contains the outcome of a completed work shift
type WorkResult struct {
	Job        string
	Pay        float64
	NewBalance float64
	SkillLevel int
	JobRank    int
	RankedUp   bool
	NextShift  time.Time
}

// DuelResult contains the outcome of a resolved duel
type DuelResult struct {
	WinnerID          string
	LoserID           string
	Stake             float64
	WinnerNewBalance  float64
	LoserNewBalance   float64
}

// RedeemResult contains the outcome of an inventory item redemption
type RedeemResult struct {
	Item       *InventoryItem
	Credited   float64
	NewBalance float64
}
