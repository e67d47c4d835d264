package models

import (
	"time"
)

// TransactionType represents the type of balance change
type TransactionType string

const (
	TransactionTypeInitial       TransactionType = "initial"
	TransactionTypeGameWin       TransactionType = "game_win"
	TransactionTypeGameLoss      TransactionType = "game_loss"
	TransactionTypeTransferIn    TransactionType = "transfer_in"
	TransactionTypeTransferOut   TransactionType = "transfer_out"
	TransactionTypeWorkPay       TransactionType = "work_pay"
	TransactionTypeLoanDisbursed TransactionType = "loan_disbursed"
	TransactionTypeLoanRepaid    TransactionType = "loan_repaid"
	TransactionTypeShopPurchase  TransactionType = "shop_purchase"
	TransactionTypeItemRedeemed  TransactionType = "item_redeemed"
	TransactionTypeMessageReward TransactionType = "message_reward"
	TransactionTypeDuelWin       TransactionType = "duel_win"
	TransactionTypeDuelLoss      TransactionType = "duel_loss"
)

// BalanceHistory represents a historical balance change
type BalanceHistory struct {
	ID                  int64           `db:"id"`
	UserID              string          `db:"user_id"`
	GuildID             string          `db:"guild_id"`
	BalanceBefore       float64         `db:"balance_before"`
	BalanceAfter        float64         `db:"balance_after"`
	ChangeAmount        float64         `db:"change_amount"`
	TransactionType     TransactionType `db:"transaction_type"`
	TransactionMetadata map[string]any  `db:"transaction_metadata"`
	CreatedAt           time.Time       `db:"created_at"`
}
