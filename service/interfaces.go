package service

import (
	"context"

	"github.com/Hiroshi025/Nebura-sub000/events"
	"github.com/Hiroshi025/Nebura-sub000/games"
	"github.com/Hiroshi025/Nebura-sub000/models"
)

// BalanceRepository defines the interface for balance ledger data access
type BalanceRepository interface {
	// GetByUserGuild retrieves a balance record, nil when none exists
	GetByUserGuild(ctx context.Context, userID, guildID string) (*models.BalanceRecord, error)

	// Create creates a new balance record with a zero balance
	Create(ctx context.Context, userID, guildID string) (*models.BalanceRecord, error)

	// ApplyDelta adjusts a balance atomically, truncating the result to 2
	// decimals; when floorZero is set the balance never drops below 0
	ApplyDelta(ctx context.Context, userID, guildID string, delta float64, floorZero bool) error

	// DeductBalance debits atomically, failing with ErrInsufficientBalance
	// when funds are short
	DeductBalance(ctx context.Context, userID, guildID string, amount float64) error

	// ApplyMessageReward bumps the message counter and credits the
	// per-message reward in a single statement
	ApplyMessageReward(ctx context.Context, userID, guildID string, amount float64) error

	// TopBalances returns the highest balances in a guild
	TopBalances(ctx context.Context, guildID string, limit int) ([]*models.BalanceRecord, error)

	// RecordDuelResult increments a duel win/loss counter
	RecordDuelResult(ctx context.Context, userID, guildID string, won bool) error

	// UpdateJob persists the job-related fields of a record
	UpdateJob(ctx context.Context, rec *models.BalanceRecord) error
}

// HistoryRepository defines the interface for the balance audit trail
type HistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *models.BalanceHistory) error

	// GetByUser returns recent balance history for a user
	GetByUser(ctx context.Context, userID, guildID string, limit int) ([]*models.BalanceHistory, error)
}

// LoanRepository defines the interface for loan data access
type LoanRepository interface {
	// Create persists a new loan and fills in its generated id
	Create(ctx context.Context, loan *models.LoanRecord) error

	// GetOutstanding returns the unpaid loan for a user, nil when none
	GetOutstanding(ctx context.Context, userID, guildID string) (*models.LoanRecord, error)

	// MarkPaid settles a loan
	MarkPaid(ctx context.Context, id int64) error
}

// InventoryRepository defines the interface for inventory data access
type InventoryRepository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, id int64) (*models.InventoryItem, error)
	GetByUser(ctx context.Context, userID, guildID string) ([]*models.InventoryItem, error)
	Delete(ctx context.Context, id int64) error
}

// GuildRepository defines the interface for guild configuration access
type GuildRepository interface {
	GetByID(ctx context.Context, guildID string) (*models.GuildRecord, error)
	Create(ctx context.Context, guildID string) (*models.GuildRecord, error)
	SetPrefix(ctx context.Context, guildID string, prefix *string) error
	GetCustomCommand(ctx context.Context, guildID, name string) (*models.CustomCommand, error)
	UpsertCustomCommand(ctx context.Context, cmd *models.CustomCommand) error
	DeleteCustomCommand(ctx context.Context, guildID, name string) error
	ListCustomCommands(ctx context.Context, guildID string) ([]*models.CustomCommand, error)
	IncrementCommandUsage(ctx context.Context, guildID, command string) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork provides transactional access to all repositories
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	Balances() BalanceRepository
	History() HistoryRepository
	Loans() LoanRepository
	Inventory() InventoryRepository
	Guilds() GuildRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// LedgerService is the single point of read/lazy-create/mutate for
// per-(user, guild) balances
type LedgerService interface {
	// FetchBalance validates ids, then returns the existing record or
	// lazily creates one with balance 0. Never returns nil without error.
	FetchBalance(ctx context.Context, userID, guildID string) (*models.BalanceRecord, error)

	// GetBalance validates ids and returns the existing record, or nil
	// when none exists. Does not create.
	GetBalance(ctx context.Context, userID, guildID string) (*models.BalanceRecord, error)

	// ApplyChange mutates a balance by delta, appends a history row and
	// returns the new balance
	ApplyChange(ctx context.Context, userID, guildID string, delta float64, txType models.TransactionType, metadata map[string]any) (float64, error)

	// AddMessageReward credits the passive per-message reward
	AddMessageReward(ctx context.Context, userID, guildID string) error

	// Leaderboard returns the top balances in a guild
	Leaderboard(ctx context.Context, guildID string, limit int) ([]*models.BalanceRecord, error)

	// History returns a user's recent balance changes, newest first
	History(ctx context.Context, userID, guildID string, limit int) ([]*models.BalanceHistory, error)
}

// GameService runs the mini-game engines against the ledger
type GameService interface {
	PlayCoinflip(ctx context.Context, userID, guildID string, bet float64, pick games.CoinSide) (*games.CoinflipResult, float64, error)
	SettleRisk(ctx context.Context, userID, guildID string, bet float64, roundsWon int, busted bool) (float64, error)
	PlaySlots(ctx context.Context, userID, guildID string, bet float64) (*games.SlotsResult, float64, error)
	PlayCardGuess(ctx context.Context, userID, guildID string, pick int) (*games.CardResult, float64, error)
	PlayCardEscalation(ctx context.Context, userID, guildID string, pick int) (*games.CardResult, float64, error)
	PlayRoulette(ctx context.Context, userID, guildID string, bet float64, kind games.RouletteBetKind, number int, color games.RouletteColor) (*games.RouletteResult, float64, error)
	ResolveDuel(ctx context.Context, guildID, challengerID, opponentID string, stake float64) (*models.DuelResult, error)
}

// TransferService moves money between users
type TransferService interface {
	Transfer(ctx context.Context, guildID, fromUserID, toUserID string, amount float64) (*models.TransferResult, error)
}

// LoanService manages loans against the guild treasury
type LoanService interface {
	RequestLoan(ctx context.Context, userID, guildID string, amount float64) (*models.LoanRecord, error)
	RepayLoan(ctx context.Context, userID, guildID string) (*models.LoanRecord, error)
	OutstandingLoan(ctx context.Context, userID, guildID string) (*models.LoanRecord, error)
}

// ShopService manages the item catalog and inventories
type ShopService interface {
	Catalog() []models.ShopItem
	Purchase(ctx context.Context, userID, guildID, itemIdentifier string) (*models.InventoryItem, error)
	Inventory(ctx context.Context, userID, guildID string) ([]*models.InventoryItem, error)
	Redeem(ctx context.Context, userID, guildID string, inventoryID int64) (*models.RedeemResult, error)
}

// JobService manages jobs and payroll
type JobService interface {
	Jobs() []Job
	Join(ctx context.Context, userID, guildID, jobName string) (*models.BalanceRecord, error)
	Quit(ctx context.Context, userID, guildID string) error
	Work(ctx context.Context, userID, guildID string) (*models.WorkResult, error)
}

// GuildService manages per-guild configuration
type GuildService interface {
	// EffectivePrefix returns the guild override when set, the global
	// default otherwise
	EffectivePrefix(ctx context.Context, guildID string) string
	SetPrefix(ctx context.Context, guildID, prefix string) error
	ClearPrefix(ctx context.Context, guildID string) error
	CustomCommand(ctx context.Context, guildID, name string) (*models.CustomCommand, error)
	SetCustomCommand(ctx context.Context, guildID, name, reply string) error
	RemoveCustomCommand(ctx context.Context, guildID, name string) error
	ListCustomCommands(ctx context.Context, guildID string) ([]*models.CustomCommand, error)

	// BumpCommandUsage increments a usage counter, best-effort
	BumpCommandUsage(ctx context.Context, guildID, command string)
}
