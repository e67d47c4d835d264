package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Hiroshi025/Nebura-sub000/events"
	"github.com/Hiroshi025/Nebura-sub000/models"
)

// MockBalanceRepository is a mock implementation of BalanceRepository
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) GetByUserGuild(ctx context.Context, userID, guildID string) (*models.BalanceRecord, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BalanceRecord), args.Error(1)
}

func (m *MockBalanceRepository) Create(ctx context.Context, userID, guildID string) (*models.BalanceRecord, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BalanceRecord), args.Error(1)
}

func (m *MockBalanceRepository) ApplyDelta(ctx context.Context, userID, guildID string, delta float64, floorZero bool) error {
	args := m.Called(ctx, userID, guildID, delta, floorZero)
	return args.Error(0)
}

func (m *MockBalanceRepository) DeductBalance(ctx context.Context, userID, guildID string, amount float64) error {
	args := m.Called(ctx, userID, guildID, amount)
	return args.Error(0)
}

func (m *MockBalanceRepository) ApplyMessageReward(ctx context.Context, userID, guildID string, amount float64) error {
	args := m.Called(ctx, userID, guildID, amount)
	return args.Error(0)
}

func (m *MockBalanceRepository) TopBalances(ctx context.Context, guildID string, limit int) ([]*models.BalanceRecord, error) {
	args := m.Called(ctx, guildID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BalanceRecord), args.Error(1)
}

func (m *MockBalanceRepository) RecordDuelResult(ctx context.Context, userID, guildID string, won bool) error {
	args := m.Called(ctx, userID, guildID, won)
	return args.Error(0)
}

func (m *MockBalanceRepository) UpdateJob(ctx context.Context, rec *models.BalanceRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// MockHistoryRepository is a mock implementation of HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Record(ctx context.Context, history *models.BalanceHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockHistoryRepository) GetByUser(ctx context.Context, userID, guildID string, limit int) ([]*models.BalanceHistory, error) {
	args := m.Called(ctx, userID, guildID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BalanceHistory), args.Error(1)
}

// MockLoanRepository is a mock implementation of LoanRepository
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *models.LoanRecord) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) GetOutstanding(ctx context.Context, userID, guildID string) (*models.LoanRecord, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoanRecord), args.Error(1)
}

func (m *MockLoanRepository) MarkPaid(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockInventoryRepository is a mock implementation of InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) GetByID(ctx context.Context, id int64) (*models.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) GetByUser(ctx context.Context, userID, guildID string) ([]*models.InventoryItem, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGuildRepository is a mock implementation of GuildRepository
type MockGuildRepository struct {
	mock.Mock
}

func (m *MockGuildRepository) GetByID(ctx context.Context, guildID string) (*models.GuildRecord, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildRecord), args.Error(1)
}

func (m *MockGuildRepository) Create(ctx context.Context, guildID string) (*models.GuildRecord, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildRecord), args.Error(1)
}

func (m *MockGuildRepository) SetPrefix(ctx context.Context, guildID string, prefix *string) error {
	args := m.Called(ctx, guildID, prefix)
	return args.Error(0)
}

func (m *MockGuildRepository) GetCustomCommand(ctx context.Context, guildID, name string) (*models.CustomCommand, error) {
	args := m.Called(ctx, guildID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CustomCommand), args.Error(1)
}

func (m *MockGuildRepository) UpsertCustomCommand(ctx context.Context, cmd *models.CustomCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *MockGuildRepository) DeleteCustomCommand(ctx context.Context, guildID, name string) error {
	args := m.Called(ctx, guildID, name)
	return args.Error(0)
}

func (m *MockGuildRepository) ListCustomCommands(ctx context.Context, guildID string) ([]*models.CustomCommand, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CustomCommand), args.Error(1)
}

func (m *MockGuildRepository) IncrementCommandUsage(ctx context.Context, guildID, command string) error {
	args := m.Called(ctx, guildID, command)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// noopPublisher drops events; the default bus for mocked units of work so
// tests only assert on events when they care.
type noopPublisher struct{}

func (noopPublisher) Publish(events.Event) {}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// injected via SetRepositories; Begin/Commit/Rollback are regular mock
// expectations.
type MockUnitOfWork struct {
	mock.Mock

	balances  BalanceRepository
	history   HistoryRepository
	loans     LoanRepository
	inventory InventoryRepository
	guilds    GuildRepository
	eventBus  EventPublisher
}

// SetRepositories wires the repository mocks this unit of work hands out
func (m *MockUnitOfWork) SetRepositories(balances BalanceRepository, history HistoryRepository, loans LoanRepository, inventory InventoryRepository, guilds GuildRepository) {
	m.balances = balances
	m.history = history
	m.loans = loans
	m.inventory = inventory
	m.guilds = guilds
}

// SetEventBus overrides the default event sink with an asserting mock
func (m *MockUnitOfWork) SetEventBus(bus EventPublisher) {
	m.eventBus = bus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Balances() BalanceRepository    { return m.balances }
func (m *MockUnitOfWork) History() HistoryRepository     { return m.history }
func (m *MockUnitOfWork) Loans() LoanRepository          { return m.loans }
func (m *MockUnitOfWork) Inventory() InventoryRepository { return m.inventory }
func (m *MockUnitOfWork) Guilds() GuildRepository        { return m.guilds }

func (m *MockUnitOfWork) EventBus() EventPublisher {
	if m.eventBus == nil {
		return noopPublisher{}
	}
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
