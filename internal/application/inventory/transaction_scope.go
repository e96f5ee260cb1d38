package inventory

import (
	"context"

	"github.com/kavara/backend/internal/domain/catalog"
	"github.com/kavara/backend/internal/domain/inventory"
	"github.com/kavara/backend/internal/domain/order"
)

// TransactionScope provides transactional access to settlement repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories the
// settlement engine touches within a transaction. All repositories
// returned share the same underlying database transaction.
//
// Aggregate boundary notes:
//   - SellableRepo is the kind-generic locking view over products and
//     boxes. FindForUpdate acquires the exclusive row lock that guards
//     every stock mutation.
//   - HistoryRepo is append-only. Audit rows are never updated.
//   - MarkerRepo records that an order has been settled in a given
//     direction, making refunds idempotent.
type TransactionalRepositories interface {
	// SellableRepo returns the locking sellable repository scoped to the current transaction
	SellableRepo() catalog.SellableRepository
	// HistoryRepo returns the stock history repository scoped to the current transaction
	HistoryRepo() inventory.HistoryRepository
	// MarkerRepo returns the settlement marker repository scoped to the current transaction
	MarkerRepo() inventory.SettlementMarkerRepository
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() order.Repository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests that provide in-memory repositories.
type NoOpTransactionScope struct {
	sellableRepo catalog.SellableRepository
	historyRepo  inventory.HistoryRepository
	markerRepo   inventory.SettlementMarkerRepository
	orderRepo    order.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	sellableRepo catalog.SellableRepository,
	historyRepo inventory.HistoryRepository,
	markerRepo inventory.SettlementMarkerRepository,
	orderRepo order.Repository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		sellableRepo: sellableRepo,
		historyRepo:  historyRepo,
		markerRepo:   markerRepo,
		orderRepo:    orderRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SellableRepo returns the sellable repository.
func (s *NoOpTransactionScope) SellableRepo() catalog.SellableRepository {
	return s.sellableRepo
}

// HistoryRepo returns the stock history repository.
func (s *NoOpTransactionScope) HistoryRepo() inventory.HistoryRepository {
	return s.historyRepo
}

// MarkerRepo returns the settlement marker repository.
func (s *NoOpTransactionScope) MarkerRepo() inventory.SettlementMarkerRepository {
	return s.markerRepo
}

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() order.Repository {
	return s.orderRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
