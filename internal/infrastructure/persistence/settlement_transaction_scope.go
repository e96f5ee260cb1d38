package persistence

import (
	"context"

	appinv "github.com/kavara/backend/internal/application/inventory"
	"github.com/kavara/backend/internal/domain/catalog"
	"github.com/kavara/backend/internal/domain/inventory"
	"github.com/kavara/backend/internal/domain/order"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// SellableRepo returns the sellable repository scoped to the current transaction.
// Row locks taken through it are held until the transaction ends.
func (r *gormTransactionalRepositories) SellableRepo() catalog.SellableRepository {
	return NewGormSellableRepository(r.tx)
}

// HistoryRepo returns the stock history repository scoped to the current transaction.
func (r *gormTransactionalRepositories) HistoryRepo() inventory.HistoryRepository {
	return NewGormHistoryRepository(r.tx)
}

// MarkerRepo returns the settlement marker repository scoped to the current transaction.
func (r *gormTransactionalRepositories) MarkerRepo() inventory.SettlementMarkerRepository {
	return NewGormSettlementMarkerRepository(r.tx)
}

// OrderRepo returns the order repository scoped to the current transaction.
func (r *gormTransactionalRepositories) OrderRepo() order.Repository {
	return NewGormOrderRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appinv.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appinv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
