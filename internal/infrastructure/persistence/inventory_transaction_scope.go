package persistence

import (
	"context"

	"gorm.io/gorm"

	appinventory "github.com/sppg/backend/internal/application/inventory"
	"github.com/sppg/backend/internal/domain/inventory"
)

// GormInventoryTransactionScope implements the inventory TransactionScope
// over a single GORM transaction. Stock changes and ledger appends commit or
// roll back together.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a transaction scope over the given DB
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs fn inside a database transaction. The repositories handed to
// fn are bound to that transaction.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&inventoryTransactionalRepositories{tx: tx})
	})
}

type inventoryTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *inventoryTransactionalRepositories) ItemRepo() inventory.InventoryItemRepository {
	return NewGormInventoryItemRepository(r.tx)
}

func (r *inventoryTransactionalRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

var _ appinventory.TransactionScope = (*GormInventoryTransactionScope)(nil)
var _ appinventory.TransactionalRepositories = (*inventoryTransactionalRepositories)(nil)
