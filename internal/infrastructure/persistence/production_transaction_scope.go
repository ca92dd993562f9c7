package persistence

import (
	"context"

	"gorm.io/gorm"

	appproduction "github.com/sppg/backend/internal/application/production"
	"github.com/sppg/backend/internal/domain/inventory"
	"github.com/sppg/backend/internal/domain/production"
)

// GormProductionTransactionScope implements the production TransactionScope
// over a single GORM transaction. Batch creation consumes stock, so the
// batch, the items and the ledger commit together.
type GormProductionTransactionScope struct {
	db *gorm.DB
}

// NewGormProductionTransactionScope creates a transaction scope over the given DB
func NewGormProductionTransactionScope(db *gorm.DB) *GormProductionTransactionScope {
	return &GormProductionTransactionScope{db: db}
}

// Execute runs fn inside a database transaction. The repositories handed to
// fn are bound to that transaction.
func (s *GormProductionTransactionScope) Execute(ctx context.Context, fn func(repos appproduction.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&productionTransactionalRepositories{tx: tx})
	})
}

type productionTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *productionTransactionalRepositories) ProductionRepo() production.Repository {
	return NewGormProductionRepository(r.tx)
}

func (r *productionTransactionalRepositories) ItemRepo() inventory.InventoryItemRepository {
	return NewGormInventoryItemRepository(r.tx)
}

func (r *productionTransactionalRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

var _ appproduction.TransactionScope = (*GormProductionTransactionScope)(nil)
var _ appproduction.TransactionalRepositories = (*productionTransactionalRepositories)(nil)
