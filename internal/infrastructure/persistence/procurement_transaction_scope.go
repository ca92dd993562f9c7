package persistence

import (
	"context"

	"gorm.io/gorm"

	appprocurement "github.com/sppg/backend/internal/application/procurement"
	"github.com/sppg/backend/internal/domain/inventory"
	"github.com/sppg/backend/internal/domain/partner"
	"github.com/sppg/backend/internal/domain/procurement"
)

// GormProcurementTransactionScope implements the procurement TransactionScope
// over a single GORM transaction. Acceptance touches the procurement, the
// inventory items, the stock ledger and the supplier counters, which must
// commit atomically.
type GormProcurementTransactionScope struct {
	db *gorm.DB
}

// NewGormProcurementTransactionScope creates a transaction scope over the given DB
func NewGormProcurementTransactionScope(db *gorm.DB) *GormProcurementTransactionScope {
	return &GormProcurementTransactionScope{db: db}
}

// Execute runs fn inside a database transaction. The repositories handed to
// fn are bound to that transaction.
func (s *GormProcurementTransactionScope) Execute(ctx context.Context, fn func(repos appprocurement.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&procurementTransactionalRepositories{tx: tx})
	})
}

type procurementTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *procurementTransactionalRepositories) ProcurementRepo() procurement.Repository {
	return NewGormProcurementRepository(r.tx)
}

func (r *procurementTransactionalRepositories) PlanRepo() procurement.PlanRepository {
	return NewGormPlanRepository(r.tx)
}

func (r *procurementTransactionalRepositories) QCRepo() procurement.QualityControlRepository {
	return NewGormQualityControlRepository(r.tx)
}

func (r *procurementTransactionalRepositories) ItemRepo() inventory.InventoryItemRepository {
	return NewGormInventoryItemRepository(r.tx)
}

func (r *procurementTransactionalRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

func (r *procurementTransactionalRepositories) SupplierRepo() partner.SupplierRepository {
	return NewGormSupplierRepository(r.tx)
}

var _ appprocurement.TransactionScope = (*GormProcurementTransactionScope)(nil)
var _ appprocurement.TransactionalRepositories = (*procurementTransactionalRepositories)(nil)
