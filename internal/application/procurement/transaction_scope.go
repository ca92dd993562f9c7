package procurement

import (
	"context"

	"github.com/sppg/backend/internal/domain/inventory"
	"github.com/sppg/backend/internal/domain/partner"
	"github.com/sppg/backend/internal/domain/procurement"
)

// TransactionScope provides transactional access to the repositories touched
// by procurement workflows. Acceptance spans four aggregates (procurement,
// inventory item, stock ledger, supplier) and must commit atomically.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to the current
// transaction.
type TransactionalRepositories interface {
	ProcurementRepo() procurement.Repository
	PlanRepo() procurement.PlanRepository
	QCRepo() procurement.QualityControlRepository
	ItemRepo() inventory.InventoryItemRepository
	MovementRepo() inventory.StockMovementRepository
	SupplierRepo() partner.SupplierRepository
}

// NoOpTransactionScope runs the function without a real transaction. Used in
// tests.
type NoOpTransactionScope struct {
	procurementRepo procurement.Repository
	planRepo        procurement.PlanRepository
	qcRepo          procurement.QualityControlRepository
	itemRepo        inventory.InventoryItemRepository
	movementRepo    inventory.StockMovementRepository
	supplierRepo    partner.SupplierRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	procurementRepo procurement.Repository,
	planRepo procurement.PlanRepository,
	qcRepo procurement.QualityControlRepository,
	itemRepo inventory.InventoryItemRepository,
	movementRepo inventory.StockMovementRepository,
	supplierRepo partner.SupplierRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		procurementRepo: procurementRepo,
		planRepo:        planRepo,
		qcRepo:          qcRepo,
		itemRepo:        itemRepo,
		movementRepo:    movementRepo,
		supplierRepo:    supplierRepo,
	}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProcurementRepo returns the procurement repository
func (s *NoOpTransactionScope) ProcurementRepo() procurement.Repository { return s.procurementRepo }

// PlanRepo returns the plan repository
func (s *NoOpTransactionScope) PlanRepo() procurement.PlanRepository { return s.planRepo }

// QCRepo returns the quality control repository
func (s *NoOpTransactionScope) QCRepo() procurement.QualityControlRepository { return s.qcRepo }

// ItemRepo returns the inventory item repository
func (s *NoOpTransactionScope) ItemRepo() inventory.InventoryItemRepository { return s.itemRepo }

// MovementRepo returns the stock movement repository
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

// SupplierRepo returns the supplier repository
func (s *NoOpTransactionScope) SupplierRepo() partner.SupplierRepository { return s.supplierRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
