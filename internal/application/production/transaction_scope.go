package production

import (
	"context"

	"github.com/sppg/backend/internal/domain/inventory"
	"github.com/sppg/backend/internal/domain/production"
)

// TransactionScope provides transactional access to the repositories touched
// by production workflows. Batch creation consumes stock, so the production,
// the inventory items and the ledger must commit together.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to the current
// transaction.
type TransactionalRepositories interface {
	ProductionRepo() production.Repository
	ItemRepo() inventory.InventoryItemRepository
	MovementRepo() inventory.StockMovementRepository
}

// NoOpTransactionScope runs the function without a real transaction. Used in
// tests.
type NoOpTransactionScope struct {
	productionRepo production.Repository
	itemRepo       inventory.InventoryItemRepository
	movementRepo   inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	productionRepo production.Repository,
	itemRepo inventory.InventoryItemRepository,
	movementRepo inventory.StockMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productionRepo: productionRepo,
		itemRepo:       itemRepo,
		movementRepo:   movementRepo,
	}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductionRepo returns the production repository
func (s *NoOpTransactionScope) ProductionRepo() production.Repository { return s.productionRepo }

// ItemRepo returns the inventory item repository
func (s *NoOpTransactionScope) ItemRepo() inventory.InventoryItemRepository { return s.itemRepo }

// MovementRepo returns the stock movement repository
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
