package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sppg/backend/internal/domain/shared"
)

// InventoryItemRepository defines persistence operations for inventory items
type InventoryItemRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*InventoryItem, error)
	// FindByIDForUpdate loads the item with a row-level lock. Must be called
	// inside a transaction; used wherever stock is about to change.
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*InventoryItem, error)
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*InventoryItem, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]InventoryItem, error)
	FindBelowMinimum(ctx context.Context, tenantID uuid.UUID) ([]InventoryItem, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, item *InventoryItem) error
}

// StockMovementRepository is the append-only ledger store. Movements are
// never updated or deleted.
type StockMovementRepository interface {
	Append(ctx context.Context, movement *StockMovement) error
	FindByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]StockMovement, error)
	FindByReference(ctx context.Context, tenantID uuid.UUID, refType ReferenceType, refID string) ([]StockMovement, error)
	CountByReference(ctx context.Context, tenantID uuid.UUID, refType ReferenceType, refID string) (int64, error)
	// NetPostedByReference returns the net quantity (IN minus OUT) already
	// posted for one item under a reference document.
	NetPostedByReference(ctx context.Context, tenantID, itemID uuid.UUID, refType ReferenceType, refID string) (decimal.Decimal, error)
	CountByItem(ctx context.Context, tenantID, itemID uuid.UUID) (int64, error)
}
