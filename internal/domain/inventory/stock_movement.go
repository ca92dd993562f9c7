package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sppg/backend/internal/domain/shared"
)

// MovementType is the direction of a stock movement
type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	return t == MovementIn || t == MovementOut
}

// ReferenceType identifies the source document of a stock movement
type ReferenceType string

const (
	ReferenceProcurement ReferenceType = "PROCUREMENT"
	ReferenceProduction  ReferenceType = "PRODUCTION"
	ReferenceAdjustment  ReferenceType = "ADJUSTMENT"
)

// IsValid returns true if the reference type is valid
func (r ReferenceType) IsValid() bool {
	switch r {
	case ReferenceProcurement, ReferenceProduction, ReferenceAdjustment:
		return true
	}
	return false
}

// StockMovement is an immutable ledger entry recording a single inventory
// change. Once created it is never edited; corrections require a new
// compensating movement. StockAfter must equal StockBefore plus or minus
// Quantity depending on the movement type, and must equal the item's
// CurrentStock at the time of writing.
type StockMovement struct {
	shared.BaseEntity
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_movement_tenant_time,priority:1"`
	InventoryItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	MovementType    MovementType    `gorm:"type:varchar(10);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	StockBefore     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	StockAfter      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReferenceType   ReferenceType   `gorm:"type:varchar(30);not null;index:idx_stock_movement_ref"`
	ReferenceID     string          `gorm:"type:varchar(50);not null;index:idx_stock_movement_ref"`
	Notes           string          `gorm:"type:varchar(255)"`
	MovementDate    time.Time       `gorm:"type:timestamptz;not null;index:idx_stock_movement_tenant_time,priority:2"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a validated ledger entry
func NewStockMovement(
	tenantID, itemID uuid.UUID,
	movementType MovementType,
	quantity, stockBefore, stockAfter, unitCost decimal.Decimal,
	refType ReferenceType,
	refID string,
) (*StockMovement, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Inventory item ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Invalid movement type")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if !refType.IsValid() {
		return nil, shared.NewDomainError("INVALID_REFERENCE_TYPE", "Invalid reference type")
	}
	if refID == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE_ID", "Reference ID cannot be empty")
	}

	expected := stockBefore.Add(quantity)
	if movementType == MovementOut {
		expected = stockBefore.Sub(quantity)
	}
	if !stockAfter.Equal(expected) {
		return nil, shared.NewDomainError("LEDGER_MISMATCH", "Stock after does not match stock before and quantity")
	}

	return &StockMovement{
		BaseEntity:      shared.NewBaseEntity(),
		TenantID:        tenantID,
		InventoryItemID: itemID,
		MovementType:    movementType,
		Quantity:        quantity,
		StockBefore:     stockBefore,
		StockAfter:      stockAfter,
		UnitCost:        unitCost,
		ReferenceType:   refType,
		ReferenceID:     refID,
		MovementDate:    time.Now(),
	}, nil
}

// SignedQuantity returns the quantity with direction applied
func (m *StockMovement) SignedQuantity() decimal.Decimal {
	if m.MovementType == MovementOut {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// TotalCost returns the movement value (quantity * unit cost)
func (m *StockMovement) TotalCost() decimal.Decimal {
	return m.Quantity.Mul(m.UnitCost)
}
