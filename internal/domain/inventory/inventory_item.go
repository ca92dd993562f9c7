package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sppg/backend/internal/domain/shared"
)

// ItemCategory groups inventory items for reporting
type ItemCategory string

const (
	CategoryStaple    ItemCategory = "STAPLE"
	CategoryProtein   ItemCategory = "PROTEIN"
	CategoryVegetable ItemCategory = "VEGETABLE"
	CategoryFruit     ItemCategory = "FRUIT"
	CategorySpice     ItemCategory = "SPICE"
	CategoryPackaging ItemCategory = "PACKAGING"
	CategoryOther     ItemCategory = "OTHER"
)

// IsValid returns true if the category is a known value
func (c ItemCategory) IsValid() bool {
	switch c {
	case CategoryStaple, CategoryProtein, CategoryVegetable, CategoryFruit,
		CategorySpice, CategoryPackaging, CategoryOther:
		return true
	}
	return false
}

// InventoryItem is the aggregate root for a stocked ingredient or material.
//
// CurrentStock is the running balance of all stock movements: it must never
// be mutated except together with an appended StockMovement inside the same
// database transaction. Items are never hard-deleted, only deactivated.
type InventoryItem struct {
	shared.TenantAggregateRoot
	Code         string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_inventory_item_tenant_code,priority:2"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Category     ItemCategory    `gorm:"type:varchar(30);not null"`
	Unit         string          `gorm:"type:varchar(20);not null"`
	CurrentStock decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinStock     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CostPerUnit  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsActive     bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// NewInventoryItem creates a new inventory item with zero stock
func NewInventoryItem(tenantID uuid.UUID, code, name string, category ItemCategory, unit string) (*InventoryItem, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_CODE", "Item code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown item category")
	}
	if strings.TrimSpace(unit) == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}

	return &InventoryItem{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Category:            category,
		Unit:                strings.TrimSpace(unit),
		CurrentStock:        decimal.Zero,
		MinStock:            decimal.Zero,
		CostPerUnit:         decimal.Zero,
		IsActive:            true,
	}, nil
}

// ReceiveStock increases the stock balance and returns the ledger movement
// recording the increase. CostPerUnit is recalculated as a moving weighted
// average of the existing balance and the received quantity.
func (i *InventoryItem) ReceiveStock(quantity, unitCost decimal.Decimal, refType ReferenceType, refID string) (*StockMovement, error) {
	if !i.IsActive {
		return nil, shared.NewDomainError("ITEM_INACTIVE", "Cannot receive stock into an inactive item")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Receive quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	before := i.CurrentStock
	after := before.Add(quantity)

	if before.IsZero() {
		i.CostPerUnit = unitCost
	} else {
		totalValue := before.Mul(i.CostPerUnit).Add(quantity.Mul(unitCost))
		i.CostPerUnit = totalValue.Div(after).Round(4)
	}

	movement, err := NewStockMovement(i.TenantID, i.ID, MovementIn, quantity, before, after, unitCost, refType, refID)
	if err != nil {
		return nil, err
	}

	i.CurrentStock = after
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return movement, nil
}

// ConsumeStock decreases the stock balance and returns the ledger movement.
// The deduction is valued at the current CostPerUnit.
func (i *InventoryItem) ConsumeStock(quantity decimal.Decimal, refType ReferenceType, refID string) (*StockMovement, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Consume quantity must be positive")
	}
	if i.CurrentStock.LessThan(quantity) {
		return nil, shared.ErrInsufficientStock
	}

	before := i.CurrentStock
	after := before.Sub(quantity)

	movement, err := NewStockMovement(i.TenantID, i.ID, MovementOut, quantity, before, after, i.CostPerUnit, refType, refID)
	if err != nil {
		return nil, err
	}

	i.CurrentStock = after
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return movement, nil
}

// AdjustStock sets the balance to an absolute counted quantity, recording the
// difference as a single movement. Reason is mandatory for the audit trail.
func (i *InventoryItem) AdjustStock(actual decimal.Decimal, reason string) (*StockMovement, error) {
	if actual.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Actual quantity cannot be negative")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Adjustment reason is required")
	}
	if actual.Equal(i.CurrentStock) {
		return nil, shared.NewDomainError("NO_CHANGE", "Actual quantity equals current stock")
	}

	before := i.CurrentStock
	movementType := MovementIn
	diff := actual.Sub(before)
	if diff.IsNegative() {
		movementType = MovementOut
		diff = diff.Neg()
	}

	movement, err := NewStockMovement(i.TenantID, i.ID, movementType, diff, before, actual, i.CostPerUnit, ReferenceAdjustment, i.ID.String())
	if err != nil {
		return nil, err
	}
	movement.Notes = reason

	i.CurrentStock = actual
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return movement, nil
}

// SetMinStock sets the low-stock alert threshold
func (i *InventoryItem) SetMinStock(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Minimum stock cannot be negative")
	}
	i.MinStock = quantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// Update changes the descriptive fields of the item
func (i *InventoryItem) Update(name string, category ItemCategory, unit string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Unknown item category")
	}
	if strings.TrimSpace(unit) == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}

	i.Name = name
	i.Category = category
	i.Unit = strings.TrimSpace(unit)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// Deactivate soft-deletes the item. Stock history is preserved.
func (i *InventoryItem) Deactivate() error {
	if !i.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Item is already inactive")
	}
	i.IsActive = false
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// Activate re-enables a deactivated item
func (i *InventoryItem) Activate() error {
	if i.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Item is already active")
	}
	i.IsActive = true
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// IsBelowMinimum returns true if the balance is under the alert threshold
func (i *InventoryItem) IsBelowMinimum() bool {
	return i.MinStock.GreaterThan(decimal.Zero) && i.CurrentStock.LessThan(i.MinStock)
}

// CanFulfill returns true if the balance covers the requested quantity
func (i *InventoryItem) CanFulfill(quantity decimal.Decimal) bool {
	return i.CurrentStock.GreaterThanOrEqual(quantity)
}

// StockValue returns the balance valued at CostPerUnit
func (i *InventoryItem) StockValue() decimal.Decimal {
	return i.CurrentStock.Mul(i.CostPerUnit)
}
