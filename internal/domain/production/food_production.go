package production

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sppg/backend/internal/domain/shared"
)

// Status represents the lifecycle of a production batch
type Status string

const (
	StatusPlanned    Status = "PLANNED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// IsValid checks if the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks whether the transition is allowed
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPlanned:
		return target == StatusInProgress || target == StatusCancelled
	case StatusInProgress:
		return target == StatusCompleted || target == StatusCancelled
	}
	return false
}

// StockUsage records one inventory item consumed by a production batch.
// Quantities and costs are frozen at consumption time.
type StockUsage struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	ProductionID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	InventoryItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemCode        string          `gorm:"type:varchar(50);not null"`
	ItemName        string          `gorm:"type:varchar(200);not null"`
	Unit            string          `gorm:"type:varchar(20);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalCost       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockUsage) TableName() string {
	return "production_stock_usages"
}

// NewStockUsage creates a consumption line valued at the item's current cost
func NewStockUsage(productionID, inventoryItemID uuid.UUID, code, name, unit string, quantity, unitCost decimal.Decimal) (*StockUsage, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Usage quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	return &StockUsage{
		ID:              uuid.New(),
		ProductionID:    productionID,
		InventoryItemID: inventoryItemID,
		ItemCode:        code,
		ItemName:        name,
		Unit:            unit,
		Quantity:        quantity,
		UnitCost:        unitCost,
		TotalCost:       quantity.Mul(unitCost),
		CreatedAt:       time.Now(),
	}, nil
}

// FoodProduction is one cooking batch. Ingredient cost accumulates as stock
// usages are recorded; overhead costs are set on completion and the cost per
// meal is derived from the portion count.
type FoodProduction struct {
	shared.TenantAggregateRoot
	BatchNumber     string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_production_tenant_batch,priority:2"`
	MenuName        string     `gorm:"type:varchar(200);not null"`
	PlanID          *uuid.UUID `gorm:"type:uuid;index"`
	Status          Status     `gorm:"type:varchar(20);not null;default:'PLANNED'"`
	ProductionDate  time.Time  `gorm:"not null;index"`
	PlannedPortions int        `gorm:"not null"`
	ActualPortions  *int       `gorm:""`

	StockUsages []StockUsage `gorm:"foreignKey:ProductionID;references:ID"`

	IngredientCost decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LaborCost      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UtilityCost    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	OtherCosts     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalCost      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CostPerMeal    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	Notes       string `gorm:"type:text"`
	StartedAt   *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// TableName returns the table name for GORM
func (FoodProduction) TableName() string {
	return "food_productions"
}

// NewFoodProduction creates a planned batch
func NewFoodProduction(tenantID uuid.UUID, batchNumber, menuName string, productionDate time.Time, plannedPortions int) (*FoodProduction, error) {
	if strings.TrimSpace(batchNumber) == "" {
		return nil, shared.NewDomainError("INVALID_BATCH_NUMBER", "Batch number cannot be empty")
	}
	if strings.TrimSpace(menuName) == "" {
		return nil, shared.NewDomainError("INVALID_MENU_NAME", "Menu name cannot be empty")
	}
	if plannedPortions <= 0 {
		return nil, shared.NewDomainError("INVALID_PORTIONS", "Planned portions must be positive")
	}

	return &FoodProduction{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BatchNumber:         strings.ToUpper(strings.TrimSpace(batchNumber)),
		MenuName:            strings.TrimSpace(menuName),
		Status:              StatusPlanned,
		ProductionDate:      productionDate,
		PlannedPortions:     plannedPortions,
		StockUsages:         make([]StockUsage, 0),
		IngredientCost:      decimal.Zero,
		LaborCost:           decimal.Zero,
		UtilityCost:         decimal.Zero,
		OtherCosts:          decimal.Zero,
		TotalCost:           decimal.Zero,
		CostPerMeal:         decimal.Zero,
	}, nil
}

// Start moves the batch to IN_PROGRESS
func (f *FoodProduction) Start() error {
	if !f.Status.CanTransitionTo(StatusInProgress) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			fmt.Sprintf("Cannot start production in status %s", f.Status))
	}
	now := time.Now()
	f.Status = StatusInProgress
	f.StartedAt = &now
	f.Touch()
	f.IncrementVersion()
	return nil
}

// RecordStockUsage appends a consumption line and adds its cost to the
// ingredient total. Only in-progress batches consume stock.
func (f *FoodProduction) RecordStockUsage(inventoryItemID uuid.UUID, code, name, unit string, quantity, unitCost decimal.Decimal) (*StockUsage, error) {
	if f.Status != StatusInProgress {
		return nil, shared.NewDomainError("INVALID_STATUS", "Stock can only be consumed by an in-progress production")
	}
	usage, err := NewStockUsage(f.ID, inventoryItemID, code, name, unit, quantity, unitCost)
	if err != nil {
		return nil, err
	}
	f.StockUsages = append(f.StockUsages, *usage)
	f.IngredientCost = f.IngredientCost.Add(usage.TotalCost)
	f.recalculateCosts()
	f.Touch()
	f.IncrementVersion()
	return &f.StockUsages[len(f.StockUsages)-1], nil
}

// Complete finalizes the batch: records actual portions and overhead costs,
// then derives total cost and cost per meal. Cost per meal divides by actual
// portions, falling back to planned when actuals are missing.
func (f *FoodProduction) Complete(actualPortions int, laborCost, utilityCost, otherCosts decimal.Decimal) error {
	if !f.Status.CanTransitionTo(StatusCompleted) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			fmt.Sprintf("Cannot complete production in status %s", f.Status))
	}
	if actualPortions < 0 {
		return shared.NewDomainError("INVALID_PORTIONS", "Actual portions cannot be negative")
	}
	if laborCost.IsNegative() || utilityCost.IsNegative() || otherCosts.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Costs cannot be negative")
	}

	now := time.Now()
	f.Status = StatusCompleted
	if actualPortions > 0 {
		f.ActualPortions = &actualPortions
	}
	f.LaborCost = laborCost
	f.UtilityCost = utilityCost
	f.OtherCosts = otherCosts
	f.CompletedAt = &now
	f.recalculateCosts()
	f.Touch()
	f.IncrementVersion()
	return nil
}

// Cancel terminates a batch that has not completed. The caller must reverse
// any stock already consumed.
func (f *FoodProduction) Cancel() error {
	if !f.Status.CanTransitionTo(StatusCancelled) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			fmt.Sprintf("Cannot cancel production in status %s", f.Status))
	}
	now := time.Now()
	f.Status = StatusCancelled
	f.CancelledAt = &now
	f.Touch()
	f.IncrementVersion()
	return nil
}

// PortionsForCosting returns actual portions when recorded, planned otherwise
func (f *FoodProduction) PortionsForCosting() int {
	if f.ActualPortions != nil && *f.ActualPortions > 0 {
		return *f.ActualPortions
	}
	return f.PlannedPortions
}

func (f *FoodProduction) recalculateCosts() {
	f.TotalCost = f.IngredientCost.Add(f.LaborCost).Add(f.UtilityCost).Add(f.OtherCosts)
	portions := f.PortionsForCosting()
	if portions > 0 {
		f.CostPerMeal = f.TotalCost.Div(decimal.NewFromInt(int64(portions))).Round(4)
	} else {
		f.CostPerMeal = decimal.Zero
	}
}
