package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sppg/backend/internal/domain/production"
)

// IngredientRequest is one stock consumption line for a new batch
type IngredientRequest struct {
	InventoryItemID uuid.UUID       `json:"inventory_item_id" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateProductionRequest creates a batch and consumes its ingredients
type CreateProductionRequest struct {
	BatchNumber     string              `json:"batch_number" binding:"required,max=50"`
	MenuName        string              `json:"menu_name" binding:"required,max=200"`
	ProductionDate  time.Time           `json:"production_date" binding:"required"`
	PlannedPortions int                 `json:"planned_portions" binding:"required,min=1"`
	PlanID          *uuid.UUID          `json:"plan_id"`
	Ingredients     []IngredientRequest `json:"ingredients" binding:"required,min=1,dive"`
	Notes           string              `json:"notes"`
}

// CompleteProductionRequest finalizes a batch with actuals and overheads
type CompleteProductionRequest struct {
	ActualPortions int             `json:"actual_portions"`
	LaborCost      decimal.Decimal `json:"labor_cost"`
	UtilityCost    decimal.Decimal `json:"utility_cost"`
	OtherCosts     decimal.Decimal `json:"other_costs"`
}

// ListProductionsFilter filters the batch listing
type ListProductionsFilter struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// UsageResponse is one consumed ingredient in API responses
type UsageResponse struct {
	InventoryItemID uuid.UUID       `json:"inventory_item_id"`
	ItemCode        string          `json:"item_code"`
	ItemName        string          `json:"item_name"`
	Unit            string          `json:"unit"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
}

// ProductionResponse represents a batch in API responses
type ProductionResponse struct {
	ID              uuid.UUID       `json:"id"`
	BatchNumber     string          `json:"batch_number"`
	MenuName        string          `json:"menu_name"`
	Status          string          `json:"status"`
	ProductionDate  time.Time       `json:"production_date"`
	PlannedPortions int             `json:"planned_portions"`
	ActualPortions  *int            `json:"actual_portions,omitempty"`
	PlanID          *uuid.UUID      `json:"plan_id,omitempty"`
	Usages          []UsageResponse `json:"usages"`
	IngredientCost  decimal.Decimal `json:"ingredient_cost"`
	LaborCost       decimal.Decimal `json:"labor_cost"`
	UtilityCost     decimal.Decimal `json:"utility_cost"`
	OtherCosts      decimal.Decimal `json:"other_costs"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	CostPerMeal     decimal.Decimal `json:"cost_per_meal"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toProductionResponse(p *production.FoodProduction) *ProductionResponse {
	usages := make([]UsageResponse, 0, len(p.StockUsages))
	for idx := range p.StockUsages {
		u := &p.StockUsages[idx]
		usages = append(usages, UsageResponse{
			InventoryItemID: u.InventoryItemID,
			ItemCode:        u.ItemCode,
			ItemName:        u.ItemName,
			Unit:            u.Unit,
			Quantity:        u.Quantity,
			UnitCost:        u.UnitCost,
			TotalCost:       u.TotalCost,
		})
	}
	return &ProductionResponse{
		ID:              p.ID,
		BatchNumber:     p.BatchNumber,
		MenuName:        p.MenuName,
		Status:          string(p.Status),
		ProductionDate:  p.ProductionDate,
		PlannedPortions: p.PlannedPortions,
		ActualPortions:  p.ActualPortions,
		PlanID:          p.PlanID,
		Usages:          usages,
		IngredientCost:  p.IngredientCost,
		LaborCost:       p.LaborCost,
		UtilityCost:     p.UtilityCost,
		OtherCosts:      p.OtherCosts,
		TotalCost:       p.TotalCost,
		CostPerMeal:     p.CostPerMeal,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
