package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sppg/backend/internal/domain/inventory"
)

// CreateItemRequest creates a new inventory item
type CreateItemRequest struct {
	Code     string          `json:"code" binding:"required,max=50"`
	Name     string          `json:"name" binding:"required,max=200"`
	Category string          `json:"category" binding:"required"`
	Unit     string          `json:"unit" binding:"required,max=20"`
	MinStock decimal.Decimal `json:"min_stock"`
}

// UpdateItemRequest updates item master data
type UpdateItemRequest struct {
	Name     string          `json:"name" binding:"required,max=200"`
	Category string          `json:"category" binding:"required"`
	Unit     string          `json:"unit" binding:"required,max=20"`
	MinStock decimal.Decimal `json:"min_stock"`
}

// AdjustStockRequest corrects the stock balance after a physical count
type AdjustStockRequest struct {
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
	Reason         string          `json:"reason" binding:"required"`
}

// ListItemsFilter filters the item listing
type ListItemsFilter struct {
	Search       string `form:"search"`
	Category     string `form:"category"`
	BelowMinimum *bool  `form:"below_minimum"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string `form:"order_by"`
	OrderDir     string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ItemResponse represents an inventory item in API responses
type ItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Unit           string          `json:"unit"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	MinStock       decimal.Decimal `json:"min_stock"`
	CostPerUnit    decimal.Decimal `json:"cost_per_unit"`
	StockValue     decimal.Decimal `json:"stock_value"`
	IsBelowMinimum bool            `json:"is_below_minimum"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// MovementResponse represents one ledger row in API responses
type MovementResponse struct {
	ID            uuid.UUID       `json:"id"`
	MovementType  string          `json:"movement_type"`
	Quantity      decimal.Decimal `json:"quantity"`
	StockBefore   decimal.Decimal `json:"stock_before"`
	StockAfter    decimal.Decimal `json:"stock_after"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   string          `json:"reference_id"`
	Notes         string          `json:"notes,omitempty"`
	MovementDate  time.Time       `json:"movement_date"`
}

func toItemResponse(item *inventory.InventoryItem) *ItemResponse {
	return &ItemResponse{
		ID:             item.ID,
		Code:           item.Code,
		Name:           item.Name,
		Category:       string(item.Category),
		Unit:           item.Unit,
		CurrentStock:   item.CurrentStock,
		MinStock:       item.MinStock,
		CostPerUnit:    item.CostPerUnit,
		StockValue:     item.StockValue(),
		IsBelowMinimum: item.IsBelowMinimum(),
		IsActive:       item.IsActive,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

func toMovementResponse(m *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		MovementType:  string(m.MovementType),
		Quantity:      m.Quantity,
		StockBefore:   m.StockBefore,
		StockAfter:    m.StockAfter,
		UnitCost:      m.UnitCost,
		ReferenceType: string(m.ReferenceType),
		ReferenceID:   m.ReferenceID,
		Notes:         m.Notes,
		MovementDate:  m.MovementDate,
	}
}
