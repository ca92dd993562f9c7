package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sppg/backend/internal/domain/procurement"
)

// OrderItemRequest is one line of a new order
type OrderItemRequest struct {
	InventoryItemID *uuid.UUID      `json:"inventory_item_id"`
	ItemCode        string          `json:"item_code" binding:"required,max=50"`
	ItemName        string          `json:"item_name" binding:"required,max=200"`
	Unit            string          `json:"unit" binding:"required,max=20"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice       decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateOrderRequest creates a procurement order
type CreateOrderRequest struct {
	OrderNumber string             `json:"order_number" binding:"required,max=50"`
	SupplierID  uuid.UUID          `json:"supplier_id" binding:"required"`
	PlanID      *uuid.UUID         `json:"plan_id"`
	Items       []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount    decimal.Decimal    `json:"discount"`
	Tax         decimal.Decimal    `json:"tax"`
	Shipping    decimal.Decimal    `json:"shipping"`
	PaymentDue       *time.Time    `json:"payment_due"`
	ExpectedDelivery *time.Time    `json:"expected_delivery"`
}

// ReceiptLineRequest is one line of a goods receipt
type ReceiptLineRequest struct {
	ItemID           uuid.UUID       `json:"item_id" binding:"required"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	BatchNumber      string          `json:"batch_number"`
	ExpiryDate       *time.Time      `json:"expiry_date"`
}

// RecordReceiptRequest records a goods receipt against an order
type RecordReceiptRequest struct {
	ReceiptNumber string               `json:"receipt_number" binding:"required,max=100"`
	Photos        string               `json:"photos"`
	TransportCost decimal.Decimal      `json:"transport_cost"`
	ReceivedAt    time.Time            `json:"received_at" binding:"required"`
	Lines         []ReceiptLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// QCLineRequest is one per-line verdict in a QC submission
type QCLineRequest struct {
	ItemID           uuid.UUID       `json:"item_id" binding:"required"`
	Accepted         bool            `json:"accepted"`
	AcceptedQuantity decimal.Decimal `json:"accepted_quantity"`
	RejectionReason  string          `json:"rejection_reason"`
}

// SubmitQCRequest records a quality-control inspection
type SubmitQCRequest struct {
	Lines []QCLineRequest `json:"lines" binding:"required,min=1,dive"`
	Notes string          `json:"notes"`
}

// RejectOrderRequest cancels an order with a reason
type RejectOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=10,max=500"`
}

// BulkReceiveLineRequest is one per-item update in a bulk receive
type BulkReceiveLineRequest struct {
	ItemID           uuid.UUID       `json:"item_id" binding:"required"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	Accepted         bool            `json:"accepted"`
	RejectionReason  string          `json:"rejection_reason"`
}

// BulkReceiveRequest updates many lines in one transaction
type BulkReceiveRequest struct {
	Lines []BulkReceiveLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// RecordPaymentRequest registers a payment against the order
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ListOrdersFilter filters the order listing
type ListOrdersFilter struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse is one order line in API responses
type OrderItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	InventoryItemID  *uuid.UUID      `json:"inventory_item_id,omitempty"`
	ItemCode         string          `json:"item_code"`
	ItemName         string          `json:"item_name"`
	Unit             string          `json:"unit"`
	OrderedQuantity  decimal.Decimal `json:"ordered_quantity"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	AcceptedQuantity decimal.Decimal `json:"accepted_quantity"`
	IsAccepted       bool            `json:"is_accepted"`
	RejectionReason  string          `json:"rejection_reason,omitempty"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	FinalPrice       decimal.Decimal `json:"final_price"`
	BatchNumber      string          `json:"batch_number,omitempty"`
	ExpiryDate       *time.Time      `json:"expiry_date,omitempty"`
}

// OrderResponse represents a procurement order in API responses
type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	OrderNumber    string              `json:"order_number"`
	PlanID         *uuid.UUID          `json:"plan_id,omitempty"`
	SupplierID     uuid.UUID           `json:"supplier_id"`
	SupplierName   string              `json:"supplier_name"`
	Status         string              `json:"status"`
	DeliveryStatus string              `json:"delivery_status"`
	Items          []OrderItemResponse `json:"items"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	Discount       decimal.Decimal     `json:"discount"`
	Tax            decimal.Decimal     `json:"tax"`
	Shipping       decimal.Decimal     `json:"shipping"`
	Total          decimal.Decimal     `json:"total"`
	PaidAmount     decimal.Decimal     `json:"paid_amount"`
	Outstanding    decimal.Decimal     `json:"outstanding"`
	PaymentStatus  string              `json:"payment_status"`
	AgingCategory  string              `json:"aging_category"`
	PaymentDue     *time.Time          `json:"payment_due,omitempty"`
	ReceiptNumber  string              `json:"receipt_number,omitempty"`
	TransportCost  decimal.Decimal     `json:"transport_cost"`
	ReceivedAt     *time.Time          `json:"received_at,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// BulkReceiveResponse reports how many lines were updated
type BulkReceiveResponse struct {
	UpdatedCount int `json:"updated_count"`
}

// PlanRequest creates or updates a procurement plan
type PlanRequest struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Description string          `json:"description"`
	PeriodStart time.Time       `json:"period_start" binding:"required"`
	PeriodEnd   time.Time       `json:"period_end" binding:"required"`
	TotalBudget decimal.Decimal `json:"total_budget"`
}

// RejectPlanRequest sends a plan back with a reason
type RejectPlanRequest struct {
	Reason string `json:"reason" binding:"required,min=10,max=500"`
}

// PlanResponse represents a plan in API responses
type PlanResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Status          string          `json:"status"`
	PeriodStart     time.Time       `json:"period_start"`
	PeriodEnd       time.Time       `json:"period_end"`
	TotalBudget     decimal.Decimal `json:"total_budget"`
	AllocatedBudget decimal.Decimal `json:"allocated_budget"`
	RemainingBudget decimal.Decimal `json:"remaining_budget"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toOrderResponse(p *procurement.Procurement) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(p.Items))
	for idx := range p.Items {
		it := &p.Items[idx]
		items = append(items, OrderItemResponse{
			ID:               it.ID,
			InventoryItemID:  it.InventoryItemID,
			ItemCode:         it.ItemCode,
			ItemName:         it.ItemName,
			Unit:             it.Unit,
			OrderedQuantity:  it.OrderedQuantity,
			ReceivedQuantity: it.ReceivedQuantity,
			AcceptedQuantity: it.AcceptedQuantity,
			IsAccepted:       it.IsAccepted,
			RejectionReason:  it.RejectionReason,
			UnitPrice:        it.UnitPrice,
			FinalPrice:       it.FinalPrice,
			BatchNumber:      it.BatchNumber,
			ExpiryDate:       it.ExpiryDate,
		})
	}
	return &OrderResponse{
		ID:             p.ID,
		OrderNumber:    p.OrderNumber,
		PlanID:         p.PlanID,
		SupplierID:     p.SupplierID,
		SupplierName:   p.SupplierName,
		Status:         string(p.Status),
		DeliveryStatus: string(p.DeliveryStatus),
		Items:          items,
		Subtotal:       p.SubtotalAmount,
		Discount:       p.DiscountAmount,
		Tax:            p.TaxAmount,
		Shipping:       p.ShippingCost,
		Total:          p.TotalAmount,
		PaidAmount:     p.PaidAmount,
		Outstanding:    p.OutstandingAmount(),
		PaymentStatus:  string(p.PaymentStatus()),
		AgingCategory:  string(p.AgingCategory()),
		PaymentDue:     p.PaymentDue,
		ReceiptNumber:  p.ReceiptNumber,
		TransportCost:  p.TransportCost,
		ReceivedAt:     p.ReceivedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toPlanResponse(p *procurement.Plan) *PlanResponse {
	return &PlanResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Status:          string(p.Status),
		PeriodStart:     p.PeriodStart,
		PeriodEnd:       p.PeriodEnd,
		TotalBudget:     p.TotalBudget,
		AllocatedBudget: p.AllocatedBudget,
		RemainingBudget: p.RemainingBudget(),
		RejectionReason: p.RejectionReason,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
