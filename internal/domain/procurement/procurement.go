package procurement

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sppg/backend/internal/domain/shared"
)

// minRejectionReasonLen is the minimum length for rejection reasons
const minRejectionReasonLen = 10

// Status represents the approval lifecycle of a procurement order
type Status string

const (
	StatusDraft           Status = "DRAFT"
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusApproved        Status = "APPROVED"
	StatusOrdered         Status = "ORDERED"
	StatusCompleted       Status = "COMPLETED"
	StatusCancelled       Status = "CANCELLED"
)

// IsValid checks if the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusApproved, StatusOrdered,
		StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true for end states
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo checks whether the transition is allowed
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusDraft:
		return target == StatusPendingApproval || target == StatusCancelled
	case StatusPendingApproval:
		return target == StatusApproved || target == StatusCancelled
	case StatusApproved:
		return target == StatusOrdered || target == StatusCancelled
	case StatusOrdered:
		return target == StatusCompleted || target == StatusCancelled
	}
	return false
}

// DeliveryStatus tracks the physical receiving lifecycle
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "PENDING"
	DeliveryPartial   DeliveryStatus = "PARTIAL"
	DeliveryDelivered DeliveryStatus = "DELIVERED"
	DeliveryCompleted DeliveryStatus = "COMPLETED"
	DeliveryCancelled DeliveryStatus = "CANCELLED"
)

// IsValid checks if the delivery status is a known value
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryPending, DeliveryPartial, DeliveryDelivered, DeliveryCompleted, DeliveryCancelled:
		return true
	}
	return false
}

// CanRecordReceipt returns true if a goods receipt may be recorded
func (s DeliveryStatus) CanRecordReceipt() bool {
	return s == DeliveryPending || s == DeliveryPartial
}

// ProcurementItem is a line on a procurement order. Pricing fields are
// snapshots taken from the inventory item at order time, so historical
// orders are immune to later price changes.
type ProcurementItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	ProcurementID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	InventoryItemID *uuid.UUID      `gorm:"type:uuid;index"`
	ItemCode        string          `gorm:"type:varchar(50);not null"`
	ItemName        string          `gorm:"type:varchar(200);not null"`
	Unit            string          `gorm:"type:varchar(20);not null"`
	OrderedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AcceptedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsAccepted      bool            `gorm:"not null;default:false"`
	RejectionReason string          `gorm:"type:varchar(500)"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	FinalPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BatchNumber     string          `gorm:"type:varchar(100)"`
	ExpiryDate      *time.Time
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProcurementItem) TableName() string {
	return "procurement_items"
}

// NewProcurementItem creates a line with a price snapshot
func NewProcurementItem(procurementID uuid.UUID, inventoryItemID *uuid.UUID, code, name, unit string, quantity, unitPrice decimal.Decimal) (*ProcurementItem, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_CODE", "Item code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Ordered quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &ProcurementItem{
		ID:               uuid.New(),
		ProcurementID:    procurementID,
		InventoryItemID:  inventoryItemID,
		ItemCode:         strings.ToUpper(strings.TrimSpace(code)),
		ItemName:         strings.TrimSpace(name),
		Unit:             strings.TrimSpace(unit),
		OrderedQuantity:  quantity,
		ReceivedQuantity: decimal.Zero,
		AcceptedQuantity: decimal.Zero,
		UnitPrice:        unitPrice,
		FinalPrice:       quantity.Mul(unitPrice),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// RecordReceived sets the received quantity plus batch/expiry metadata
func (i *ProcurementItem) RecordReceived(quantity decimal.Decimal, batchNumber string, expiryDate *time.Time) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Received quantity cannot be negative")
	}
	if quantity.GreaterThan(i.OrderedQuantity) {
		return shared.NewDomainError("QUANTITY_EXCEEDED",
			fmt.Sprintf("Cannot receive %s, only %s ordered", quantity.String(), i.OrderedQuantity.String()))
	}
	i.ReceivedQuantity = quantity
	i.BatchNumber = batchNumber
	i.ExpiryDate = expiryDate
	i.UpdatedAt = time.Now()
	return nil
}

// ApplyQCResult records the quality-control verdict on this line. A rejected
// line must carry a reason; an accepted quantity cannot exceed what was
// received.
func (i *ProcurementItem) ApplyQCResult(accepted bool, acceptedQuantity decimal.Decimal, rejectionReason string) error {
	if !accepted && strings.TrimSpace(rejectionReason) == "" {
		return shared.NewDomainError("REJECTION_REASON_REQUIRED", "Rejected items require a rejection reason")
	}
	if acceptedQuantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Accepted quantity cannot be negative")
	}
	if acceptedQuantity.GreaterThan(i.ReceivedQuantity) {
		return shared.NewDomainError("QUANTITY_EXCEEDED", "Accepted quantity cannot exceed received quantity")
	}

	i.IsAccepted = accepted
	i.RejectionReason = strings.TrimSpace(rejectionReason)
	if accepted {
		i.AcceptedQuantity = acceptedQuantity
	} else {
		i.AcceptedQuantity = decimal.Zero
	}
	i.UpdatedAt = time.Now()
	return nil
}

// ClearReceipt resets receiving state on the line
func (i *ProcurementItem) ClearReceipt() {
	i.ReceivedQuantity = decimal.Zero
	i.AcceptedQuantity = decimal.Zero
	i.IsAccepted = false
	i.RejectionReason = ""
	i.BatchNumber = ""
	i.ExpiryDate = nil
	i.UpdatedAt = time.Now()
}

// IsFullyReceived returns true if the ordered quantity was received in full
func (i *ProcurementItem) IsFullyReceived() bool {
	return i.ReceivedQuantity.GreaterThanOrEqual(i.OrderedQuantity)
}

// ReceiptLine carries one line of an incoming goods receipt
type ReceiptLine struct {
	ItemID           uuid.UUID
	ReceivedQuantity decimal.Decimal
	BatchNumber      string
	ExpiryDate       *time.Time
}

// Procurement is a merged purchase-order/goods-receipt aggregate. Status
// tracks approval, DeliveryStatus tracks physical receiving, and monetary
// totals are recomputed whenever the lines change.
type Procurement struct {
	shared.TenantAggregateRoot
	OrderNumber    string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_procurement_tenant_number,priority:2"`
	PlanID         *uuid.UUID `gorm:"type:uuid;index"`
	SupplierID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	SupplierName   string     `gorm:"type:varchar(200);not null"`
	Status         Status     `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	DeliveryStatus DeliveryStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`

	Items []ProcurementItem `gorm:"foreignKey:ProcurementID;references:ID"`

	SubtotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingCost   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentDue     *time.Time
	ExpectedDelivery *time.Time

	ReceiptNumber   string          `gorm:"type:varchar(100)"`
	ReceiptPhotos   string          `gorm:"type:text"`
	TransportCost   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReceivedAt      *time.Time
	RejectionReason string `gorm:"type:varchar(500)"`

	ApprovedBy  *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt  *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// TableName returns the table name for GORM
func (Procurement) TableName() string {
	return "procurements"
}

// NewProcurement creates a draft order for a supplier
func NewProcurement(tenantID uuid.UUID, orderNumber string, supplierID uuid.UUID, supplierName string) (*Procurement, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if strings.TrimSpace(supplierName) == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}

	return &Procurement{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         strings.TrimSpace(orderNumber),
		SupplierID:          supplierID,
		SupplierName:        strings.TrimSpace(supplierName),
		Status:              StatusDraft,
		DeliveryStatus:      DeliveryPending,
		Items:               make([]ProcurementItem, 0),
		SubtotalAmount:      decimal.Zero,
		DiscountAmount:      decimal.Zero,
		TaxAmount:           decimal.Zero,
		ShippingCost:        decimal.Zero,
		TotalAmount:         decimal.Zero,
		PaidAmount:          decimal.Zero,
		TransportCost:       decimal.Zero,
	}, nil
}

// LinkPlan attaches the order to a procurement plan budget envelope
func (p *Procurement) LinkPlan(planID uuid.UUID) error {
	if planID == uuid.Nil {
		return shared.NewDomainError("INVALID_PLAN", "Plan ID cannot be empty")
	}
	p.PlanID = &planID
	p.Touch()
	p.IncrementVersion()
	return nil
}

// AddItem adds a line and recomputes the totals. Only draft orders can be
// edited.
func (p *Procurement) AddItem(inventoryItemID *uuid.UUID, code, name, unit string, quantity, unitPrice decimal.Decimal) (*ProcurementItem, error) {
	if p.Status != StatusDraft {
		return nil, shared.NewDomainError("ORDER_NOT_EDITABLE", "Items can only be changed on draft orders")
	}
	item, err := NewProcurementItem(p.ID, inventoryItemID, code, name, unit, quantity, unitPrice)
	if err != nil {
		return nil, err
	}
	p.Items = append(p.Items, *item)
	p.recalculateTotals()
	p.Touch()
	p.IncrementVersion()
	return &p.Items[len(p.Items)-1], nil
}

// RemoveItem removes a line and recomputes the totals
func (p *Procurement) RemoveItem(itemID uuid.UUID) error {
	if p.Status != StatusDraft {
		return shared.NewDomainError("ORDER_NOT_EDITABLE", "Items can only be changed on draft orders")
	}
	for idx := range p.Items {
		if p.Items[idx].ID == itemID {
			p.Items = append(p.Items[:idx], p.Items[idx+1:]...)
			p.recalculateTotals()
			p.Touch()
			p.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// SetCharges sets order-level discount, tax and shipping, then recomputes
func (p *Procurement) SetCharges(discount, tax, shipping decimal.Decimal) error {
	if p.Status != StatusDraft {
		return shared.NewDomainError("ORDER_NOT_EDITABLE", "Charges can only be changed on draft orders")
	}
	if discount.IsNegative() || tax.IsNegative() || shipping.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Charges cannot be negative")
	}
	if discount.GreaterThan(p.SubtotalAmount) {
		return shared.NewDomainError("INVALID_AMOUNT", "Discount cannot exceed subtotal")
	}
	p.DiscountAmount = discount
	p.TaxAmount = tax
	p.ShippingCost = shipping
	p.recalculateTotals()
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetPaymentDue sets the payment due date
func (p *Procurement) SetPaymentDue(due *time.Time) {
	p.PaymentDue = due
	p.Touch()
	p.IncrementVersion()
}

// SetExpectedDelivery sets the promised delivery date used for on-time
// supplier metrics
func (p *Procurement) SetExpectedDelivery(date *time.Time) {
	p.ExpectedDelivery = date
	p.Touch()
	p.IncrementVersion()
}

// DeliveredOnTime reports whether the receipt arrived by the expected date.
// Orders without an expected date count as on time.
func (p *Procurement) DeliveredOnTime() bool {
	if p.ExpectedDelivery == nil || p.ReceivedAt == nil {
		return true
	}
	return !p.ReceivedAt.After(*p.ExpectedDelivery)
}

// Submit moves a draft with at least one line to pending approval
func (p *Procurement) Submit() error {
	if !p.Status.CanTransitionTo(StatusPendingApproval) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			fmt.Sprintf("Cannot submit order in status %s", p.Status))
	}
	if len(p.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot submit an order without items")
	}
	p.Status = StatusPendingApproval
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Approve records the approver and moves the order to APPROVED
func (p *Procurement) Approve(approverID uuid.UUID) error {
	if !p.Status.CanTransitionTo(StatusApproved) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			fmt.Sprintf("Cannot approve order in status %s", p.Status))
	}
	now := time.Now()
	p.Status = StatusApproved
	p.ApprovedBy = &approverID
	p.ApprovedAt = &now
	p.Touch()
	p.IncrementVersion()
	return nil
}

// MarkOrdered marks the order as sent to the supplier
func (p *Procurement) MarkOrdered() error {
	if !p.Status.CanTransitionTo(StatusOrdered) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			fmt.Sprintf("Cannot mark order in status %s as ordered", p.Status))
	}
	p.Status = StatusOrdered
	p.Touch()
	p.IncrementVersion()
	return nil
}

// RecordReceipt stores the goods receipt: logistics metadata plus per-line
// received quantities. DeliveryStatus becomes DELIVERED when every line is
// fully received, PARTIAL otherwise.
func (p *Procurement) RecordReceipt(receiptNumber, photos string, transportCost decimal.Decimal, receivedAt time.Time, lines []ReceiptLine) error {
	if p.Status != StatusOrdered && p.Status != StatusApproved {
		return shared.NewDomainError("INVALID_STATUS", "Receipts can only be recorded for approved or ordered procurements")
	}
	if !p.DeliveryStatus.CanRecordReceipt() {
		return shared.NewDomainError("INVALID_DELIVERY_STATUS",
			fmt.Sprintf("Cannot record a receipt while delivery status is %s", p.DeliveryStatus))
	}
	if strings.TrimSpace(receiptNumber) == "" {
		return shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	if transportCost.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Transport cost cannot be negative")
	}
	if len(lines) == 0 {
		return shared.NewDomainError("EMPTY_RECEIPT", "A receipt must contain at least one line")
	}

	for _, line := range lines {
		item := p.findItem(line.ItemID)
		if item == nil {
			return shared.NewDomainError("ITEM_NOT_FOUND",
				fmt.Sprintf("Order item %s not found", line.ItemID))
		}
		if err := item.RecordReceived(line.ReceivedQuantity, line.BatchNumber, line.ExpiryDate); err != nil {
			return err
		}
	}

	p.ReceiptNumber = strings.TrimSpace(receiptNumber)
	p.ReceiptPhotos = photos
	p.TransportCost = transportCost
	p.ReceivedAt = &receivedAt

	if p.allItemsFullyReceived() {
		p.DeliveryStatus = DeliveryDelivered
	} else {
		p.DeliveryStatus = DeliveryPartial
	}
	p.Touch()
	p.IncrementVersion()
	return nil
}

// ClearReceipt reverts the receiving state back to PENDING and clears the
// receipt metadata and received quantities. The caller must ensure no stock
// movements were posted for this procurement first.
func (p *Procurement) ClearReceipt() error {
	if p.DeliveryStatus != DeliveryDelivered && p.DeliveryStatus != DeliveryPartial {
		return shared.NewDomainError("INVALID_DELIVERY_STATUS", "No receipt to clear")
	}
	for idx := range p.Items {
		p.Items[idx].ClearReceipt()
	}
	p.ReceiptNumber = ""
	p.ReceiptPhotos = ""
	p.TransportCost = decimal.Zero
	p.ReceivedAt = nil
	p.DeliveryStatus = DeliveryPending
	p.Touch()
	p.IncrementVersion()
	return nil
}

// ApplyQCResults writes per-line acceptance verdicts onto the order lines
func (p *Procurement) ApplyQCResults(results map[uuid.UUID]QCLineResult) error {
	if p.DeliveryStatus != DeliveryDelivered && p.DeliveryStatus != DeliveryPartial {
		return shared.NewDomainError("INVALID_DELIVERY_STATUS", "Quality control requires a recorded receipt")
	}
	for itemID, result := range results {
		item := p.findItem(itemID)
		if item == nil {
			return shared.NewDomainError("ITEM_NOT_FOUND",
				fmt.Sprintf("Order item %s not found", itemID))
		}
		if err := item.ApplyQCResult(result.Accepted, result.AcceptedQuantity, result.RejectionReason); err != nil {
			return err
		}
	}
	p.Touch()
	p.IncrementVersion()
	return nil
}

// CompleteDelivery finalizes the order after stock has been posted
func (p *Procurement) CompleteDelivery() error {
	if p.DeliveryStatus != DeliveryDelivered && p.DeliveryStatus != DeliveryPartial {
		return shared.NewDomainError("INVALID_DELIVERY_STATUS", "Cannot complete delivery before a receipt is recorded")
	}
	now := time.Now()
	p.DeliveryStatus = DeliveryCompleted
	p.Status = StatusCompleted
	p.CompletedAt = &now
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Reject cancels the order with a mandatory reason. No inventory mutation
// happens on rejection.
func (p *Procurement) Reject(reason string) error {
	reason = strings.TrimSpace(reason)
	if len(reason) < minRejectionReasonLen {
		return shared.NewDomainError("INVALID_REASON",
			fmt.Sprintf("Rejection reason must be at least %d characters", minRejectionReasonLen))
	}
	if p.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATUS", "Order is already in a terminal state")
	}
	now := time.Now()
	p.Status = StatusCancelled
	p.DeliveryStatus = DeliveryCancelled
	p.RejectionReason = reason
	p.CancelledAt = &now
	p.Touch()
	p.IncrementVersion()
	return nil
}

// RecordPayment adds to the paid amount, capped at the order total
func (p *Procurement) RecordPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	newPaid := p.PaidAmount.Add(amount)
	if newPaid.GreaterThan(p.TotalAmount) {
		return shared.NewDomainError("PAYMENT_EXCEEDS_TOTAL", "Payment would exceed the order total")
	}
	p.PaidAmount = newPaid
	p.Touch()
	p.IncrementVersion()
	return nil
}

// PaymentStatus derives the current payment status
func (p *Procurement) PaymentStatus() PaymentStatus {
	return CalculatePaymentStatus(p.TotalAmount, p.PaidAmount, p.PaymentDue)
}

// AgingCategory derives the current aging bucket. Fully paid orders are
// always CURRENT.
func (p *Procurement) AgingCategory() AgingCategory {
	if p.PaymentStatus() == PaymentPaid {
		return AgingCurrent
	}
	return CalculateAgingCategory(p.PaymentDue)
}

// OutstandingAmount returns the unpaid remainder
func (p *Procurement) OutstandingAmount() decimal.Decimal {
	return p.TotalAmount.Sub(p.PaidAmount)
}

// AcceptedLines returns lines accepted by QC with a positive quantity
func (p *Procurement) AcceptedLines() []ProcurementItem {
	accepted := make([]ProcurementItem, 0, len(p.Items))
	for _, item := range p.Items {
		if item.IsAccepted && item.AcceptedQuantity.GreaterThan(decimal.Zero) {
			accepted = append(accepted, item)
		}
	}
	return accepted
}

// IsActive returns true while the order blocks plan cancellation/deletion
func (p *Procurement) IsActive() bool {
	return !p.Status.IsTerminal() && p.Status != StatusDraft
}

// Item returns the order line with the given ID, nil when absent
func (p *Procurement) Item(itemID uuid.UUID) *ProcurementItem {
	return p.findItem(itemID)
}

// RefreshDeliveryStatus rederives the delivery status from line received
// quantities. Used by the bulk receiving path, which edits lines directly.
func (p *Procurement) RefreshDeliveryStatus() {
	if p.DeliveryStatus == DeliveryCompleted || p.DeliveryStatus == DeliveryCancelled {
		return
	}
	anyReceived := false
	for idx := range p.Items {
		if p.Items[idx].ReceivedQuantity.GreaterThan(decimal.Zero) {
			anyReceived = true
			break
		}
	}
	switch {
	case !anyReceived:
		p.DeliveryStatus = DeliveryPending
	case p.allItemsFullyReceived():
		p.DeliveryStatus = DeliveryDelivered
	default:
		p.DeliveryStatus = DeliveryPartial
	}
}

func (p *Procurement) findItem(itemID uuid.UUID) *ProcurementItem {
	for idx := range p.Items {
		if p.Items[idx].ID == itemID {
			return &p.Items[idx]
		}
	}
	return nil
}

func (p *Procurement) allItemsFullyReceived() bool {
	for idx := range p.Items {
		if !p.Items[idx].IsFullyReceived() {
			return false
		}
	}
	return len(p.Items) > 0
}

// recalculateTotals keeps the invariant: total = subtotal - discount + tax + shipping
func (p *Procurement) recalculateTotals() {
	subtotal := decimal.Zero
	for idx := range p.Items {
		subtotal = subtotal.Add(p.Items[idx].FinalPrice)
	}
	p.SubtotalAmount = subtotal
	p.TotalAmount = subtotal.Sub(p.DiscountAmount).Add(p.TaxAmount).Add(p.ShippingCost)
}
