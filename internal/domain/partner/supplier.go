package partner

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sppg/backend/internal/domain/shared"
)

// SupplierStatus represents the status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "ACTIVE"
	SupplierStatusInactive SupplierStatus = "INACTIVE"
	SupplierStatusBlocked  SupplierStatus = "BLOCKED" // Blocked due to quality/payment issues
)

// SupplierCategory classifies what a supplier provides
type SupplierCategory string

const (
	SupplierCategoryFoodstuff SupplierCategory = "FOODSTUFF"
	SupplierCategoryPackaging SupplierCategory = "PACKAGING"
	SupplierCategoryEquipment SupplierCategory = "EQUIPMENT"
	SupplierCategoryService   SupplierCategory = "SERVICE"
)

// IsValid checks if the category is a known value
func (c SupplierCategory) IsValid() bool {
	switch c {
	case SupplierCategoryFoodstuff, SupplierCategoryPackaging, SupplierCategoryEquipment, SupplierCategoryService:
		return true
	}
	return false
}

// Supplier is the aggregate root for supplier operations. Ratings and the
// delivery counters feed procurement's supplier selection.
type Supplier struct {
	shared.TenantAggregateRoot
	Code        string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_supplier_tenant_code,priority:2"`
	Name        string           `gorm:"type:varchar(200);not null"`
	Category    SupplierCategory `gorm:"type:varchar(20);not null;default:'FOODSTUFF'"`
	Status      SupplierStatus   `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	ContactName string           `gorm:"type:varchar(100)"`
	Phone       string           `gorm:"type:varchar(50);index"`
	Email       string           `gorm:"type:varchar(200);index"`
	Address     string           `gorm:"type:text"`
	City        string           `gorm:"type:varchar(100)"`
	Province    string           `gorm:"type:varchar(100)"`
	TaxID       string           `gorm:"type:varchar(50)"`
	BankName    string           `gorm:"type:varchar(200)"`
	BankAccount string           `gorm:"type:varchar(100)"`
	CreditDays  int              `gorm:"not null;default:0"`

	// Rating aggregates, updated as ratings arrive
	RatingCount   int             `gorm:"not null;default:0"`
	RatingSum     int             `gorm:"not null;default:0"`
	OverallRating decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	// Delivery performance counters, updated inside acceptance transactions
	TotalOrders       int `gorm:"not null;default:0"`
	CompletedOrders   int `gorm:"not null;default:0"`
	RejectedOrders    int `gorm:"not null;default:0"`
	OnTimeDeliveries  int `gorm:"not null;default:0"`
	LateDeliveries    int `gorm:"not null;default:0"`

	Notes string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates an active supplier with required fields
func NewSupplier(tenantID uuid.UUID, code, name string, category SupplierCategory) (*Supplier, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Supplier code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Supplier code cannot exceed 50 characters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY",
			fmt.Sprintf("Unknown supplier category: %s", category))
	}

	return &Supplier{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                strings.TrimSpace(name),
		Category:            category,
		Status:              SupplierStatusActive,
		OverallRating:       decimal.Zero,
	}, nil
}

// Update changes the supplier's basic information
func (s *Supplier) Update(name, contactName, phone, email, address, city, province string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	s.Name = strings.TrimSpace(name)
	s.ContactName = contactName
	s.Phone = phone
	s.Email = email
	s.Address = address
	s.City = city
	s.Province = province
	s.Touch()
	s.IncrementVersion()
	return nil
}

// AddRating folds one 1-5 rating into the aggregates
func (s *Supplier) AddRating(score int) error {
	if score < 1 || score > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	s.RatingCount++
	s.RatingSum += score
	s.OverallRating = decimal.NewFromInt(int64(s.RatingSum)).
		Div(decimal.NewFromInt(int64(s.RatingCount))).Round(4)
	s.Touch()
	s.IncrementVersion()
	return nil
}

// RecordOrderPlaced increments the order counter
func (s *Supplier) RecordOrderPlaced() {
	s.TotalOrders++
	s.Touch()
	s.IncrementVersion()
}

// RecordOrderCompleted updates delivery counters after an accepted receipt
func (s *Supplier) RecordOrderCompleted(onTime bool) {
	s.CompletedOrders++
	if onTime {
		s.OnTimeDeliveries++
	} else {
		s.LateDeliveries++
	}
	s.Touch()
	s.IncrementVersion()
}

// RecordOrderRejected increments the rejection counter
func (s *Supplier) RecordOrderRejected() {
	s.RejectedOrders++
	s.Touch()
	s.IncrementVersion()
}

// OnTimeRate returns the on-time delivery ratio, zero when no completions
func (s *Supplier) OnTimeRate() decimal.Decimal {
	if s.CompletedOrders == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.OnTimeDeliveries)).
		Div(decimal.NewFromInt(int64(s.CompletedOrders))).Round(4)
}

// Block marks the supplier as blocked for new orders
func (s *Supplier) Block(reason string) error {
	if s.Status == SupplierStatusBlocked {
		return shared.NewDomainError("ALREADY_BLOCKED", "Supplier is already blocked")
	}
	s.Status = SupplierStatusBlocked
	if reason != "" {
		s.Notes = reason
	}
	s.Touch()
	s.IncrementVersion()
	return nil
}

// Activate returns the supplier to active status
func (s *Supplier) Activate() {
	s.Status = SupplierStatusActive
	s.Touch()
	s.IncrementVersion()
}

// Deactivate marks the supplier inactive
func (s *Supplier) Deactivate() {
	s.Status = SupplierStatusInactive
	s.Touch()
	s.IncrementVersion()
}

// CanReceiveOrders returns true if new orders may be placed with this supplier
func (s *Supplier) CanReceiveOrders() bool {
	return s.Status == SupplierStatusActive
}
