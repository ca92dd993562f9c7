package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sppg/backend/internal/domain/partner"
)

// CreateSupplierRequest creates a supplier
type CreateSupplierRequest struct {
	Code        string `json:"code" binding:"required,max=50"`
	Name        string `json:"name" binding:"required,max=200"`
	Category    string `json:"category" binding:"required"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Province    string `json:"province"`
}

// UpdateSupplierRequest updates supplier master data
type UpdateSupplierRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Province    string `json:"province"`
}

// RateSupplierRequest records one rating
type RateSupplierRequest struct {
	Score         int        `json:"score" binding:"required,min=1,max=5"`
	Comment       string     `json:"comment"`
	ProcurementID *uuid.UUID `json:"procurement_id"`
}

// ListSuppliersFilter filters the supplier listing
type ListSuppliersFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Status   string `form:"status"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID              uuid.UUID       `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Status          string          `json:"status"`
	ContactName     string          `json:"contact_name,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Email           string          `json:"email,omitempty"`
	Address         string          `json:"address,omitempty"`
	City            string          `json:"city,omitempty"`
	Province        string          `json:"province,omitempty"`
	OverallRating   decimal.Decimal `json:"overall_rating"`
	RatingCount     int             `json:"rating_count"`
	TotalOrders     int             `json:"total_orders"`
	CompletedOrders int             `json:"completed_orders"`
	RejectedOrders  int             `json:"rejected_orders"`
	OnTimeRate      decimal.Decimal `json:"on_time_rate"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toSupplierResponse(s *partner.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:              s.ID,
		Code:            s.Code,
		Name:            s.Name,
		Category:        string(s.Category),
		Status:          string(s.Status),
		ContactName:     s.ContactName,
		Phone:           s.Phone,
		Email:           s.Email,
		Address:         s.Address,
		City:            s.City,
		Province:        s.Province,
		OverallRating:   s.OverallRating,
		RatingCount:     s.RatingCount,
		TotalOrders:     s.TotalOrders,
		CompletedOrders: s.CompletedOrders,
		RejectedOrders:  s.RejectedOrders,
		OnTimeRate:      s.OnTimeRate(),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
