package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/shared"
)

// SupplierRating is one rating event left by a user after a procurement
// completes. The supplier's OverallRating aggregates these.
type SupplierRating struct {
	shared.BaseEntity
	TenantID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	SupplierID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProcurementID *uuid.UUID `gorm:"type:uuid;index"`
	RatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	Score         int        `gorm:"not null;check:score >= 1 AND score <= 5"`
	Comment       string     `gorm:"type:text"`
	RatedAt       time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SupplierRating) TableName() string {
	return "supplier_ratings"
}

// NewSupplierRating creates a rating event
func NewSupplierRating(tenantID, supplierID, ratedBy uuid.UUID, procurementID *uuid.UUID, score int, comment string) (*SupplierRating, error) {
	if score < 1 || score > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if ratedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RATER", "Rater ID cannot be empty")
	}
	return &SupplierRating{
		BaseEntity:    shared.NewBaseEntity(),
		TenantID:      tenantID,
		SupplierID:    supplierID,
		ProcurementID: procurementID,
		RatedBy:       ratedBy,
		Score:         score,
		Comment:       strings.TrimSpace(comment),
		RatedAt:       time.Now(),
	}, nil
}
