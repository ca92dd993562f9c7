package procurement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sppg/backend/internal/domain/shared"
)

// QCLineResult is the per-line verdict handed to a procurement during
// quality control.
type QCLineResult struct {
	Accepted         bool
	AcceptedQuantity decimal.Decimal
	RejectionReason  string
}

// QCResult is the overall outcome of an inspection
type QCResult string

const (
	QCPassed      QCResult = "PASSED"
	QCFailed      QCResult = "FAILED"
	QCConditional QCResult = "CONDITIONAL" // Passed with partial rejections
)

// IsValid checks if the result is a known value
func (r QCResult) IsValid() bool {
	switch r {
	case QCPassed, QCFailed, QCConditional:
		return true
	}
	return false
}

// QualityControl is the persisted record of one QC inspection on a received
// procurement. The per-line quantities live on the procurement items; this
// record keeps who inspected, when, and the overall verdict.
type QualityControl struct {
	shared.BaseEntity
	TenantID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProcurementID uuid.UUID `gorm:"type:uuid;not null;index"`
	InspectedBy   uuid.UUID `gorm:"type:uuid;not null"`
	InspectedAt   time.Time `gorm:"not null"`
	Result        QCResult  `gorm:"type:varchar(20);not null"`
	Approved      bool      `gorm:"not null;default:false"`
	Notes         string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (QualityControl) TableName() string {
	return "quality_controls"
}

// NewQualityControl creates an inspection record
func NewQualityControl(tenantID, procurementID, inspectedBy uuid.UUID, result QCResult, notes string) (*QualityControl, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if procurementID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROCUREMENT", "Procurement ID cannot be empty")
	}
	if inspectedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INSPECTOR", "Inspector ID cannot be empty")
	}
	if !result.IsValid() {
		return nil, shared.NewDomainError("INVALID_RESULT", "Unknown quality control result")
	}

	return &QualityControl{
		BaseEntity:    shared.NewBaseEntity(),
		TenantID:      tenantID,
		ProcurementID: procurementID,
		InspectedBy:   inspectedBy,
		InspectedAt:   time.Now(),
		Result:        result,
		Approved:      result != QCFailed,
		Notes:         strings.TrimSpace(notes),
	}, nil
}

// ResultForLines derives the overall result from per-line verdicts: all
// accepted is PASSED, none is FAILED, a mix is CONDITIONAL.
func ResultForLines(results map[uuid.UUID]QCLineResult) QCResult {
	accepted, rejected := 0, 0
	for _, r := range results {
		if r.Accepted {
			accepted++
		} else {
			rejected++
		}
	}
	switch {
	case rejected == 0:
		return QCPassed
	case accepted == 0:
		return QCFailed
	default:
		return QCConditional
	}
}
