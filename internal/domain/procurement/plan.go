package procurement

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sppg/backend/internal/domain/shared"
)

// PlanStatus represents the approval lifecycle of a procurement plan
type PlanStatus string

const (
	PlanDraft     PlanStatus = "DRAFT"
	PlanSubmitted PlanStatus = "SUBMITTED"
	PlanApproved  PlanStatus = "APPROVED"
	PlanRejected  PlanStatus = "REJECTED"
	PlanCancelled PlanStatus = "CANCELLED"
)

// IsValid checks if the plan status is a known value
func (s PlanStatus) IsValid() bool {
	switch s {
	case PlanDraft, PlanSubmitted, PlanApproved, PlanRejected, PlanCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s PlanStatus) String() string {
	return string(s)
}

// CanTransitionTo checks whether the transition is allowed. A rejected plan
// may be revised and resubmitted.
func (s PlanStatus) CanTransitionTo(target PlanStatus) bool {
	switch s {
	case PlanDraft:
		return target == PlanSubmitted || target == PlanCancelled
	case PlanSubmitted:
		return target == PlanApproved || target == PlanRejected || target == PlanCancelled
	case PlanRejected:
		return target == PlanSubmitted || target == PlanCancelled
	case PlanApproved:
		return target == PlanCancelled
	}
	return false
}

// Plan is a budget envelope for a period of procurement. Orders created
// against an approved plan allocate from its budget; rejecting or cancelling
// an order releases the allocation.
type Plan struct {
	shared.TenantAggregateRoot
	Name            string          `gorm:"type:varchar(200);not null"`
	Description     string          `gorm:"type:text"`
	Status          PlanStatus      `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	PeriodStart     time.Time       `gorm:"not null"`
	PeriodEnd       time.Time       `gorm:"not null"`
	TotalBudget     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AllocatedBudget decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RejectionReason string          `gorm:"type:varchar(500)"`
	SubmittedAt     *time.Time
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	CancelledAt     *time.Time
}

// TableName returns the table name for GORM
func (Plan) TableName() string {
	return "procurement_plans"
}

// NewPlan creates a draft plan for a budgeting period
func NewPlan(tenantID uuid.UUID, name, description string, periodStart, periodEnd time.Time, totalBudget decimal.Decimal) (*Plan, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Plan name cannot be empty")
	}
	if !periodEnd.After(periodStart) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Plan period end must be after period start")
	}
	if totalBudget.IsNegative() {
		return nil, shared.NewDomainError("INVALID_BUDGET", "Total budget cannot be negative")
	}

	return &Plan{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		Description:         strings.TrimSpace(description),
		Status:              PlanDraft,
		PeriodStart:         periodStart,
		PeriodEnd:           periodEnd,
		TotalBudget:         totalBudget,
		AllocatedBudget:     decimal.Zero,
	}, nil
}

// Update changes name, description, period and budget on an editable plan.
// Draft and rejected plans are editable.
func (p *Plan) Update(name, description string, periodStart, periodEnd time.Time, totalBudget decimal.Decimal) error {
	if p.Status != PlanDraft && p.Status != PlanRejected {
		return shared.NewDomainError("PLAN_NOT_EDITABLE",
			fmt.Sprintf("Cannot edit plan in status %s", p.Status))
	}
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Plan name cannot be empty")
	}
	if !periodEnd.After(periodStart) {
		return shared.NewDomainError("INVALID_PERIOD", "Plan period end must be after period start")
	}
	if totalBudget.IsNegative() {
		return shared.NewDomainError("INVALID_BUDGET", "Total budget cannot be negative")
	}
	p.Name = strings.TrimSpace(name)
	p.Description = strings.TrimSpace(description)
	p.PeriodStart = periodStart
	p.PeriodEnd = periodEnd
	p.TotalBudget = totalBudget
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Submit moves the plan to SUBMITTED. The plan must be named and carry a
// positive budget. A rejected plan can be resubmitted after revision.
func (p *Plan) Submit() error {
	if !p.Status.CanTransitionTo(PlanSubmitted) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			fmt.Sprintf("Cannot submit plan in status %s", p.Status))
	}
	if p.TotalBudget.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_BUDGET", "Cannot submit a plan without a positive budget")
	}
	now := time.Now()
	p.Status = PlanSubmitted
	p.SubmittedAt = &now
	p.RejectionReason = ""
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Approve records the approver and moves the plan to APPROVED
func (p *Plan) Approve(approverID uuid.UUID) error {
	if !p.Status.CanTransitionTo(PlanApproved) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			fmt.Sprintf("Cannot approve plan in status %s", p.Status))
	}
	now := time.Now()
	p.Status = PlanApproved
	p.ApprovedBy = &approverID
	p.ApprovedAt = &now
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Reject sends the plan back with a mandatory reason of at least ten
// characters.
func (p *Plan) Reject(reason string) error {
	if !p.Status.CanTransitionTo(PlanRejected) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			fmt.Sprintf("Cannot reject plan in status %s", p.Status))
	}
	reason = strings.TrimSpace(reason)
	if len(reason) < minRejectionReasonLen {
		return shared.NewDomainError("INVALID_REASON",
			fmt.Sprintf("Rejection reason must be at least %d characters", minRejectionReasonLen))
	}
	p.Status = PlanRejected
	p.RejectionReason = reason
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Cancel terminates the plan. The caller must ensure no active procurement
// still draws on it.
func (p *Plan) Cancel() error {
	if !p.Status.CanTransitionTo(PlanCancelled) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			fmt.Sprintf("Cannot cancel plan in status %s", p.Status))
	}
	now := time.Now()
	p.Status = PlanCancelled
	p.CancelledAt = &now
	p.Touch()
	p.IncrementVersion()
	return nil
}

// AllocateBudget reserves part of the plan budget for an order
func (p *Plan) AllocateBudget(amount decimal.Decimal) error {
	if p.Status != PlanApproved {
		return shared.NewDomainError("PLAN_NOT_APPROVED", "Budget can only be allocated from an approved plan")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}
	newAllocated := p.AllocatedBudget.Add(amount)
	if newAllocated.GreaterThan(p.TotalBudget) {
		return shared.NewDomainError("BUDGET_EXCEEDED",
			fmt.Sprintf("Allocation exceeds remaining budget of %s", p.RemainingBudget().String()))
	}
	p.AllocatedBudget = newAllocated
	p.Touch()
	p.IncrementVersion()
	return nil
}

// ReleaseBudget returns an allocation to the plan, clamped at zero
func (p *Plan) ReleaseBudget(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Release amount must be positive")
	}
	p.AllocatedBudget = p.AllocatedBudget.Sub(amount)
	if p.AllocatedBudget.IsNegative() {
		p.AllocatedBudget = decimal.Zero
	}
	p.Touch()
	p.IncrementVersion()
	return nil
}

// RemainingBudget returns the unallocated budget
func (p *Plan) RemainingBudget() decimal.Decimal {
	return p.TotalBudget.Sub(p.AllocatedBudget)
}
