package monitoring

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sppg/backend/internal/domain/monitoring"
)

// ReportRequest creates or replaces a monitoring report
type ReportRequest struct {
	Title                string          `json:"title" binding:"required,max=200"`
	Period               string          `json:"period" binding:"required,oneof=DAILY WEEKLY MONTHLY"`
	PeriodStart          time.Time       `json:"period_start" binding:"required"`
	PeriodEnd            time.Time       `json:"period_end" binding:"required"`
	PlannedBeneficiaries int             `json:"planned_beneficiaries" binding:"min=0"`
	ActualBeneficiaries  int             `json:"actual_beneficiaries" binding:"min=0"`
	PortionsDistributed  int             `json:"portions_distributed" binding:"min=0"`
	BudgetAllocated      decimal.Decimal `json:"budget_allocated"`
	BudgetUsed           decimal.Decimal `json:"budget_used"`
	QualityScore         *int            `json:"quality_score" binding:"omitempty,min=1,max=5"`
	IncidentCount        int             `json:"incident_count" binding:"min=0"`
	Notes                string          `json:"notes"`
}

func (r ReportRequest) toInput() monitoring.ReportInput {
	return monitoring.ReportInput{
		Title:                r.Title,
		Period:               monitoring.ReportPeriod(r.Period),
		PeriodStart:          r.PeriodStart,
		PeriodEnd:            r.PeriodEnd,
		PlannedBeneficiaries: r.PlannedBeneficiaries,
		ActualBeneficiaries:  r.ActualBeneficiaries,
		PortionsDistributed:  r.PortionsDistributed,
		BudgetAllocated:      r.BudgetAllocated,
		BudgetUsed:           r.BudgetUsed,
		QualityScore:         r.QualityScore,
		IncidentCount:        r.IncidentCount,
		Notes:                r.Notes,
	}
}

// ListReportsFilter filters the report listing
type ListReportsFilter struct {
	Period   string `form:"period"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ReportResponse carries the stored counts plus the derived ratios
type ReportResponse struct {
	ID                   uuid.UUID       `json:"id"`
	Title                string          `json:"title"`
	Period               string          `json:"period"`
	PeriodStart          time.Time       `json:"period_start"`
	PeriodEnd            time.Time       `json:"period_end"`
	PlannedBeneficiaries int             `json:"planned_beneficiaries"`
	ActualBeneficiaries  int             `json:"actual_beneficiaries"`
	PortionsDistributed  int             `json:"portions_distributed"`
	BudgetAllocated      decimal.Decimal `json:"budget_allocated"`
	BudgetUsed           decimal.Decimal `json:"budget_used"`
	AttendanceRate       decimal.Decimal `json:"attendance_rate"`
	BudgetUtilization    decimal.Decimal `json:"budget_utilization"`
	QualityScore         *int            `json:"quality_score,omitempty"`
	IncidentCount        int             `json:"incident_count"`
	Notes                string          `json:"notes,omitempty"`
	SubmittedBy          uuid.UUID       `json:"submitted_by"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func toReportResponse(r *monitoring.Report) *ReportResponse {
	return &ReportResponse{
		ID:                   r.ID,
		Title:                r.Title,
		Period:               string(r.Period),
		PeriodStart:          r.PeriodStart,
		PeriodEnd:            r.PeriodEnd,
		PlannedBeneficiaries: r.PlannedBeneficiaries,
		ActualBeneficiaries:  r.ActualBeneficiaries,
		PortionsDistributed:  r.PortionsDistributed,
		BudgetAllocated:      r.BudgetAllocated,
		BudgetUsed:           r.BudgetUsed,
		AttendanceRate:       r.AttendanceRate(),
		BudgetUtilization:    r.BudgetUtilization(),
		QualityScore:         r.QualityScore,
		IncidentCount:        r.IncidentCount,
		Notes:                r.Notes,
		SubmittedBy:          r.SubmittedBy,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}
