package monitoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sppg/backend/internal/domain/shared"
)

// ReportPeriod classifies the reporting window
type ReportPeriod string

const (
	PeriodDaily   ReportPeriod = "DAILY"
	PeriodWeekly  ReportPeriod = "WEEKLY"
	PeriodMonthly ReportPeriod = "MONTHLY"
)

// IsValid checks if the period is a known value
func (p ReportPeriod) IsValid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

// Report is a period snapshot of distribution KPIs. Only raw counts are
// persisted; ratios are derived at read time so they never go stale.
type Report struct {
	shared.TenantAggregateRoot
	Title                string       `gorm:"type:varchar(200);not null"`
	Period               ReportPeriod `gorm:"type:varchar(20);not null"`
	PeriodStart          time.Time    `gorm:"not null;index"`
	PeriodEnd            time.Time    `gorm:"not null"`
	PlannedBeneficiaries int          `gorm:"not null;default:0"`
	ActualBeneficiaries  int          `gorm:"not null;default:0"`
	PortionsDistributed  int          `gorm:"not null;default:0"`
	BudgetAllocated      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	BudgetUsed           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	QualityScore         *int            `gorm:""`
	IncidentCount        int             `gorm:"not null;default:0"`
	Notes                string          `gorm:"type:text"`
	SubmittedBy          uuid.UUID       `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (Report) TableName() string {
	return "monitoring_reports"
}

// ReportInput carries the raw counts for creating or updating a report
type ReportInput struct {
	Title                string
	Period               ReportPeriod
	PeriodStart          time.Time
	PeriodEnd            time.Time
	PlannedBeneficiaries int
	ActualBeneficiaries  int
	PortionsDistributed  int
	BudgetAllocated      decimal.Decimal
	BudgetUsed           decimal.Decimal
	QualityScore         *int
	IncidentCount        int
	Notes                string
}

func validateReportInput(in ReportInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Report title cannot be empty")
	}
	if !in.Period.IsValid() {
		return shared.NewDomainError("INVALID_PERIOD",
			fmt.Sprintf("Unknown report period: %s", in.Period))
	}
	if !in.PeriodEnd.After(in.PeriodStart) {
		return shared.NewDomainError("INVALID_PERIOD", "Period end must be after period start")
	}
	if in.PlannedBeneficiaries < 0 || in.ActualBeneficiaries < 0 || in.PortionsDistributed < 0 || in.IncidentCount < 0 {
		return shared.NewDomainError("INVALID_COUNT", "Counts cannot be negative")
	}
	if in.BudgetAllocated.IsNegative() || in.BudgetUsed.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Budget amounts cannot be negative")
	}
	if in.QualityScore != nil && (*in.QualityScore < 1 || *in.QualityScore > 5) {
		return shared.NewDomainError("INVALID_SCORE", "Quality score must be between 1 and 5")
	}
	return nil
}

// NewReport creates a monitoring report from validated input
func NewReport(tenantID, submittedBy uuid.UUID, in ReportInput) (*Report, error) {
	if err := validateReportInput(in); err != nil {
		return nil, err
	}
	return &Report{
		TenantAggregateRoot:  shared.NewTenantAggregateRoot(tenantID),
		Title:                strings.TrimSpace(in.Title),
		Period:               in.Period,
		PeriodStart:          in.PeriodStart,
		PeriodEnd:            in.PeriodEnd,
		PlannedBeneficiaries: in.PlannedBeneficiaries,
		ActualBeneficiaries:  in.ActualBeneficiaries,
		PortionsDistributed:  in.PortionsDistributed,
		BudgetAllocated:      in.BudgetAllocated,
		BudgetUsed:           in.BudgetUsed,
		QualityScore:         in.QualityScore,
		IncidentCount:        in.IncidentCount,
		Notes:                strings.TrimSpace(in.Notes),
		SubmittedBy:          submittedBy,
	}, nil
}

// Update replaces the report counts with new validated input
func (r *Report) Update(in ReportInput) error {
	if err := validateReportInput(in); err != nil {
		return err
	}
	r.Title = strings.TrimSpace(in.Title)
	r.Period = in.Period
	r.PeriodStart = in.PeriodStart
	r.PeriodEnd = in.PeriodEnd
	r.PlannedBeneficiaries = in.PlannedBeneficiaries
	r.ActualBeneficiaries = in.ActualBeneficiaries
	r.PortionsDistributed = in.PortionsDistributed
	r.BudgetAllocated = in.BudgetAllocated
	r.BudgetUsed = in.BudgetUsed
	r.QualityScore = in.QualityScore
	r.IncidentCount = in.IncidentCount
	r.Notes = strings.TrimSpace(in.Notes)
	r.Touch()
	r.IncrementVersion()
	return nil
}

// AttendanceRate returns actual/planned beneficiaries, zero when unplanned
func (r *Report) AttendanceRate() decimal.Decimal {
	if r.PlannedBeneficiaries == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(r.ActualBeneficiaries)).
		Div(decimal.NewFromInt(int64(r.PlannedBeneficiaries))).Round(4)
}

// BudgetUtilization returns used/allocated budget, zero when unallocated
func (r *Report) BudgetUtilization() decimal.Decimal {
	if r.BudgetAllocated.IsZero() {
		return decimal.Zero
	}
	return r.BudgetUsed.Div(r.BudgetAllocated).Round(4)
}
