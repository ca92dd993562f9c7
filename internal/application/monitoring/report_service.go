package monitoring

import (
	"context"

	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/monitoring"
	"github.com/sppg/backend/internal/domain/shared"
)

// ReportService manages monitoring reports
type ReportService struct {
	repo monitoring.Repository
}

// NewReportService creates a ReportService
func NewReportService(repo monitoring.Repository) *ReportService {
	return &ReportService{repo: repo}
}

// Create stores a new report submitted by a user
func (s *ReportService) Create(ctx context.Context, tenantID, submittedBy uuid.UUID, req ReportRequest) (*ReportResponse, error) {
	report, err := monitoring.NewReport(tenantID, submittedBy, req.toInput())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, report); err != nil {
		return nil, err
	}
	return toReportResponse(report), nil
}

// Update replaces a report's counts
func (s *ReportService) Update(ctx context.Context, tenantID, reportID uuid.UUID, req ReportRequest) (*ReportResponse, error) {
	report, err := s.repo.FindByIDForTenant(ctx, tenantID, reportID)
	if err != nil {
		return nil, err
	}
	if err := report.Update(req.toInput()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, report); err != nil {
		return nil, err
	}
	return toReportResponse(report), nil
}

// Get loads one report
func (s *ReportService) Get(ctx context.Context, tenantID, reportID uuid.UUID) (*ReportResponse, error) {
	report, err := s.repo.FindByIDForTenant(ctx, tenantID, reportID)
	if err != nil {
		return nil, err
	}
	return toReportResponse(report), nil
}

// List returns a paginated report listing
func (s *ReportService) List(ctx context.Context, tenantID uuid.UUID, f ListReportsFilter) (*shared.Paginated[ReportResponse], error) {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	filter.Search = f.Search
	if f.Period != "" {
		filter.Filters["period"] = f.Period
	}

	reports, err := s.repo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ReportResponse, 0, len(reports))
	for idx := range reports {
		responses = append(responses, *toReportResponse(&reports[idx]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Delete removes a report
func (s *ReportService) Delete(ctx context.Context, tenantID, reportID uuid.UUID) error {
	if _, err := s.repo.FindByIDForTenant(ctx, tenantID, reportID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, tenantID, reportID)
}
