package monitoring

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sppg/backend/internal/domain/monitoring"
	"github.com/sppg/backend/internal/domain/shared"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*monitoring.Report, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*monitoring.Report), args.Error(1)
}

func (m *MockReportRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]monitoring.Report, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]monitoring.Report), args.Error(1)
}

func (m *MockReportRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepository) Save(ctx context.Context, report *monitoring.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func weeklyRequest() ReportRequest {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	return ReportRequest{
		Title:                "Distribusi minggu ke-10",
		Period:               "WEEKLY",
		PeriodStart:          start,
		PeriodEnd:            start.AddDate(0, 0, 7),
		PlannedBeneficiaries: 800,
		ActualBeneficiaries:  760,
		PortionsDistributed:  3800,
		BudgetAllocated:      decimal.NewFromInt(20000000),
		BudgetUsed:           decimal.NewFromInt(17500000),
		IncidentCount:        1,
	}
}

func TestReportService_Create(t *testing.T) {
	tenantID := uuid.New()
	submitter := uuid.New()

	t.Run("derives the ratios from the stored counts", func(t *testing.T) {
		repo := new(MockReportRepository)
		service := NewReportService(repo)

		repo.On("Save", mock.Anything, mock.MatchedBy(func(r *monitoring.Report) bool {
			return r.TenantID == tenantID && r.SubmittedBy == submitter
		})).Return(nil)

		resp, err := service.Create(context.Background(), tenantID, submitter, weeklyRequest())

		require.NoError(t, err)
		assert.Equal(t, "0.95", resp.AttendanceRate.String())
		assert.Equal(t, "0.875", resp.BudgetUtilization.String())
		repo.AssertExpectations(t)
	})

	t.Run("rejects an inverted period without saving", func(t *testing.T) {
		repo := new(MockReportRepository)
		service := NewReportService(repo)

		req := weeklyRequest()
		req.PeriodEnd = req.PeriodStart.AddDate(0, 0, -1)

		_, err := service.Create(context.Background(), tenantID, submitter, req)

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestReportService_Update(t *testing.T) {
	tenantID := uuid.New()
	submitter := uuid.New()

	repo := new(MockReportRepository)
	service := NewReportService(repo)

	report, err := monitoring.NewReport(tenantID, submitter, weeklyRequest().toInput())
	require.NoError(t, err)

	repo.On("FindByIDForTenant", mock.Anything, tenantID, report.ID).Return(report, nil)
	repo.On("Save", mock.Anything, report).Return(nil)

	req := weeklyRequest()
	req.ActualBeneficiaries = 800

	resp, err := service.Update(context.Background(), tenantID, report.ID, req)

	require.NoError(t, err)
	assert.Equal(t, "1", resp.AttendanceRate.String())
	repo.AssertExpectations(t)
}

func TestReportService_Delete(t *testing.T) {
	tenantID := uuid.New()

	repo := new(MockReportRepository)
	service := NewReportService(repo)

	report, err := monitoring.NewReport(tenantID, uuid.New(), weeklyRequest().toInput())
	require.NoError(t, err)

	repo.On("FindByIDForTenant", mock.Anything, tenantID, report.ID).Return(report, nil)
	repo.On("Delete", mock.Anything, tenantID, report.ID).Return(nil)

	require.NoError(t, service.Delete(context.Background(), tenantID, report.ID))
	repo.AssertExpectations(t)
}
