package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sppg/backend/internal/domain/monitoring"
	"github.com/sppg/backend/internal/domain/shared"
)

// GormReportRepository implements monitoring.Repository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// FindByIDForTenant finds a report by ID within a tenant
func (r *GormReportRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*monitoring.Report, error) {
	var report monitoring.Report
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// FindAllForTenant finds all reports for a tenant matching the filter
func (r *GormReportRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]monitoring.Report, error) {
	var reports []monitoring.Report
	query := r.applyFilter(r.db.WithContext(ctx).Model(&monitoring.Report{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// CountForTenant counts reports for a tenant matching the filter
func (r *GormReportRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&monitoring.Report{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a report
func (r *GormReportRepository) Save(ctx context.Context, report *monitoring.Report) error {
	return r.db.WithContext(ctx).Save(report).Error
}

// Delete removes a report
func (r *GormReportRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&monitoring.Report{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormReportRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}
	if period, ok := filter.Filters["period"].(string); ok && period != "" {
		query = query.Where("period = ?", period)
	}
	return query
}

func (r *GormReportRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	sortField := ValidateSortField(filter.OrderBy, ReportSortFields, "period_start")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	return query.Offset(filter.Offset()).Limit(filter.PageSize)
}

var _ monitoring.Repository = (*GormReportRepository)(nil)
