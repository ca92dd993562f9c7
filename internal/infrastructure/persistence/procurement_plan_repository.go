package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sppg/backend/internal/domain/procurement"
	"github.com/sppg/backend/internal/domain/shared"
)

// GormPlanRepository implements procurement.PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// FindByIDForTenant finds a plan by ID within a tenant
func (r *GormPlanRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*procurement.Plan, error) {
	var plan procurement.Plan
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// FindByIDForUpdate loads the plan with a FOR UPDATE row lock. Budget
// allocation reads and writes AllocatedBudget, so callers serialize here.
func (r *GormPlanRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*procurement.Plan, error) {
	var plan procurement.Plan
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// FindAllForTenant finds all plans for a tenant matching the filter
func (r *GormPlanRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]procurement.Plan, error) {
	var plans []procurement.Plan
	query := r.applyFilter(r.db.WithContext(ctx).Model(&procurement.Plan{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// CountForTenant counts plans for a tenant matching the filter
func (r *GormPlanRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&procurement.Plan{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a plan
func (r *GormPlanRepository) Save(ctx context.Context, plan *procurement.Plan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

// Delete removes a plan
func (r *GormPlanRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&procurement.Plan{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormPlanRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	return query
}

func (r *GormPlanRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	sortField := ValidateSortField(filter.OrderBy, PlanSortFields, "period_start")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	return query.Offset(filter.Offset()).Limit(filter.PageSize)
}

// GormQualityControlRepository stores QC inspection records
type GormQualityControlRepository struct {
	db *gorm.DB
}

// NewGormQualityControlRepository creates a new GormQualityControlRepository
func NewGormQualityControlRepository(db *gorm.DB) *GormQualityControlRepository {
	return &GormQualityControlRepository{db: db}
}

// Save inserts a QC inspection record
func (r *GormQualityControlRepository) Save(ctx context.Context, qc *procurement.QualityControl) error {
	return r.db.WithContext(ctx).Save(qc).Error
}

// FindByProcurement finds all inspections recorded for a procurement
func (r *GormQualityControlRepository) FindByProcurement(ctx context.Context, tenantID, procurementID uuid.UUID) ([]procurement.QualityControl, error) {
	var inspections []procurement.QualityControl
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND procurement_id = ?", tenantID, procurementID).
		Order("inspected_at DESC").
		Find(&inspections).Error; err != nil {
		return nil, err
	}
	return inspections, nil
}

var _ procurement.PlanRepository = (*GormPlanRepository)(nil)
var _ procurement.QualityControlRepository = (*GormQualityControlRepository)(nil)
