package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sppg/backend/internal/domain/identity"
	"github.com/sppg/backend/internal/domain/shared"
)

// GormDepartmentRepository implements identity.DepartmentRepository using GORM
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewGormDepartmentRepository creates a new GormDepartmentRepository
func NewGormDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// FindByIDForTenant finds a department by ID within a tenant
func (r *GormDepartmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.Department, error) {
	var department identity.Department
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &department, nil
}

// FindByCode finds a department by its code within a tenant
func (r *GormDepartmentRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*identity.Department, error) {
	var department identity.Department
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &department, nil
}

// FindAllForTenant finds all departments for a tenant matching the filter
func (r *GormDepartmentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.Department, error) {
	var departments []identity.Department
	query := r.applyFilter(r.db.WithContext(ctx).Model(&identity.Department{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

// FindChildren finds the direct children of a department
func (r *GormDepartmentRepository) FindChildren(ctx context.Context, tenantID, parentID uuid.UUID) ([]identity.Department, error) {
	var departments []identity.Department
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND parent_id = ?", tenantID, parentID).
		Order("sort_order ASC, name ASC").
		Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

// ParentOf resolves just the parent ID of a department. Backs the ancestor
// walk during reparenting, so it stays a single-column lookup.
func (r *GormDepartmentRepository) ParentOf(ctx context.Context, tenantID, id uuid.UUID) (*uuid.UUID, error) {
	var row struct {
		ParentID *uuid.UUID
	}
	if err := r.db.WithContext(ctx).
		Model(&identity.Department{}).
		Select("parent_id").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ParentID, nil
}

// Usage returns the references that block department deletion in one query
// round trip
func (r *GormDepartmentRepository) Usage(ctx context.Context, tenantID, id uuid.UUID) (identity.DepartmentUsage, error) {
	var usage identity.DepartmentUsage
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM employees
				WHERE tenant_id = ? AND department_id = ? AND status = ?) AS active_employees,
			(SELECT COUNT(*) FROM departments
				WHERE tenant_id = ? AND parent_id = ?) AS child_departments,
			(SELECT COUNT(*) FROM positions
				WHERE tenant_id = ? AND department_id = ? AND is_active = TRUE) AS positions`,
		tenantID, id, identity.EmployeeStatusActive,
		tenantID, id,
		tenantID, id,
	).Scan(&usage).Error
	if err != nil {
		return identity.DepartmentUsage{}, err
	}
	return usage, nil
}

// CountForTenant counts departments for a tenant matching the filter
func (r *GormDepartmentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&identity.Department{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks whether a department with the code exists within the tenant
func (r *GormDepartmentRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.Department{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a department
func (r *GormDepartmentRepository) Save(ctx context.Context, department *identity.Department) error {
	return r.db.WithContext(ctx).Save(department).Error
}

// Delete removes a department
func (r *GormDepartmentRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&identity.Department{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormDepartmentRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", search, search)
	}
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	return query
}

func (r *GormDepartmentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	sortField := ValidateSortField(filter.OrderBy, DepartmentSortFields, "sort_order")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	if sortField == "sort_order" && filter.OrderBy == "" {
		sortOrder = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	return query.Offset(filter.Offset()).Limit(filter.PageSize)
}

var _ identity.DepartmentRepository = (*GormDepartmentRepository)(nil)
