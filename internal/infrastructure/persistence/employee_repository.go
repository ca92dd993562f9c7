package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sppg/backend/internal/domain/identity"
	"github.com/sppg/backend/internal/domain/shared"
)

// GormEmployeeRepository implements identity.EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByIDForTenant finds an employee by ID within a tenant
func (r *GormEmployeeRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.Employee, error) {
	var employee identity.Employee
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// FindAllForTenant finds all employees for a tenant matching the filter
func (r *GormEmployeeRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.Employee, error) {
	var employees []identity.Employee
	query := r.applyFilter(r.db.WithContext(ctx).Model(&identity.Employee{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// FindByDepartment finds all employees assigned to a department
func (r *GormEmployeeRepository) FindByDepartment(ctx context.Context, tenantID, departmentID uuid.UUID) ([]identity.Employee, error) {
	var employees []identity.Employee
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND department_id = ?", tenantID, departmentID).
		Order("full_name ASC").
		Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// CountForTenant counts employees for a tenant matching the filter
func (r *GormEmployeeRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&identity.Employee{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, employee *identity.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *GormEmployeeRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("employee_number ILIKE ? OR full_name ILIKE ?", search, search)
	}
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if departmentID, ok := filter.Filters["department_id"].(string); ok && departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}
	return query
}

func (r *GormEmployeeRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	sortField := ValidateSortField(filter.OrderBy, EmployeeSortFields, "full_name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	if sortField == "full_name" && filter.OrderBy == "" {
		sortOrder = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	return query.Offset(filter.Offset()).Limit(filter.PageSize)
}

// GormPositionRepository implements identity.PositionRepository using GORM
type GormPositionRepository struct {
	db *gorm.DB
}

// NewGormPositionRepository creates a new GormPositionRepository
func NewGormPositionRepository(db *gorm.DB) *GormPositionRepository {
	return &GormPositionRepository{db: db}
}

// FindByIDForTenant finds a position by ID within a tenant
func (r *GormPositionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.Position, error) {
	var position identity.Position
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&position).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &position, nil
}

// FindByDepartment finds all positions within a department
func (r *GormPositionRepository) FindByDepartment(ctx context.Context, tenantID, departmentID uuid.UUID) ([]identity.Position, error) {
	var positions []identity.Position
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND department_id = ?", tenantID, departmentID).
		Order("title ASC").
		Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

// Save creates or updates a position
func (r *GormPositionRepository) Save(ctx context.Context, position *identity.Position) error {
	return r.db.WithContext(ctx).Save(position).Error
}

var _ identity.EmployeeRepository = (*GormEmployeeRepository)(nil)
var _ identity.PositionRepository = (*GormPositionRepository)(nil)
