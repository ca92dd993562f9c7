package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/shared"
)

// SppgRepository defines persistence operations for organizations
type SppgRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sppg, error)
	FindByCode(ctx context.Context, code string) (*Sppg, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Sppg, error)
	Save(ctx context.Context, sppg *Sppg) error
}

// DepartmentUsage aggregates the references that block department deletion
type DepartmentUsage struct {
	ActiveEmployees  int64
	ChildDepartments int64
	Positions        int64
}

// Total returns the combined blocking reference count
func (u DepartmentUsage) Total() int64 {
	return u.ActiveEmployees + u.ChildDepartments + u.Positions
}

// DepartmentRepository defines persistence operations for departments
type DepartmentRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Department, error)
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Department, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Department, error)
	FindChildren(ctx context.Context, tenantID, parentID uuid.UUID) ([]Department, error)
	// ParentOf resolves just the parent ID, backing the ancestor walk
	ParentOf(ctx context.Context, tenantID, id uuid.UUID) (*uuid.UUID, error)
	// Usage returns the blocking reference counts in one query round trip
	Usage(ctx context.Context, tenantID, id uuid.UUID) (DepartmentUsage, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, department *Department) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// EmployeeRepository defines persistence operations for employees
type EmployeeRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Employee, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Employee, error)
	FindByDepartment(ctx context.Context, tenantID, departmentID uuid.UUID) ([]Employee, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, employee *Employee) error
}

// PositionRepository defines persistence operations for positions
type PositionRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Position, error)
	FindByDepartment(ctx context.Context, tenantID, departmentID uuid.UUID) ([]Position, error)
	Save(ctx context.Context, position *Position) error
}

// UserRepository defines persistence operations for user accounts
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, tenantID uuid.UUID, username string) (*User, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]User, error)
	ExistsByUsername(ctx context.Context, tenantID uuid.UUID, username string) (bool, error)
	Save(ctx context.Context, user *User) error
}
