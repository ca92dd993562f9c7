package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/identity"
	"github.com/sppg/backend/internal/domain/shared"
)

// DepartmentService handles the organizational tree
type DepartmentService struct {
	repo identity.DepartmentRepository
}

// NewDepartmentService creates a DepartmentService
func NewDepartmentService(repo identity.DepartmentRepository) *DepartmentService {
	return &DepartmentService{repo: repo}
}

// Create creates a department with a tenant-unique code
func (s *DepartmentService) Create(ctx context.Context, tenantID uuid.UUID, req CreateDepartmentRequest) (*DepartmentResponse, error) {
	exists, err := s.repo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Department with this code already exists")
	}

	department, err := identity.NewDepartment(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := department.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.ParentID != nil {
		if _, err := s.repo.FindByIDForTenant(ctx, tenantID, *req.ParentID); err != nil {
			return nil, err
		}
		if err := department.SetParent(req.ParentID); err != nil {
			return nil, err
		}
	}
	department.SetHead(req.HeadID)

	if err := s.repo.Save(ctx, department); err != nil {
		return nil, err
	}
	return toDepartmentResponse(department), nil
}

// Update changes department data. Reparenting onto a descendant is rejected:
// the new parent's ancestor chain must not pass through the department itself.
func (s *DepartmentService) Update(ctx context.Context, tenantID, departmentID uuid.UUID, req UpdateDepartmentRequest) (*DepartmentResponse, error) {
	department, err := s.repo.FindByIDForTenant(ctx, tenantID, departmentID)
	if err != nil {
		return nil, err
	}
	if err := department.Update(req.Name, req.Description); err != nil {
		return nil, err
	}

	if !sameParent(department.ParentID, req.ParentID) {
		if req.ParentID != nil {
			if _, err := s.repo.FindByIDForTenant(ctx, tenantID, *req.ParentID); err != nil {
				return nil, err
			}
			isDescendant, err := identity.AncestorWalk(*req.ParentID, departmentID, func(id uuid.UUID) (*uuid.UUID, error) {
				return s.repo.ParentOf(ctx, tenantID, id)
			})
			if err != nil {
				return nil, err
			}
			if isDescendant {
				return nil, shared.NewDomainError("CYCLE_DETECTED",
					"Cannot move a department under one of its own descendants")
			}
		}
		if err := department.SetParent(req.ParentID); err != nil {
			return nil, err
		}
	}
	department.SetHead(req.HeadID)

	if err := s.repo.Save(ctx, department); err != nil {
		return nil, err
	}
	return toDepartmentResponse(department), nil
}

// Get loads one department
func (s *DepartmentService) Get(ctx context.Context, tenantID, departmentID uuid.UUID) (*DepartmentResponse, error) {
	department, err := s.repo.FindByIDForTenant(ctx, tenantID, departmentID)
	if err != nil {
		return nil, err
	}
	return toDepartmentResponse(department), nil
}

// List returns a paginated department listing
func (s *DepartmentService) List(ctx context.Context, tenantID uuid.UUID, f ListDepartmentsFilter) (*shared.Paginated[DepartmentResponse], error) {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	filter.Search = f.Search
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}

	departments, err := s.repo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]DepartmentResponse, 0, len(departments))
	for idx := range departments {
		responses = append(responses, *toDepartmentResponse(&departments[idx]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Children returns the direct children of a department
func (s *DepartmentService) Children(ctx context.Context, tenantID, departmentID uuid.UUID) ([]DepartmentResponse, error) {
	children, err := s.repo.FindChildren(ctx, tenantID, departmentID)
	if err != nil {
		return nil, err
	}
	responses := make([]DepartmentResponse, 0, len(children))
	for idx := range children {
		responses = append(responses, *toDepartmentResponse(&children[idx]))
	}
	return responses, nil
}

// Delete removes a department that nothing references. Active employees,
// child departments and positions each block the delete.
func (s *DepartmentService) Delete(ctx context.Context, tenantID, departmentID uuid.UUID) error {
	if _, err := s.repo.FindByIDForTenant(ctx, tenantID, departmentID); err != nil {
		return err
	}
	usage, err := s.repo.Usage(ctx, tenantID, departmentID)
	if err != nil {
		return err
	}
	if usage.ActiveEmployees > 0 {
		return shared.NewDomainError("DEPARTMENT_HAS_EMPLOYEES",
			fmt.Sprintf("Department still has %d active employees", usage.ActiveEmployees))
	}
	if usage.ChildDepartments > 0 {
		return shared.NewDomainError("DEPARTMENT_HAS_CHILDREN",
			fmt.Sprintf("Department still has %d child departments", usage.ChildDepartments))
	}
	if usage.Positions > 0 {
		return shared.NewDomainError("DEPARTMENT_HAS_POSITIONS",
			fmt.Sprintf("Department still has %d positions", usage.Positions))
	}
	return s.repo.Delete(ctx, tenantID, departmentID)
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
