package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/identity"
	"github.com/sppg/backend/internal/domain/shared"
)

// EmployeeService manages staff records
type EmployeeService struct {
	employeeRepo   identity.EmployeeRepository
	departmentRepo identity.DepartmentRepository
}

// NewEmployeeService creates an EmployeeService
func NewEmployeeService(employeeRepo identity.EmployeeRepository, departmentRepo identity.DepartmentRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo, departmentRepo: departmentRepo}
}

// Create creates an employee in an existing department
func (s *EmployeeService) Create(ctx context.Context, tenantID uuid.UUID, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	if _, err := s.departmentRepo.FindByIDForTenant(ctx, tenantID, req.DepartmentID); err != nil {
		return nil, err
	}
	employee, err := identity.NewEmployee(tenantID, req.DepartmentID, req.EmployeeNumber, req.FullName)
	if err != nil {
		return nil, err
	}
	employee.PositionID = req.PositionID
	employee.Phone = req.Phone
	employee.Email = req.Email

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// Get loads one employee
func (s *EmployeeService) Get(ctx context.Context, tenantID, employeeID uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByIDForTenant(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// List returns a paginated employee listing
func (s *EmployeeService) List(ctx context.Context, tenantID uuid.UUID, f ListEmployeesFilter) (*shared.Paginated[EmployeeResponse], error) {
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
	if f.DepartmentID != nil {
		filter.Filters["department_id"] = f.DepartmentID.String()
	}

	employees, err := s.employeeRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.employeeRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]EmployeeResponse, 0, len(employees))
	for idx := range employees {
		responses = append(responses, *toEmployeeResponse(&employees[idx]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Transfer moves an employee to another department
func (s *EmployeeService) Transfer(ctx context.Context, tenantID, employeeID uuid.UUID, req TransferEmployeeRequest) (*EmployeeResponse, error) {
	if _, err := s.departmentRepo.FindByIDForTenant(ctx, tenantID, req.DepartmentID); err != nil {
		return nil, err
	}
	employee, err := s.employeeRepo.FindByIDForTenant(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	if err := employee.TransferTo(req.DepartmentID, req.PositionID); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// Terminate ends an employment
func (s *EmployeeService) Terminate(ctx context.Context, tenantID, employeeID uuid.UUID) error {
	employee, err := s.employeeRepo.FindByIDForTenant(ctx, tenantID, employeeID)
	if err != nil {
		return err
	}
	if err := employee.Terminate(); err != nil {
		return err
	}
	return s.employeeRepo.Save(ctx, employee)
}
