package identity

import (
	"strings"

	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/shared"
)

// Position is a job title within a department
type Position struct {
	shared.TenantAggregateRoot
	DepartmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title        string    `gorm:"type:varchar(200);not null"`
	Description  string    `gorm:"type:text"`
	IsActive     bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Position) TableName() string {
	return "positions"
}

// NewPosition creates a position in a department
func NewPosition(tenantID, departmentID uuid.UUID, title string) (*Position, error) {
	if departmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEPARTMENT", "Department ID cannot be empty")
	}
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Position title cannot be empty")
	}
	return &Position{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		DepartmentID:        departmentID,
		Title:               strings.TrimSpace(title),
		IsActive:            true,
	}, nil
}

// EmployeeStatus represents employment status
type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "ACTIVE"
	EmployeeStatusOnLeave    EmployeeStatus = "ON_LEAVE"
	EmployeeStatusTerminated EmployeeStatus = "TERMINATED"
)

// Employee is a staff record attached to a department and position. Active
// employees block department deletion.
type Employee struct {
	shared.TenantAggregateRoot
	EmployeeNumber string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_employee_tenant_number,priority:2"`
	FullName       string         `gorm:"type:varchar(200);not null"`
	DepartmentID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	PositionID     *uuid.UUID     `gorm:"type:uuid;index"`
	UserID         *uuid.UUID     `gorm:"type:uuid;index"`
	Phone          string         `gorm:"type:varchar(50)"`
	Email          string         `gorm:"type:varchar(200)"`
	Status         EmployeeStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// NewEmployee creates an active employee in a department
func NewEmployee(tenantID, departmentID uuid.UUID, employeeNumber, fullName string) (*Employee, error) {
	if departmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEPARTMENT", "Department ID cannot be empty")
	}
	if strings.TrimSpace(employeeNumber) == "" {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE_NUMBER", "Employee number cannot be empty")
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Employee name cannot be empty")
	}
	return &Employee{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		EmployeeNumber:      strings.ToUpper(strings.TrimSpace(employeeNumber)),
		FullName:            strings.TrimSpace(fullName),
		DepartmentID:        departmentID,
		Status:              EmployeeStatusActive,
	}, nil
}

// TransferTo moves the employee to another department
func (e *Employee) TransferTo(departmentID uuid.UUID, positionID *uuid.UUID) error {
	if departmentID == uuid.Nil {
		return shared.NewDomainError("INVALID_DEPARTMENT", "Department ID cannot be empty")
	}
	e.DepartmentID = departmentID
	e.PositionID = positionID
	e.Touch()
	e.IncrementVersion()
	return nil
}

// Terminate ends the employment
func (e *Employee) Terminate() error {
	if e.Status == EmployeeStatusTerminated {
		return shared.NewDomainError("ALREADY_TERMINATED", "Employee is already terminated")
	}
	e.Status = EmployeeStatusTerminated
	e.Touch()
	e.IncrementVersion()
	return nil
}

// IsActive returns true if the employee is actively employed
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}
