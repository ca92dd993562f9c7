package identity

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/shared"
)

var departmentCodePattern = regexp.MustCompile(`^[A-Z0-9_-]{2,50}$`)

// DepartmentStatus represents the status of a department
type DepartmentStatus string

const (
	DepartmentStatusActive   DepartmentStatus = "ACTIVE"
	DepartmentStatusInactive DepartmentStatus = "INACTIVE"
)

// Department is an organizational unit forming a tree via ParentID. Cycle
// prevention on reparenting lives in AncestorWalk, driven by the application
// service with the repository as lookup.
type Department struct {
	shared.TenantAggregateRoot
	Code        string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_department_tenant_code,priority:2"`
	Name        string           `gorm:"type:varchar(200);not null"`
	Description string           `gorm:"type:text"`
	ParentID    *uuid.UUID       `gorm:"type:uuid;index"`
	HeadID      *uuid.UUID       `gorm:"type:uuid"`
	Status      DepartmentStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	SortOrder   int              `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Department) TableName() string {
	return "departments"
}

func validateDepartmentCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !departmentCodePattern.MatchString(code) {
		return shared.NewDomainError("INVALID_CODE",
			"Department code must be 2-50 characters of letters, digits, underscore or dash")
	}
	return nil
}

// NewDepartment creates an active department
func NewDepartment(tenantID uuid.UUID, code, name string) (*Department, error) {
	if err := validateDepartmentCode(code); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Department name cannot be empty")
	}
	return &Department{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(strings.TrimSpace(code)),
		Name:                strings.TrimSpace(name),
		Status:              DepartmentStatusActive,
	}, nil
}

// Update changes name and description
func (d *Department) Update(name, description string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Department name cannot be empty")
	}
	d.Name = strings.TrimSpace(name)
	d.Description = strings.TrimSpace(description)
	d.Touch()
	d.IncrementVersion()
	return nil
}

// SetParent reparents the department. Self-parenting is rejected here;
// descendant cycles are rejected by the service using AncestorWalk.
func (d *Department) SetParent(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == d.ID {
		return shared.NewDomainError("INVALID_PARENT", "Department cannot be its own parent")
	}
	d.ParentID = parentID
	d.Touch()
	d.IncrementVersion()
	return nil
}

// SetHead sets the department head
func (d *Department) SetHead(headID *uuid.UUID) {
	d.HeadID = headID
	d.Touch()
	d.IncrementVersion()
}

// IsRoot returns true for departments without a parent
func (d *Department) IsRoot() bool {
	return d.ParentID == nil
}

// IsActive returns true if the department is active
func (d *Department) IsActive() bool {
	return d.Status == DepartmentStatusActive
}

// Deactivate marks the department inactive
func (d *Department) Deactivate() error {
	if d.Status == DepartmentStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Department is already inactive")
	}
	d.Status = DepartmentStatusInactive
	d.Touch()
	d.IncrementVersion()
	return nil
}

// Activate marks the department active
func (d *Department) Activate() error {
	if d.Status == DepartmentStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Department is already active")
	}
	d.Status = DepartmentStatusActive
	d.Touch()
	d.IncrementVersion()
	return nil
}

// ParentLookup resolves a department's parent ID, nil for roots
type ParentLookup func(id uuid.UUID) (*uuid.UUID, error)

// AncestorWalk reports whether candidateAncestor appears on the ancestor
// chain starting from startID. The walk is iterative and keeps a visited set,
// so it terminates even if the stored tree already contains a cycle.
func AncestorWalk(startID, candidateAncestor uuid.UUID, lookup ParentLookup) (bool, error) {
	visited := make(map[uuid.UUID]bool)
	current := &startID
	for current != nil {
		if *current == candidateAncestor {
			return true, nil
		}
		if visited[*current] {
			return false, shared.NewDomainError("HIERARCHY_CORRUPT",
				fmt.Sprintf("Department hierarchy contains a cycle at %s", current))
		}
		visited[*current] = true
		parent, err := lookup(*current)
		if err != nil {
			return false, err
		}
		current = parent
	}
	return false, nil
}
