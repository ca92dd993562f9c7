package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/identity"
)

// CreateDepartmentRequest creates a department
type CreateDepartmentRequest struct {
	Code        string     `json:"code" binding:"required,max=50"`
	Name        string     `json:"name" binding:"required,max=200"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
	HeadID      *uuid.UUID `json:"head_id"`
}

// UpdateDepartmentRequest updates department data, including reparenting
type UpdateDepartmentRequest struct {
	Name        string     `json:"name" binding:"required,max=200"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
	HeadID      *uuid.UUID `json:"head_id"`
}

// ListDepartmentsFilter filters the department listing
type ListDepartmentsFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// DepartmentResponse represents a department in API responses
type DepartmentResponse struct {
	ID          uuid.UUID  `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	HeadID      *uuid.UUID `json:"head_id,omitempty"`
	Status      string     `json:"status"`
	SortOrder   int        `json:"sort_order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toDepartmentResponse(d *identity.Department) *DepartmentResponse {
	return &DepartmentResponse{
		ID:          d.ID,
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
		ParentID:    d.ParentID,
		HeadID:      d.HeadID,
		Status:      string(d.Status),
		SortOrder:   d.SortOrder,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// CreateEmployeeRequest creates an employee record
type CreateEmployeeRequest struct {
	EmployeeNumber string     `json:"employee_number" binding:"required,max=50"`
	FullName       string     `json:"full_name" binding:"required,max=200"`
	DepartmentID   uuid.UUID  `json:"department_id" binding:"required"`
	PositionID     *uuid.UUID `json:"position_id"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email" binding:"omitempty,email"`
}

// TransferEmployeeRequest moves an employee between departments
type TransferEmployeeRequest struct {
	DepartmentID uuid.UUID  `json:"department_id" binding:"required"`
	PositionID   *uuid.UUID `json:"position_id"`
}

// ListEmployeesFilter filters the employee listing
type ListEmployeesFilter struct {
	Search       string     `form:"search"`
	DepartmentID *uuid.UUID `form:"department_id"`
	Status       string     `form:"status"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID             uuid.UUID  `json:"id"`
	EmployeeNumber string     `json:"employee_number"`
	FullName       string     `json:"full_name"`
	DepartmentID   uuid.UUID  `json:"department_id"`
	PositionID     *uuid.UUID `json:"position_id,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	Email          string     `json:"email,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func toEmployeeResponse(e *identity.Employee) *EmployeeResponse {
	return &EmployeeResponse{
		ID:             e.ID,
		EmployeeNumber: e.EmployeeNumber,
		FullName:       e.FullName,
		DepartmentID:   e.DepartmentID,
		PositionID:     e.PositionID,
		Phone:          e.Phone,
		Email:          e.Email,
		Status:         string(e.Status),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

// CreateUserRequest creates a user account
type CreateUserRequest struct {
	Username     string     `json:"username" binding:"required,min=3,max=50"`
	Password     string     `json:"password" binding:"required,min=8"`
	Email        string     `json:"email" binding:"omitempty,email"`
	FullName     string     `json:"full_name"`
	Role         string     `json:"role" binding:"required"`
	DepartmentID *uuid.UUID `json:"department_id"`
}

// ChangePasswordRequest replaces the caller's own password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UserResponse represents a user in API responses. The password hash never
// leaves the service layer.
type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email,omitempty"`
	FullName     string     `json:"full_name,omitempty"`
	Role         string     `json:"role"`
	Status       string     `json:"status"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		Role:         string(u.Role),
		Status:       string(u.Status),
		DepartmentID: u.DepartmentID,
		LastLoginAt:  u.LastLoginAt,
		CreatedAt:    u.CreatedAt,
	}
}

// LoginRequest authenticates a user within one organization
type LoginRequest struct {
	SppgCode string `json:"sppg_code" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResponse carries the token pair and the authenticated profile
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	User         UserResponse `json:"user"`
}
