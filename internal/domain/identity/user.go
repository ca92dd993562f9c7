package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sppg/backend/internal/domain/shared"
)

const bcryptCost = 12

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,50}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive      UserStatus = "ACTIVE"
	UserStatusDeactivated UserStatus = "DEACTIVATED"
	UserStatusLocked      UserStatus = "LOCKED"
)

// UserRole names a permission bundle. Permissions are resource:action
// strings checked by the HTTP permission middleware.
type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleManager    UserRole = "MANAGER"
	RoleWarehouse  UserRole = "WAREHOUSE"
	RoleKitchen    UserRole = "KITCHEN"
	RoleViewer     UserRole = "VIEWER"
)

// IsValid checks if the role is a known value
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleWarehouse, RoleKitchen, RoleViewer:
		return true
	}
	return false
}

// rolePermissions maps each role to its permission strings. ADMIN is handled
// by the wildcard.
var rolePermissions = map[UserRole][]string{
	RoleAdmin:   {"*"},
	RoleManager: {
		"inventory:read", "inventory:write",
		"procurement:read", "procurement:write", "procurement:approve",
		"production:read", "production:write",
		"department:read", "department:write",
		"supplier:read", "supplier:write",
		"monitoring:read", "monitoring:write",
	},
	RoleWarehouse: {
		"inventory:read", "inventory:write",
		"procurement:read", "procurement:write",
		"supplier:read",
	},
	RoleKitchen: {
		"inventory:read",
		"production:read", "production:write",
	},
	RoleViewer: {
		"inventory:read", "procurement:read", "production:read",
		"department:read", "supplier:read", "monitoring:read",
	},
}

// PermissionsForRole returns the permission strings granted by a role
func PermissionsForRole(role UserRole) []string {
	return rolePermissions[role]
}

// User is an account scoped to one SPPG organization
type User struct {
	shared.TenantAggregateRoot
	Username       string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_user_tenant_username,priority:2"`
	Email          string     `gorm:"type:varchar(200);index"`
	FullName       string     `gorm:"type:varchar(200)"`
	PasswordHash   string     `gorm:"type:varchar(200);not null"`
	Role           UserRole   `gorm:"type:varchar(20);not null;default:'VIEWER'"`
	Status         UserStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	DepartmentID   *uuid.UUID `gorm:"type:uuid;index"`
	FailedAttempts int        `gorm:"not null;default:0"`
	LockedUntil    *time.Time
	LastLoginAt    *time.Time
	LastLoginIP    string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

func validateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME",
			"Username must be 3-50 characters of letters, digits, dot, underscore or dash")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", shared.NewDomainError("PASSWORD_HASH_FAILED", "Failed to hash password")
	}
	return string(hash), nil
}

// NewUser creates an active account with a hashed password
func NewUser(tenantID uuid.UUID, username, password string, role UserRole) (*User, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown user role")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	return &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Username:            username,
		PasswordHash:        hash,
		Role:                role,
		Status:              UserStatusActive,
	}, nil
}

// SetEmail sets the user's email address
func (u *User) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email != "" && !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	u.Email = email
	u.Touch()
	u.IncrementVersion()
	return nil
}

// SetFullName sets the display name
func (u *User) SetFullName(name string) {
	u.FullName = strings.TrimSpace(name)
	u.Touch()
	u.IncrementVersion()
}

// SetDepartment attaches the user to a department
func (u *User) SetDepartment(departmentID *uuid.UUID) {
	u.DepartmentID = departmentID
	u.Touch()
	u.IncrementVersion()
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword verifies the old password before setting a new one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// SetPassword replaces the password hash
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.Touch()
	u.IncrementVersion()
	return nil
}

// Permissions returns the permission strings granted by the user's role
func (u *User) Permissions() []string {
	return PermissionsForRole(u.Role)
}

// HasPermission checks a resource:action string against the user's role.
// The ADMIN wildcard grants everything.
func (u *User) HasPermission(permission string) bool {
	for _, p := range u.Permissions() {
		if p == "*" || p == permission {
			return true
		}
	}
	return false
}

// RecordLoginSuccess resets the failure counter and stores login metadata
func (u *User) RecordLoginSuccess(ip string) {
	now := time.Now()
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.LastLoginAt = &now
	u.LastLoginIP = ip
	u.Touch()
}

// RecordLoginFailure increments the failure counter, locking the account
// once maxAttempts is reached. Returns true if the account was locked.
func (u *User) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	u.FailedAttempts++
	u.Touch()
	if u.FailedAttempts >= maxAttempts {
		until := time.Now().Add(lockDuration)
		u.Status = UserStatusLocked
		u.LockedUntil = &until
		return true
	}
	return false
}

// Unlock clears an expired or administrative lock
func (u *User) Unlock() {
	u.Status = UserStatusActive
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.Touch()
	u.IncrementVersion()
}

// Deactivate disables the account
func (u *User) Deactivate() error {
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "User is already deactivated")
	}
	u.Status = UserStatusDeactivated
	u.Touch()
	u.IncrementVersion()
	return nil
}

// CanLogin returns true if the account may authenticate now
func (u *User) CanLogin() bool {
	if u.Status == UserStatusActive {
		return true
	}
	if u.Status == UserStatusLocked && u.LockedUntil != nil && time.Now().After(*u.LockedUntil) {
		return true
	}
	return false
}
