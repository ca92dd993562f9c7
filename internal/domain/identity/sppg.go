package identity

import (
	"strings"

	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/shared"
)

// SppgStatus represents the status of an SPPG organization
type SppgStatus string

const (
	SppgStatusActive    SppgStatus = "ACTIVE"
	SppgStatusSuspended SppgStatus = "SUSPENDED"
	SppgStatusInactive  SppgStatus = "INACTIVE"
)

// Sppg is a nutrition-distribution organization, the tenant of the system.
// Its ID is the TenantID every other aggregate is scoped by.
type Sppg struct {
	shared.BaseAggregateRoot
	Code    string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name    string     `gorm:"type:varchar(200);not null"`
	Address string     `gorm:"type:text"`
	City    string     `gorm:"type:varchar(100)"`
	Phone   string     `gorm:"type:varchar(50)"`
	Email   string     `gorm:"type:varchar(200)"`
	Status  SppgStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
}

// TableName returns the table name for GORM
func (Sppg) TableName() string {
	return "sppgs"
}

// NewSppg creates an active organization
func NewSppg(code, name string) (*Sppg, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Organization code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Organization name cannot be empty")
	}
	return &Sppg{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              strings.TrimSpace(name),
		Status:            SppgStatusActive,
	}, nil
}

// IsActive returns true if the organization may use the system
func (s *Sppg) IsActive() bool {
	return s.Status == SppgStatusActive
}

// Suspend blocks the organization from logging in
func (s *Sppg) Suspend() error {
	if s.Status == SppgStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Organization is already suspended")
	}
	s.Status = SppgStatusSuspended
	s.Touch()
	s.IncrementVersion()
	return nil
}

// Activate returns the organization to active status
func (s *Sppg) Activate() {
	s.Status = SppgStatusActive
	s.Touch()
	s.IncrementVersion()
}

// TenantID returns the organization ID in its role as tenant key
func (s *Sppg) TenantID() uuid.UUID {
	return s.ID
}
