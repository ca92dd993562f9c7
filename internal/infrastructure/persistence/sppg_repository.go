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

// GormSppgRepository implements identity.SppgRepository using GORM
type GormSppgRepository struct {
	db *gorm.DB
}

// NewGormSppgRepository creates a new GormSppgRepository
func NewGormSppgRepository(db *gorm.DB) *GormSppgRepository {
	return &GormSppgRepository{db: db}
}

// FindByID finds an organization by ID
func (r *GormSppgRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Sppg, error) {
	var org identity.Sppg
	if err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &org, nil
}

// FindByCode finds an organization by its code
func (r *GormSppgRepository) FindByCode(ctx context.Context, code string) (*identity.Sppg, error) {
	var org identity.Sppg
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &org, nil
}

// FindAll finds all organizations matching the filter
func (r *GormSppgRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Sppg, error) {
	var orgs []identity.Sppg
	query := r.db.WithContext(ctx).Model(&identity.Sppg{})

	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", search, search)
	}
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}

	sortField := ValidateSortField(filter.OrderBy, SppgSortFields, "name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	if sortField == "name" && filter.OrderBy == "" {
		sortOrder = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if err := query.Offset(filter.Offset()).Limit(filter.PageSize).Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

// Save creates or updates an organization
func (r *GormSppgRepository) Save(ctx context.Context, org *identity.Sppg) error {
	return r.db.WithContext(ctx).Save(org).Error
}

var _ identity.SppgRepository = (*GormSppgRepository)(nil)
