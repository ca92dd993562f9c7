package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sppg/backend/internal/domain/production"
	"github.com/sppg/backend/internal/domain/shared"
)

// GormProductionRepository implements production.Repository using GORM
type GormProductionRepository struct {
	db *gorm.DB
}

// NewGormProductionRepository creates a new GormProductionRepository
func NewGormProductionRepository(db *gorm.DB) *GormProductionRepository {
	return &GormProductionRepository{db: db}
}

// FindByIDForTenant finds a production batch with its stock usages
func (r *GormProductionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*production.FoodProduction, error) {
	var batch production.FoodProduction
	if err := r.db.WithContext(ctx).
		Preload("StockUsages").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindByIDForUpdate loads the batch with a FOR UPDATE row lock. Must run
// inside a transaction. Usages are loaded after the lock is taken.
func (r *GormProductionRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*production.FoodProduction, error) {
	var batch production.FoodProduction
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("production_id = ?", batch.ID).
		Order("created_at ASC").
		Find(&batch.StockUsages).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

// FindByBatchNumber finds a batch by its number within a tenant
func (r *GormProductionRepository) FindByBatchNumber(ctx context.Context, tenantID uuid.UUID, batchNumber string) (*production.FoodProduction, error) {
	var batch production.FoodProduction
	if err := r.db.WithContext(ctx).
		Preload("StockUsages").
		Where("tenant_id = ? AND batch_number = ?", tenantID, strings.ToUpper(batchNumber)).
		First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindAllForTenant finds all batches for a tenant matching the filter
func (r *GormProductionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]production.FoodProduction, error) {
	var batches []production.FoodProduction
	query := r.applyFilter(r.db.WithContext(ctx).Model(&production.FoodProduction{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Preload("StockUsages").Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindByDateRange finds batches whose production date falls in [from, to]
func (r *GormProductionRepository) FindByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]production.FoodProduction, error) {
	var batches []production.FoodProduction
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND production_date >= ? AND production_date <= ?", tenantID, from, to).
		Order("production_date ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// CountForTenant counts batches for a tenant matching the filter
func (r *GormProductionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&production.FoodProduction{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByBatchNumber checks whether the batch number is taken within the tenant
func (r *GormProductionRepository) ExistsByBatchNumber(ctx context.Context, tenantID uuid.UUID, batchNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&production.FoodProduction{}).
		Where("tenant_id = ? AND batch_number = ?", tenantID, strings.ToUpper(batchNumber)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a batch together with its stock usages
func (r *GormProductionRepository) Save(ctx context.Context, batch *production.FoodProduction) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(batch).Error
}

func (r *GormProductionRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("batch_number ILIKE ? OR menu_name ILIKE ?", search, search)
	}
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	return query
}

func (r *GormProductionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	sortField := ValidateSortField(filter.OrderBy, ProductionSortFields, "production_date")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	return query.Offset(filter.Offset()).Limit(filter.PageSize)
}

var _ production.Repository = (*GormProductionRepository)(nil)
