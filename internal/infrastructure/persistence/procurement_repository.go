package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sppg/backend/internal/domain/procurement"
	"github.com/sppg/backend/internal/domain/shared"
)

// GormProcurementRepository implements procurement.Repository using GORM
type GormProcurementRepository struct {
	db *gorm.DB
}

// NewGormProcurementRepository creates a new GormProcurementRepository
func NewGormProcurementRepository(db *gorm.DB) *GormProcurementRepository {
	return &GormProcurementRepository{db: db}
}

// FindByIDForTenant finds a procurement with its items by ID within a tenant
func (r *GormProcurementRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*procurement.Procurement, error) {
	var proc procurement.Procurement
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&proc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &proc, nil
}

// FindByIDForUpdate loads the procurement with a FOR UPDATE row lock. Must
// run inside a transaction. Items are loaded after the lock is taken.
func (r *GormProcurementRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*procurement.Procurement, error) {
	var proc procurement.Procurement
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&proc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("procurement_id = ?", proc.ID).
		Order("created_at ASC").
		Find(&proc.Items).Error; err != nil {
		return nil, err
	}
	return &proc, nil
}

// FindByOrderNumber finds a procurement by its order number within a tenant
func (r *GormProcurementRepository) FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*procurement.Procurement, error) {
	var proc procurement.Procurement
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND order_number = ?", tenantID, strings.ToUpper(orderNumber)).
		First(&proc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &proc, nil
}

// FindAllForTenant finds all procurements for a tenant matching the filter
func (r *GormProcurementRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]procurement.Procurement, error) {
	var procs []procurement.Procurement
	query := r.applyFilter(r.db.WithContext(ctx).Model(&procurement.Procurement{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Preload("Items").Find(&procs).Error; err != nil {
		return nil, err
	}
	return procs, nil
}

// FindByStatus finds procurements in a given status
func (r *GormProcurementRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status procurement.Status, filter shared.Filter) ([]procurement.Procurement, error) {
	var procs []procurement.Procurement
	query := r.db.WithContext(ctx).
		Model(&procurement.Procurement{}).
		Where("tenant_id = ? AND status = ?", tenantID, status)

	sortField := ValidateSortField(filter.OrderBy, ProcurementSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if err := query.Offset(filter.Offset()).Limit(filter.PageSize).Preload("Items").Find(&procs).Error; err != nil {
		return nil, err
	}
	return procs, nil
}

// FindOutstanding finds completed procurements that are not fully paid,
// oldest payment due first. Feeds the payment aging view.
func (r *GormProcurementRepository) FindOutstanding(ctx context.Context, tenantID uuid.UUID) ([]procurement.Procurement, error) {
	var procs []procurement.Procurement
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ? AND paid_amount < total_amount", tenantID, procurement.StatusCompleted).
		Order("payment_due ASC NULLS LAST").
		Find(&procs).Error; err != nil {
		return nil, err
	}
	return procs, nil
}

// CountForTenant counts procurements for a tenant matching the filter
func (r *GormProcurementRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&procurement.Procurement{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountActiveByPlan counts non-cancelled procurements attached to a plan.
// Used to refuse deleting plans that orders still reference.
func (r *GormProcurementRepository) CountActiveByPlan(ctx context.Context, tenantID, planID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&procurement.Procurement{}).
		Where("tenant_id = ? AND plan_id = ? AND status <> ?", tenantID, planID, procurement.StatusCancelled).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByOrderNumber checks whether the order number is taken within the tenant
func (r *GormProcurementRepository) ExistsByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&procurement.Procurement{}).
		Where("tenant_id = ? AND order_number = ?", tenantID, strings.ToUpper(orderNumber)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a procurement together with its items
func (r *GormProcurementRepository) Save(ctx context.Context, proc *procurement.Procurement) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(proc).Error
}

// Delete removes a procurement and its items
func (r *GormProcurementRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("procurement_id = ?", id).Delete(&procurement.ProcurementItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&procurement.Procurement{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormProcurementRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR supplier_name ILIKE ?", search, search)
	}
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if supplierID, ok := filter.Filters["supplier_id"].(string); ok && supplierID != "" {
		query = query.Where("supplier_id = ?", supplierID)
	}
	if planID, ok := filter.Filters["plan_id"].(string); ok && planID != "" {
		query = query.Where("plan_id = ?", planID)
	}
	return query
}

func (r *GormProcurementRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	sortField := ValidateSortField(filter.OrderBy, ProcurementSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	return query.Offset(filter.Offset()).Limit(filter.PageSize)
}

var _ procurement.Repository = (*GormProcurementRepository)(nil)
