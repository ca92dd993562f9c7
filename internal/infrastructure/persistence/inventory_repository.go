package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sppg/backend/internal/domain/inventory"
	"github.com/sppg/backend/internal/domain/shared"
)

// GormInventoryItemRepository implements InventoryItemRepository using GORM
type GormInventoryItemRepository struct {
	db *gorm.DB
}

// NewGormInventoryItemRepository creates a new GormInventoryItemRepository
func NewGormInventoryItemRepository(db *gorm.DB) *GormInventoryItemRepository {
	return &GormInventoryItemRepository{db: db}
}

// FindByIDForTenant finds an inventory item by ID within a tenant
func (r *GormInventoryItemRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.InventoryItem, error) {
	var item inventory.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByIDForUpdate loads the item with a FOR UPDATE row lock. Must run
// inside a transaction.
func (r *GormInventoryItemRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*inventory.InventoryItem, error) {
	var item inventory.InventoryItem
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByCode finds an inventory item by its code within a tenant
func (r *GormInventoryItemRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*inventory.InventoryItem, error) {
	var item inventory.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAllForTenant finds all inventory items for a tenant matching the filter
func (r *GormInventoryItemRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.InventoryItem, error) {
	var items []inventory.InventoryItem
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.InventoryItem{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindBelowMinimum finds active items whose balance is under the alert threshold
func (r *GormInventoryItemRepository) FindBelowMinimum(ctx context.Context, tenantID uuid.UUID) ([]inventory.InventoryItem, error) {
	var items []inventory.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ? AND min_stock > 0 AND current_stock < min_stock", tenantID, true).
		Order("code ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CountForTenant counts inventory items for a tenant matching the filter
func (r *GormInventoryItemRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&inventory.InventoryItem{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks whether an item with the code exists within the tenant
func (r *GormInventoryItemRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.InventoryItem{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an inventory item
func (r *GormInventoryItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// applyConditions applies the filter conditions without pagination, shared by
// listing and counting
func (r *GormInventoryItemRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", search, search)
	}
	if category, ok := filter.Filters["category"].(string); ok && category != "" {
		query = query.Where("category = ?", category)
	}
	if active, ok := filter.Filters["is_active"].(bool); ok {
		query = query.Where("is_active = ?", active)
	}
	if below, ok := filter.Filters["below_minimum"].(bool); ok && below {
		query = query.Where("min_stock > 0 AND current_stock < min_stock")
	}
	return query
}

func (r *GormInventoryItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	sortField := ValidateSortField(filter.OrderBy, InventoryItemSortFields, "code")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	if sortField == "code" && filter.OrderBy == "" {
		sortOrder = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	return query.Offset(filter.Offset()).Limit(filter.PageSize)
}

// GormStockMovementRepository implements the append-only stock ledger store.
// Movements are inserted once and never updated or deleted.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Append inserts a new movement into the ledger
func (r *GormStockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByItem finds movements for one item, newest first by default
func (r *GormStockMovementRepository) FindByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Where("tenant_id = ? AND inventory_item_id = ?", tenantID, itemID)

	if movementType, ok := filter.Filters["movement_type"].(string); ok && movementType != "" {
		query = query.Where("movement_type = ?", movementType)
	}

	sortField := ValidateSortField(filter.OrderBy, StockMovementSortFields, "movement_date")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if err := query.Offset(filter.Offset()).Limit(filter.PageSize).Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByReference finds all movements posted for a reference document
func (r *GormStockMovementRepository) FindByReference(ctx context.Context, tenantID uuid.UUID, refType inventory.ReferenceType, refID string) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND reference_type = ? AND reference_id = ?", tenantID, refType, refID).
		Order("movement_date ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// CountByReference counts movements posted for a reference document
func (r *GormStockMovementRepository) CountByReference(ctx context.Context, tenantID uuid.UUID, refType inventory.ReferenceType, refID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Where("tenant_id = ? AND reference_type = ? AND reference_id = ?", tenantID, refType, refID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NetPostedByReference sums the quantity already posted for one item under a
// reference document, OUT movements counted negative
func (r *GormStockMovementRepository) NetPostedByReference(ctx context.Context, tenantID, itemID uuid.UUID, refType inventory.ReferenceType, refID string) (decimal.Decimal, error) {
	var net decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Select("SUM(CASE WHEN movement_type = ? THEN quantity ELSE -quantity END)", inventory.MovementIn).
		Where("tenant_id = ? AND inventory_item_id = ? AND reference_type = ? AND reference_id = ?",
			tenantID, itemID, refType, refID).
		Scan(&net).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !net.Valid {
		return decimal.Zero, nil
	}
	return net.Decimal, nil
}

// CountByItem counts movements recorded against an item
func (r *GormStockMovementRepository) CountByItem(ctx context.Context, tenantID, itemID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Where("tenant_id = ? AND inventory_item_id = ?", tenantID, itemID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ inventory.InventoryItemRepository = (*GormInventoryItemRepository)(nil)
var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
