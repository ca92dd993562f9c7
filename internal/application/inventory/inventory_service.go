package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/inventory"
	"github.com/sppg/backend/internal/domain/shared"
)

// Service handles inventory item and ledger operations
type Service struct {
	itemRepo     inventory.InventoryItemRepository
	movementRepo inventory.StockMovementRepository
	txScope      TransactionScope
}

// NewService creates an inventory Service
func NewService(itemRepo inventory.InventoryItemRepository, movementRepo inventory.StockMovementRepository, txScope TransactionScope) *Service {
	return &Service{
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
		txScope:      txScope,
	}
}

// CreateItem creates a new inventory item with a tenant-unique code
func (s *Service) CreateItem(ctx context.Context, tenantID uuid.UUID, req CreateItemRequest) (*ItemResponse, error) {
	exists, err := s.itemRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Item with this code already exists")
	}

	item, err := inventory.NewInventoryItem(tenantID, req.Code, req.Name, inventory.ItemCategory(req.Category), req.Unit)
	if err != nil {
		return nil, err
	}
	if !req.MinStock.IsZero() {
		if err := item.SetMinStock(req.MinStock); err != nil {
			return nil, err
		}
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// UpdateItem changes item master data
func (s *Service) UpdateItem(ctx context.Context, tenantID, itemID uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	if err := item.Update(req.Name, inventory.ItemCategory(req.Category), req.Unit); err != nil {
		return nil, err
	}
	if err := item.SetMinStock(req.MinStock); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetItem loads one item
func (s *Service) GetItem(ctx context.Context, tenantID, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// ListItems returns a paginated item listing
func (s *Service) ListItems(ctx context.Context, tenantID uuid.UUID, f ListItemsFilter) (*shared.Paginated[ItemResponse], error) {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	filter.Search = f.Search
	filter.OrderBy = f.OrderBy
	filter.OrderDir = f.OrderDir
	if f.Category != "" {
		filter.Filters["category"] = f.Category
	}
	if f.BelowMinimum != nil && *f.BelowMinimum {
		filter.Filters["below_minimum"] = true
	}

	items, err := s.itemRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.itemRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ItemResponse, 0, len(items))
	for idx := range items {
		responses = append(responses, *toItemResponse(&items[idx]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// LowStock lists active items at or below their minimum
func (s *Service) LowStock(ctx context.Context, tenantID uuid.UUID) ([]ItemResponse, error) {
	items, err := s.itemRepo.FindBelowMinimum(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	responses := make([]ItemResponse, 0, len(items))
	for idx := range items {
		responses = append(responses, *toItemResponse(&items[idx]))
	}
	return responses, nil
}

// AdjustStock corrects the balance after a stock take. The item update and
// the ledger append happen in one transaction; the item row is locked so the
// before/after chain cannot interleave with other writers.
func (s *Service) AdjustStock(ctx context.Context, tenantID, itemID uuid.UUID, req AdjustStockRequest) (*MovementResponse, error) {
	var response *MovementResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.ItemRepo().FindByIDForUpdate(ctx, tenantID, itemID)
		if err != nil {
			return err
		}
		movement, err := item.AdjustStock(req.ActualQuantity, req.Reason)
		if err != nil {
			return err
		}
		if err := repos.ItemRepo().Save(ctx, item); err != nil {
			return err
		}
		if err := repos.MovementRepo().Append(ctx, movement); err != nil {
			return err
		}
		r := toMovementResponse(movement)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// ListMovements returns the ledger for one item, newest first
func (s *Service) ListMovements(ctx context.Context, tenantID, itemID uuid.UUID, page, pageSize int) (*shared.Paginated[MovementResponse], error) {
	if _, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID); err != nil {
		return nil, err
	}
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	movements, err := s.movementRepo.FindByItem(ctx, tenantID, itemID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.movementRepo.CountByItem(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}

	responses := make([]MovementResponse, 0, len(movements))
	for idx := range movements {
		responses = append(responses, toMovementResponse(&movements[idx]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// DeactivateItem soft-deletes an item; history stays queryable
func (s *Service) DeactivateItem(ctx context.Context, tenantID, itemID uuid.UUID) error {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return err
	}
	if err := item.Deactivate(); err != nil {
		return err
	}
	return s.itemRepo.Save(ctx, item)
}
