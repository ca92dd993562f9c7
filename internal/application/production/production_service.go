package production

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/inventory"
	"github.com/sppg/backend/internal/domain/production"
	"github.com/sppg/backend/internal/domain/shared"
)

// Notifier delivers best-effort notifications for workflow events
type Notifier interface {
	Broadcast(ctx context.Context, tenantID uuid.UUID, subject, body string)
}

// Service handles production batches and their stock consumption
type Service struct {
	repo     production.Repository
	itemRepo inventory.InventoryItemRepository
	txScope  TransactionScope
	notifier Notifier
}

// NewService creates a production Service
func NewService(repo production.Repository, itemRepo inventory.InventoryItemRepository, txScope TransactionScope, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		itemRepo: itemRepo,
		txScope:  txScope,
		notifier: notifier,
	}
}

// Create validates every ingredient line before any write, then creates the
// batch, its usages, the OUT movements and the stock decrements in one
// transaction. A shortfall on any line aborts with nothing written.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductionRequest) (*ProductionResponse, error) {
	exists, err := s.repo.ExistsByBatchNumber(ctx, tenantID, req.BatchNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Production with this batch number already exists")
	}

	// Pre-validation pass, read-only
	seen := make(map[uuid.UUID]bool, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if seen[ing.InventoryItemID] {
			return nil, shared.NewDomainError("DUPLICATE_INGREDIENT",
				fmt.Sprintf("Ingredient %s appears more than once", ing.InventoryItemID))
		}
		seen[ing.InventoryItemID] = true

		item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, ing.InventoryItemID)
		if err != nil {
			return nil, err
		}
		if !item.CanFulfill(ing.Quantity) {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Insufficient stock of %s: have %s, need %s",
					item.Name, item.CurrentStock.String(), ing.Quantity.String()))
		}
	}

	var response *ProductionResponse
	var lowStock []string
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		batch, err := production.NewFoodProduction(tenantID, req.BatchNumber, req.MenuName, req.ProductionDate, req.PlannedPortions)
		if err != nil {
			return err
		}
		batch.PlanID = req.PlanID
		batch.Notes = req.Notes
		if err := batch.Start(); err != nil {
			return err
		}

		for _, ing := range req.Ingredients {
			// Re-read under the row lock; the pre-validation numbers may be stale
			item, err := repos.ItemRepo().FindByIDForUpdate(ctx, tenantID, ing.InventoryItemID)
			if err != nil {
				return err
			}
			movement, err := item.ConsumeStock(ing.Quantity, inventory.ReferenceProduction, batch.BatchNumber)
			if err != nil {
				return err
			}
			if _, err := batch.RecordStockUsage(item.ID, item.Code, item.Name, item.Unit, ing.Quantity, movement.UnitCost); err != nil {
				return err
			}
			if err := repos.ItemRepo().Save(ctx, item); err != nil {
				return err
			}
			if err := repos.MovementRepo().Append(ctx, movement); err != nil {
				return err
			}
			if item.IsBelowMinimum() {
				lowStock = append(lowStock, item.Name)
			}
		}

		if err := repos.ProductionRepo().Save(ctx, batch); err != nil {
			return err
		}
		response = toProductionResponse(batch)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(lowStock) > 0 && s.notifier != nil {
		s.notifier.Broadcast(ctx, tenantID, "Stok menipis",
			fmt.Sprintf("Stok di bawah minimum setelah produksi %s: %v", response.BatchNumber, lowStock))
	}
	return response, nil
}

// Complete finalizes a batch with actual portions and overhead costs
func (s *Service) Complete(ctx context.Context, tenantID, productionID uuid.UUID, req CompleteProductionRequest) (*ProductionResponse, error) {
	batch, err := s.repo.FindByIDForTenant(ctx, tenantID, productionID)
	if err != nil {
		return nil, err
	}
	if err := batch.Complete(req.ActualPortions, req.LaborCost, req.UtilityCost, req.OtherCosts); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, batch); err != nil {
		return nil, err
	}
	return toProductionResponse(batch), nil
}

// Cancel terminates a batch and returns its consumed stock to inventory
// with compensating IN movements.
func (s *Service) Cancel(ctx context.Context, tenantID, productionID uuid.UUID) (*ProductionResponse, error) {
	var response *ProductionResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		batch, err := repos.ProductionRepo().FindByIDForUpdate(ctx, tenantID, productionID)
		if err != nil {
			return err
		}
		if err := batch.Cancel(); err != nil {
			return err
		}

		for _, usage := range batch.StockUsages {
			item, err := repos.ItemRepo().FindByIDForUpdate(ctx, tenantID, usage.InventoryItemID)
			if err != nil {
				return err
			}
			movement, err := item.ReceiveStock(usage.Quantity, usage.UnitCost, inventory.ReferenceProduction, batch.BatchNumber)
			if err != nil {
				return err
			}
			movement.Notes = "Production cancelled, stock returned"
			if err := repos.ItemRepo().Save(ctx, item); err != nil {
				return err
			}
			if err := repos.MovementRepo().Append(ctx, movement); err != nil {
				return err
			}
		}

		if err := repos.ProductionRepo().Save(ctx, batch); err != nil {
			return err
		}
		response = toProductionResponse(batch)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// Get loads one batch
func (s *Service) Get(ctx context.Context, tenantID, productionID uuid.UUID) (*ProductionResponse, error) {
	batch, err := s.repo.FindByIDForTenant(ctx, tenantID, productionID)
	if err != nil {
		return nil, err
	}
	return toProductionResponse(batch), nil
}

// List returns a paginated batch listing
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, f ListProductionsFilter) (*shared.Paginated[ProductionResponse], error) {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	filter.Search = f.Search
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}

	batches, err := s.repo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ProductionResponse, 0, len(batches))
	for idx := range batches {
		responses = append(responses, *toProductionResponse(&batches[idx]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}
