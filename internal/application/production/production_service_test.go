package production

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sppg/backend/internal/domain/inventory"
	"github.com/sppg/backend/internal/domain/production"
	"github.com/sppg/backend/internal/domain/shared"
)

// MockProductionRepository is a mock implementation of production.Repository
type MockProductionRepository struct {
	mock.Mock
}

func (m *MockProductionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*production.FoodProduction, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.FoodProduction), args.Error(1)
}

func (m *MockProductionRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*production.FoodProduction, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.FoodProduction), args.Error(1)
}

func (m *MockProductionRepository) FindByBatchNumber(ctx context.Context, tenantID uuid.UUID, batchNumber string) (*production.FoodProduction, error) {
	args := m.Called(ctx, tenantID, batchNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.FoodProduction), args.Error(1)
}

func (m *MockProductionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]production.FoodProduction, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]production.FoodProduction), args.Error(1)
}

func (m *MockProductionRepository) FindByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]production.FoodProduction, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).([]production.FoodProduction), args.Error(1)
}

func (m *MockProductionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductionRepository) ExistsByBatchNumber(ctx context.Context, tenantID uuid.UUID, batchNumber string) (bool, error) {
	args := m.Called(ctx, tenantID, batchNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductionRepository) Save(ctx context.Context, p *production.FoodProduction) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockItemRepository is a mock implementation of inventory.InventoryItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.InventoryItem, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*inventory.InventoryItem, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*inventory.InventoryItem, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.InventoryItem, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]inventory.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) FindBelowMinimum(ctx context.Context, tenantID uuid.UUID) ([]inventory.InventoryItem, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]inventory.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockMovementRepository is a mock implementation of inventory.StockMovementRepository
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) FindByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, tenantID, itemID, filter)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockMovementRepository) FindByReference(ctx context.Context, tenantID uuid.UUID, refType inventory.ReferenceType, refID string) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, tenantID, refType, refID)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockMovementRepository) CountByReference(ctx context.Context, tenantID uuid.UUID, refType inventory.ReferenceType, refID string) (int64, error) {
	args := m.Called(ctx, tenantID, refType, refID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMovementRepository) NetPostedByReference(ctx context.Context, tenantID, itemID uuid.UUID, refType inventory.ReferenceType, refID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, itemID, refType, refID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockMovementRepository) CountByItem(ctx context.Context, tenantID, itemID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, itemID)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotifier records broadcast calls
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Broadcast(ctx context.Context, tenantID uuid.UUID, subject, body string) {
	m.Called(ctx, tenantID, subject, body)
}

func newServiceUnderTest() (*Service, *MockProductionRepository, *MockItemRepository, *MockMovementRepository, *MockNotifier) {
	prodRepo := new(MockProductionRepository)
	itemRepo := new(MockItemRepository)
	movementRepo := new(MockMovementRepository)
	notifier := new(MockNotifier)
	scope := NewNoOpTransactionScope(prodRepo, itemRepo, movementRepo)
	return NewService(prodRepo, itemRepo, scope, notifier), prodRepo, itemRepo, movementRepo, notifier
}

func stockedItem(t *testing.T, tenantID uuid.UUID, code string, qty, cost int64) *inventory.InventoryItem {
	t.Helper()
	item, err := inventory.NewInventoryItem(tenantID, code, "Bahan "+code, inventory.CategoryStaple, "kg")
	require.NoError(t, err)
	_, err = item.ReceiveStock(decimal.NewFromInt(qty), decimal.NewFromInt(cost), inventory.ReferenceProcurement, "PO-SEED")
	require.NoError(t, err)
	return item
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("consumes stock and accumulates ingredient cost", func(t *testing.T) {
		svc, prodRepo, itemRepo, movementRepo, _ := newServiceUnderTest()
		rice := stockedItem(t, tenantID, "RICE-01", 100, 10)
		chicken := stockedItem(t, tenantID, "CHK-01", 50, 35)

		prodRepo.On("ExistsByBatchNumber", ctx, tenantID, "PRD-001").Return(false, nil)
		itemRepo.On("FindByIDForTenant", ctx, tenantID, rice.ID).Return(rice, nil)
		itemRepo.On("FindByIDForTenant", ctx, tenantID, chicken.ID).Return(chicken, nil)
		itemRepo.On("FindByIDForUpdate", ctx, tenantID, rice.ID).Return(rice, nil)
		itemRepo.On("FindByIDForUpdate", ctx, tenantID, chicken.ID).Return(chicken, nil)
		itemRepo.On("Save", ctx, mock.AnythingOfType("*inventory.InventoryItem")).Return(nil)
		movementRepo.On("Append", ctx, mock.MatchedBy(func(mv *inventory.StockMovement) bool {
			return mv.MovementType == inventory.MovementOut && mv.ReferenceID == "PRD-001"
		})).Return(nil).Twice()
		prodRepo.On("Save", ctx, mock.AnythingOfType("*production.FoodProduction")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateProductionRequest{
			BatchNumber:     "PRD-001",
			MenuName:        "Nasi Ayam",
			ProductionDate:  time.Now(),
			PlannedPortions: 500,
			Ingredients: []IngredientRequest{
				{InventoryItemID: rice.ID, Quantity: decimal.NewFromInt(50)},
				{InventoryItemID: chicken.ID, Quantity: decimal.NewFromInt(30)},
			},
		})
		require.NoError(t, err)
		// 50*10 + 30*35 = 1550
		assert.True(t, resp.IngredientCost.Equal(decimal.NewFromInt(1550)))
		assert.True(t, rice.CurrentStock.Equal(decimal.NewFromInt(50)))
		assert.True(t, chicken.CurrentStock.Equal(decimal.NewFromInt(20)))
		movementRepo.AssertExpectations(t)
	})

	t.Run("shortfall aborts before any write", func(t *testing.T) {
		svc, prodRepo, itemRepo, movementRepo, _ := newServiceUnderTest()
		rice := stockedItem(t, tenantID, "RICE-01", 10, 10)

		prodRepo.On("ExistsByBatchNumber", ctx, tenantID, "PRD-002").Return(false, nil)
		itemRepo.On("FindByIDForTenant", ctx, tenantID, rice.ID).Return(rice, nil)

		_, err := svc.Create(ctx, tenantID, CreateProductionRequest{
			BatchNumber:     "PRD-002",
			MenuName:        "Nasi Ayam",
			ProductionDate:  time.Now(),
			PlannedPortions: 500,
			Ingredients: []IngredientRequest{
				{InventoryItemID: rice.ID, Quantity: decimal.NewFromInt(50)},
			},
		})
		require.Error(t, err)
		assert.True(t, rice.CurrentStock.Equal(decimal.NewFromInt(10)))
		itemRepo.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
		movementRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		prodRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("duplicate ingredient lines rejected", func(t *testing.T) {
		svc, prodRepo, itemRepo, _, _ := newServiceUnderTest()
		rice := stockedItem(t, tenantID, "RICE-01", 100, 10)

		prodRepo.On("ExistsByBatchNumber", ctx, tenantID, "PRD-003").Return(false, nil)
		itemRepo.On("FindByIDForTenant", ctx, tenantID, rice.ID).Return(rice, nil)

		_, err := svc.Create(ctx, tenantID, CreateProductionRequest{
			BatchNumber:     "PRD-003",
			MenuName:        "Nasi Ayam",
			ProductionDate:  time.Now(),
			PlannedPortions: 100,
			Ingredients: []IngredientRequest{
				{InventoryItemID: rice.ID, Quantity: decimal.NewFromInt(10)},
				{InventoryItemID: rice.ID, Quantity: decimal.NewFromInt(5)},
			},
		})
		require.Error(t, err)
	})

	t.Run("duplicate batch number rejected", func(t *testing.T) {
		svc, prodRepo, _, _, _ := newServiceUnderTest()
		prodRepo.On("ExistsByBatchNumber", ctx, tenantID, "PRD-001").Return(true, nil)

		_, err := svc.Create(ctx, tenantID, CreateProductionRequest{
			BatchNumber:     "PRD-001",
			MenuName:        "Nasi Ayam",
			ProductionDate:  time.Now(),
			PlannedPortions: 100,
			Ingredients: []IngredientRequest{
				{InventoryItemID: uuid.New(), Quantity: decimal.NewFromInt(1)},
			},
		})
		require.Error(t, err)
	})
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	svc, prodRepo, itemRepo, movementRepo, _ := newServiceUnderTest()
	rice := stockedItem(t, tenantID, "RICE-01", 100, 10)

	batch, err := production.NewFoodProduction(tenantID, "PRD-005", "Nasi Ayam", time.Now(), 100)
	require.NoError(t, err)
	require.NoError(t, batch.Start())
	_, err = batch.RecordStockUsage(rice.ID, rice.Code, rice.Name, rice.Unit, decimal.NewFromInt(40), decimal.NewFromInt(10))
	require.NoError(t, err)
	_, err = rice.ConsumeStock(decimal.NewFromInt(40), inventory.ReferenceProduction, batch.BatchNumber)
	require.NoError(t, err)

	prodRepo.On("FindByIDForUpdate", ctx, tenantID, batch.ID).Return(batch, nil)
	itemRepo.On("FindByIDForUpdate", ctx, tenantID, rice.ID).Return(rice, nil)
	itemRepo.On("Save", ctx, rice).Return(nil)
	movementRepo.On("Append", ctx, mock.MatchedBy(func(mv *inventory.StockMovement) bool {
		return mv.MovementType == inventory.MovementIn && mv.Quantity.Equal(decimal.NewFromInt(40))
	})).Return(nil)
	prodRepo.On("Save", ctx, batch).Return(nil)

	resp, err := svc.Cancel(ctx, tenantID, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
	assert.True(t, rice.CurrentStock.Equal(decimal.NewFromInt(100)))
}
