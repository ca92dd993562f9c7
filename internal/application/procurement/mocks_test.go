package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/sppg/backend/internal/domain/inventory"
	"github.com/sppg/backend/internal/domain/partner"
	"github.com/sppg/backend/internal/domain/procurement"
	"github.com/sppg/backend/internal/domain/shared"
)

// MockProcurementRepository is a mock implementation of procurement.Repository
type MockProcurementRepository struct {
	mock.Mock
}

func (m *MockProcurementRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*procurement.Procurement, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.Procurement), args.Error(1)
}

func (m *MockProcurementRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*procurement.Procurement, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.Procurement), args.Error(1)
}

func (m *MockProcurementRepository) FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*procurement.Procurement, error) {
	args := m.Called(ctx, tenantID, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.Procurement), args.Error(1)
}

func (m *MockProcurementRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]procurement.Procurement, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]procurement.Procurement), args.Error(1)
}

func (m *MockProcurementRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status procurement.Status, filter shared.Filter) ([]procurement.Procurement, error) {
	args := m.Called(ctx, tenantID, status, filter)
	return args.Get(0).([]procurement.Procurement), args.Error(1)
}

func (m *MockProcurementRepository) FindOutstanding(ctx context.Context, tenantID uuid.UUID) ([]procurement.Procurement, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]procurement.Procurement), args.Error(1)
}

func (m *MockProcurementRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProcurementRepository) CountActiveByPlan(ctx context.Context, tenantID, planID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, planID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProcurementRepository) ExistsByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (bool, error) {
	args := m.Called(ctx, tenantID, orderNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockProcurementRepository) Save(ctx context.Context, p *procurement.Procurement) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProcurementRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockPlanRepository is a mock implementation of procurement.PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*procurement.Plan, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*procurement.Plan, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]procurement.Plan, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]procurement.Plan), args.Error(1)
}

func (m *MockPlanRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlanRepository) Save(ctx context.Context, plan *procurement.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockQCRepository is a mock implementation of procurement.QualityControlRepository
type MockQCRepository struct {
	mock.Mock
}

func (m *MockQCRepository) Save(ctx context.Context, qc *procurement.QualityControl) error {
	args := m.Called(ctx, qc)
	return args.Error(0)
}

func (m *MockQCRepository) FindByProcurement(ctx context.Context, tenantID, procurementID uuid.UUID) ([]procurement.QualityControl, error) {
	args := m.Called(ctx, tenantID, procurementID)
	return args.Get(0).([]procurement.QualityControl), args.Error(1)
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

// MockSupplierRepository is a mock implementation of partner.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*partner.Supplier, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockNotifier records broadcast calls
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Broadcast(ctx context.Context, tenantID uuid.UUID, subject, body string) {
	m.Called(ctx, tenantID, subject, body)
}

type serviceMocks struct {
	orderRepo    *MockProcurementRepository
	planRepo     *MockPlanRepository
	qcRepo       *MockQCRepository
	itemRepo     *MockItemRepository
	movementRepo *MockMovementRepository
	supplierRepo *MockSupplierRepository
	notifier     *MockNotifier
}

func newServiceUnderTest() (*Service, *serviceMocks) {
	m := &serviceMocks{
		orderRepo:    new(MockProcurementRepository),
		planRepo:     new(MockPlanRepository),
		qcRepo:       new(MockQCRepository),
		itemRepo:     new(MockItemRepository),
		movementRepo: new(MockMovementRepository),
		supplierRepo: new(MockSupplierRepository),
		notifier:     new(MockNotifier),
	}
	scope := NewNoOpTransactionScope(m.orderRepo, m.planRepo, m.qcRepo, m.itemRepo, m.movementRepo, m.supplierRepo)
	return NewService(m.orderRepo, m.qcRepo, scope, m.notifier), m
}
