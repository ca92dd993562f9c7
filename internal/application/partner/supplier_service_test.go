package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sppg/backend/internal/domain/partner"
	"github.com/sppg/backend/internal/domain/shared"
)

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

type MockSupplierRatingRepository struct {
	mock.Mock
}

func (m *MockSupplierRatingRepository) Save(ctx context.Context, rating *partner.SupplierRating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockSupplierRatingRepository) FindBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID, filter shared.Filter) ([]partner.SupplierRating, error) {
	args := m.Called(ctx, tenantID, supplierID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.SupplierRating), args.Error(1)
}

func TestSupplierService_Create(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates supplier with unique code", func(t *testing.T) {
		supplierRepo := new(MockSupplierRepository)
		ratingRepo := new(MockSupplierRatingRepository)
		service := NewSupplierService(supplierRepo, ratingRepo)

		supplierRepo.On("ExistsByCode", mock.Anything, tenantID, "SUP-001").Return(false, nil)
		supplierRepo.On("Save", mock.Anything, mock.MatchedBy(func(s *partner.Supplier) bool {
			return s.Code == "SUP-001" && s.Name == "Tani Makmur" && s.Category == partner.SupplierCategoryFoodstuff
		})).Return(nil)

		resp, err := service.Create(context.Background(), tenantID, CreateSupplierRequest{
			Code:     "SUP-001",
			Name:     "Tani Makmur",
			Category: "FOODSTUFF",
			Phone:    "+628111111111",
			City:     "Bandung",
		})

		require.NoError(t, err)
		assert.Equal(t, "SUP-001", resp.Code)
		assert.Equal(t, "ACTIVE", resp.Status)
		assert.Equal(t, "Bandung", resp.City)
		supplierRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		supplierRepo := new(MockSupplierRepository)
		ratingRepo := new(MockSupplierRatingRepository)
		service := NewSupplierService(supplierRepo, ratingRepo)

		supplierRepo.On("ExistsByCode", mock.Anything, tenantID, "SUP-001").Return(true, nil)

		_, err := service.Create(context.Background(), tenantID, CreateSupplierRequest{
			Code:     "SUP-001",
			Name:     "Tani Makmur",
			Category: "FOODSTUFF",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		supplierRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		supplierRepo := new(MockSupplierRepository)
		ratingRepo := new(MockSupplierRatingRepository)
		service := NewSupplierService(supplierRepo, ratingRepo)

		supplierRepo.On("ExistsByCode", mock.Anything, tenantID, "SUP-002").Return(false, nil)

		_, err := service.Create(context.Background(), tenantID, CreateSupplierRequest{
			Code:     "SUP-002",
			Name:     "Unknown Co",
			Category: "LOGISTICS",
		})

		require.Error(t, err)
		supplierRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSupplierService_Rate(t *testing.T) {
	tenantID := uuid.New()
	raterID := uuid.New()

	t.Run("saves rating event and updates the average", func(t *testing.T) {
		supplierRepo := new(MockSupplierRepository)
		ratingRepo := new(MockSupplierRatingRepository)
		service := NewSupplierService(supplierRepo, ratingRepo)

		supplier, err := partner.NewSupplier(tenantID, "SUP-001", "Tani Makmur", partner.SupplierCategoryFoodstuff)
		require.NoError(t, err)
		require.NoError(t, supplier.AddRating(5))

		supplierRepo.On("FindByIDForUpdate", mock.Anything, tenantID, supplier.ID).Return(supplier, nil)
		ratingRepo.On("Save", mock.Anything, mock.MatchedBy(func(r *partner.SupplierRating) bool {
			return r.SupplierID == supplier.ID && r.Score == 4 && r.RatedBy == raterID
		})).Return(nil)
		supplierRepo.On("Save", mock.Anything, supplier).Return(nil)

		resp, err := service.Rate(context.Background(), tenantID, supplier.ID, raterID, RateSupplierRequest{
			Score:   4,
			Comment: "Pengiriman tepat waktu",
		})

		require.NoError(t, err)
		assert.Equal(t, 2, resp.RatingCount)
		assert.Equal(t, "4.5", resp.OverallRating.String())
		ratingRepo.AssertExpectations(t)
		supplierRepo.AssertExpectations(t)
	})

	t.Run("rejects score outside 1-5 without writes", func(t *testing.T) {
		supplierRepo := new(MockSupplierRepository)
		ratingRepo := new(MockSupplierRatingRepository)
		service := NewSupplierService(supplierRepo, ratingRepo)

		supplier, err := partner.NewSupplier(tenantID, "SUP-001", "Tani Makmur", partner.SupplierCategoryFoodstuff)
		require.NoError(t, err)

		supplierRepo.On("FindByIDForUpdate", mock.Anything, tenantID, supplier.ID).Return(supplier, nil)

		_, err = service.Rate(context.Background(), tenantID, supplier.ID, raterID, RateSupplierRequest{Score: 6})

		require.Error(t, err)
		ratingRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		supplierRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSupplierService_Deactivate(t *testing.T) {
	tenantID := uuid.New()

	supplierRepo := new(MockSupplierRepository)
	ratingRepo := new(MockSupplierRatingRepository)
	service := NewSupplierService(supplierRepo, ratingRepo)

	supplier, err := partner.NewSupplier(tenantID, "SUP-001", "Tani Makmur", partner.SupplierCategoryFoodstuff)
	require.NoError(t, err)

	supplierRepo.On("FindByIDForTenant", mock.Anything, tenantID, supplier.ID).Return(supplier, nil)
	supplierRepo.On("Save", mock.Anything, mock.MatchedBy(func(s *partner.Supplier) bool {
		return s.Status == partner.SupplierStatusInactive
	})).Return(nil)

	require.NoError(t, service.Deactivate(context.Background(), tenantID, supplier.ID))
	assert.False(t, supplier.CanReceiveOrders())
	supplierRepo.AssertExpectations(t)
}
