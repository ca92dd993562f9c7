package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/partner"
	"github.com/sppg/backend/internal/domain/shared"
)

// SupplierService handles supplier master data and ratings
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	ratingRepo   partner.SupplierRatingRepository
}

// NewSupplierService creates a SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository, ratingRepo partner.SupplierRatingRepository) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		ratingRepo:   ratingRepo,
	}
}

// Create creates a supplier with a tenant-unique code
func (s *SupplierService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSupplierRequest) (*SupplierResponse, error) {
	exists, err := s.supplierRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Supplier with this code already exists")
	}

	supplier, err := partner.NewSupplier(tenantID, req.Code, req.Name, partner.SupplierCategory(req.Category))
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(req.Name, req.ContactName, req.Phone, req.Email, req.Address, req.City, req.Province); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// Update changes supplier master data
func (s *SupplierService) Update(ctx context.Context, tenantID, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(req.Name, req.ContactName, req.Phone, req.Email, req.Address, req.City, req.Province); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// Get loads one supplier
func (s *SupplierService) Get(ctx context.Context, tenantID, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// List returns a paginated supplier listing
func (s *SupplierService) List(ctx context.Context, tenantID uuid.UUID, f ListSuppliersFilter) (*shared.Paginated[SupplierResponse], error) {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	filter.Search = f.Search
	if f.Category != "" {
		filter.Filters["category"] = f.Category
	}
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}

	suppliers, err := s.supplierRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.supplierRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]SupplierResponse, 0, len(suppliers))
	for idx := range suppliers {
		responses = append(responses, *toSupplierResponse(&suppliers[idx]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Rate stores one rating event and folds it into the supplier aggregates
func (s *SupplierService) Rate(ctx context.Context, tenantID, supplierID, ratedBy uuid.UUID, req RateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForUpdate(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}
	rating, err := partner.NewSupplierRating(tenantID, supplierID, ratedBy, req.ProcurementID, req.Score, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := supplier.AddRating(req.Score); err != nil {
		return nil, err
	}
	if err := s.ratingRepo.Save(ctx, rating); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// Deactivate marks the supplier inactive
func (s *SupplierService) Deactivate(ctx context.Context, tenantID, supplierID uuid.UUID) error {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return err
	}
	supplier.Deactivate()
	return s.supplierRepo.Save(ctx, supplier)
}
