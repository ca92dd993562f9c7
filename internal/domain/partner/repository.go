package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/shared"
)

// SupplierRepository defines persistence operations for suppliers
type SupplierRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Supplier, error)
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Supplier, error)
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Supplier, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Supplier, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, supplier *Supplier) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// SupplierRatingRepository stores individual rating events
type SupplierRatingRepository interface {
	Save(ctx context.Context, rating *SupplierRating) error
	FindBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID, filter shared.Filter) ([]SupplierRating, error)
}
