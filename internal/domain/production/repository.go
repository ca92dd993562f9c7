package production

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/shared"
)

// Repository defines persistence operations for production batches
type Repository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*FoodProduction, error)
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*FoodProduction, error)
	FindByBatchNumber(ctx context.Context, tenantID uuid.UUID, batchNumber string) (*FoodProduction, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]FoodProduction, error)
	FindByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]FoodProduction, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByBatchNumber(ctx context.Context, tenantID uuid.UUID, batchNumber string) (bool, error)
	Save(ctx context.Context, production *FoodProduction) error
}
