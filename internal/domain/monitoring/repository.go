package monitoring

import (
	"context"

	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/shared"
)

// Repository defines persistence operations for monitoring reports
type Repository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Report, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Report, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, report *Report) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
