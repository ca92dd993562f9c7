package procurement

import (
	"context"

	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/shared"
)

// Repository defines persistence operations for procurement orders
type Repository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Procurement, error)
	// FindByIDForUpdate loads the procurement with a row-level lock. Must be
	// called inside a transaction.
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Procurement, error)
	FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*Procurement, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Procurement, error)
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status Status, filter shared.Filter) ([]Procurement, error)
	FindOutstanding(ctx context.Context, tenantID uuid.UUID) ([]Procurement, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	CountActiveByPlan(ctx context.Context, tenantID, planID uuid.UUID) (int64, error)
	ExistsByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (bool, error)
	Save(ctx context.Context, procurement *Procurement) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// PlanRepository defines persistence operations for procurement plans
type PlanRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Plan, error)
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Plan, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Plan, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// QualityControlRepository stores QC inspection records
type QualityControlRepository interface {
	Save(ctx context.Context, qc *QualityControl) error
	FindByProcurement(ctx context.Context, tenantID, procurementID uuid.UUID) ([]QualityControl, error)
}
