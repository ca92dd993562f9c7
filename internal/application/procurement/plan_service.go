package procurement

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/procurement"
	"github.com/sppg/backend/internal/domain/shared"
)

// PlanService handles the procurement plan lifecycle
type PlanService struct {
	planRepo procurement.PlanRepository
	orderRepo procurement.Repository
	notifier Notifier
}

// NewPlanService creates a PlanService
func NewPlanService(planRepo procurement.PlanRepository, orderRepo procurement.Repository, notifier Notifier) *PlanService {
	return &PlanService{
		planRepo:  planRepo,
		orderRepo: orderRepo,
		notifier:  notifier,
	}
}

// Create creates a draft plan
func (s *PlanService) Create(ctx context.Context, tenantID uuid.UUID, req PlanRequest) (*PlanResponse, error) {
	plan, err := procurement.NewPlan(tenantID, req.Name, req.Description, req.PeriodStart, req.PeriodEnd, req.TotalBudget)
	if err != nil {
		return nil, err
	}
	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// Update revises an editable plan
func (s *PlanService) Update(ctx context.Context, tenantID, planID uuid.UUID, req PlanRequest) (*PlanResponse, error) {
	plan, err := s.planRepo.FindByIDForTenant(ctx, tenantID, planID)
	if err != nil {
		return nil, err
	}
	if err := plan.Update(req.Name, req.Description, req.PeriodStart, req.PeriodEnd, req.TotalBudget); err != nil {
		return nil, err
	}
	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// Get loads one plan
func (s *PlanService) Get(ctx context.Context, tenantID, planID uuid.UUID) (*PlanResponse, error) {
	plan, err := s.planRepo.FindByIDForTenant(ctx, tenantID, planID)
	if err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// List returns a paginated plan listing
func (s *PlanService) List(ctx context.Context, tenantID uuid.UUID, page, pageSize int) (*shared.Paginated[PlanResponse], error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	plans, err := s.planRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.planRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]PlanResponse, 0, len(plans))
	for idx := range plans {
		responses = append(responses, *toPlanResponse(&plans[idx]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Submit moves a plan to SUBMITTED
func (s *PlanService) Submit(ctx context.Context, tenantID, planID uuid.UUID) (*PlanResponse, error) {
	return s.mutate(ctx, tenantID, planID, func(plan *procurement.Plan) error {
		return plan.Submit()
	})
}

// Approve approves a submitted plan and notifies the organization
func (s *PlanService) Approve(ctx context.Context, tenantID, planID, approverID uuid.UUID) (*PlanResponse, error) {
	resp, err := s.mutate(ctx, tenantID, planID, func(plan *procurement.Plan) error {
		return plan.Approve(approverID)
	})
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.Broadcast(ctx, tenantID, "Rencana pengadaan disetujui",
			fmt.Sprintf("Rencana %q disetujui dengan anggaran %s", resp.Name, resp.TotalBudget.String()))
	}
	return resp, nil
}

// Reject sends a plan back with a reason and notifies the organization
func (s *PlanService) Reject(ctx context.Context, tenantID, planID uuid.UUID, req RejectPlanRequest) (*PlanResponse, error) {
	resp, err := s.mutate(ctx, tenantID, planID, func(plan *procurement.Plan) error {
		return plan.Reject(req.Reason)
	})
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.Broadcast(ctx, tenantID, "Rencana pengadaan ditolak",
			fmt.Sprintf("Rencana %q ditolak: %s", resp.Name, req.Reason))
	}
	return resp, nil
}

// Cancel terminates a plan. Blocked while any linked procurement is still
// active.
func (s *PlanService) Cancel(ctx context.Context, tenantID, planID uuid.UUID) (*PlanResponse, error) {
	active, err := s.orderRepo.CountActiveByPlan(ctx, tenantID, planID)
	if err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, shared.NewDomainError("PLAN_IN_USE",
			fmt.Sprintf("Cannot cancel plan: %d active procurements are linked to it", active))
	}
	return s.mutate(ctx, tenantID, planID, func(plan *procurement.Plan) error {
		return plan.Cancel()
	})
}

// Delete removes a draft plan with no linked procurements. Non-draft plans
// are cancelled instead of removed so their history survives.
func (s *PlanService) Delete(ctx context.Context, tenantID, planID uuid.UUID) error {
	plan, err := s.planRepo.FindByIDForTenant(ctx, tenantID, planID)
	if err != nil {
		return err
	}
	active, err := s.orderRepo.CountActiveByPlan(ctx, tenantID, planID)
	if err != nil {
		return err
	}
	if active > 0 {
		return shared.NewDomainError("PLAN_IN_USE",
			fmt.Sprintf("Cannot delete plan: %d active procurements are linked to it", active))
	}
	if plan.Status != procurement.PlanDraft {
		if err := plan.Cancel(); err != nil {
			return err
		}
		return s.planRepo.Save(ctx, plan)
	}
	return s.planRepo.Delete(ctx, tenantID, planID)
}

func (s *PlanService) mutate(ctx context.Context, tenantID, planID uuid.UUID, mutate func(*procurement.Plan) error) (*PlanResponse, error) {
	plan, err := s.planRepo.FindByIDForTenant(ctx, tenantID, planID)
	if err != nil {
		return nil, err
	}
	if err := mutate(plan); err != nil {
		return nil, err
	}
	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}
