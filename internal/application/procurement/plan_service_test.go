package procurement

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sppg/backend/internal/domain/procurement"
)

func newPlanServiceUnderTest() (*PlanService, *MockPlanRepository, *MockProcurementRepository, *MockNotifier) {
	planRepo := new(MockPlanRepository)
	orderRepo := new(MockProcurementRepository)
	notifier := new(MockNotifier)
	return NewPlanService(planRepo, orderRepo, notifier), planRepo, orderRepo, notifier
}

func draftPlan(t *testing.T, tenantID uuid.UUID, budget int64) *procurement.Plan {
	t.Helper()
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	plan, err := procurement.NewPlan(tenantID, "Rencana Juli", "", start, start.AddDate(0, 1, 0), decimal.NewFromInt(budget))
	require.NoError(t, err)
	return plan
}

func TestPlanService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, planRepo, _, _ := newPlanServiceUnderTest()

	planRepo.On("Save", ctx, mock.AnythingOfType("*procurement.Plan")).Return(nil)

	start := time.Now()
	resp, err := svc.Create(ctx, tenantID, PlanRequest{
		Name: "Rencana Juli", PeriodStart: start, PeriodEnd: start.AddDate(0, 1, 0),
		TotalBudget: decimal.NewFromInt(50_000_000),
	})
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", resp.Status)
	assert.True(t, resp.RemainingBudget.Equal(decimal.NewFromInt(50_000_000)))
}

func TestPlanService_SubmitZeroBudget(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, planRepo, _, _ := newPlanServiceUnderTest()
	plan := draftPlan(t, tenantID, 0)

	planRepo.On("FindByIDForTenant", ctx, tenantID, plan.ID).Return(plan, nil)

	_, err := svc.Submit(ctx, tenantID, plan.ID)
	require.Error(t, err)
	planRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPlanService_ApproveNotifies(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, planRepo, _, notifier := newPlanServiceUnderTest()
	plan := draftPlan(t, tenantID, 1000)
	require.NoError(t, plan.Submit())

	planRepo.On("FindByIDForTenant", ctx, tenantID, plan.ID).Return(plan, nil)
	planRepo.On("Save", ctx, plan).Return(nil)
	notifier.On("Broadcast", ctx, tenantID, mock.Anything, mock.Anything).Return()

	resp, err := svc.Approve(ctx, tenantID, plan.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", resp.Status)
	notifier.AssertCalled(t, "Broadcast", ctx, tenantID, mock.Anything, mock.Anything)
}

func TestPlanService_CancelBlockedByActiveOrders(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, planRepo, orderRepo, _ := newPlanServiceUnderTest()
	plan := draftPlan(t, tenantID, 1000)

	orderRepo.On("CountActiveByPlan", ctx, tenantID, plan.ID).Return(int64(2), nil)

	_, err := svc.Cancel(ctx, tenantID, plan.ID)
	require.Error(t, err)
	planRepo.AssertNotCalled(t, "FindByIDForTenant", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlanService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("draft plan is removed", func(t *testing.T) {
		svc, planRepo, orderRepo, _ := newPlanServiceUnderTest()
		plan := draftPlan(t, tenantID, 1000)

		planRepo.On("FindByIDForTenant", ctx, tenantID, plan.ID).Return(plan, nil)
		orderRepo.On("CountActiveByPlan", ctx, tenantID, plan.ID).Return(int64(0), nil)
		planRepo.On("Delete", ctx, tenantID, plan.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, tenantID, plan.ID))
		planRepo.AssertCalled(t, "Delete", ctx, tenantID, plan.ID)
	})

	t.Run("approved plan is cancelled instead", func(t *testing.T) {
		svc, planRepo, orderRepo, _ := newPlanServiceUnderTest()
		plan := draftPlan(t, tenantID, 1000)
		require.NoError(t, plan.Submit())
		require.NoError(t, plan.Approve(uuid.New()))

		planRepo.On("FindByIDForTenant", ctx, tenantID, plan.ID).Return(plan, nil)
		orderRepo.On("CountActiveByPlan", ctx, tenantID, plan.ID).Return(int64(0), nil)
		planRepo.On("Save", ctx, plan).Return(nil)

		require.NoError(t, svc.Delete(ctx, tenantID, plan.ID))
		assert.Equal(t, procurement.PlanCancelled, plan.Status)
		planRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}
