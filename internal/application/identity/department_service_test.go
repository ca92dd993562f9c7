package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sppg/backend/internal/domain/identity"
	"github.com/sppg/backend/internal/domain/shared"
)

func TestDepartmentService_Create(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates department under an existing parent", func(t *testing.T) {
		repo := new(MockDepartmentRepository)
		service := NewDepartmentService(repo)

		parent, err := identity.NewDepartment(tenantID, "OPS", "Operations")
		require.NoError(t, err)

		repo.On("ExistsByCode", mock.Anything, tenantID, "KITCHEN").Return(false, nil)
		repo.On("FindByIDForTenant", mock.Anything, tenantID, parent.ID).Return(parent, nil)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(d *identity.Department) bool {
			return d.Code == "KITCHEN" && d.ParentID != nil && *d.ParentID == parent.ID
		})).Return(nil)

		resp, err := service.Create(context.Background(), tenantID, CreateDepartmentRequest{
			Code:     "KITCHEN",
			Name:     "Dapur Produksi",
			ParentID: &parent.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, "KITCHEN", resp.Code)
		require.NotNil(t, resp.ParentID)
		assert.Equal(t, parent.ID, *resp.ParentID)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		repo := new(MockDepartmentRepository)
		service := NewDepartmentService(repo)

		repo.On("ExistsByCode", mock.Anything, tenantID, "KITCHEN").Return(true, nil)

		_, err := service.Create(context.Background(), tenantID, CreateDepartmentRequest{
			Code: "KITCHEN",
			Name: "Dapur Produksi",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestDepartmentService_Update_Reparenting(t *testing.T) {
	tenantID := uuid.New()

	// root -> mid -> leaf
	root, err := identity.NewDepartment(tenantID, "ROOT", "Head Office")
	require.NoError(t, err)
	mid, err := identity.NewDepartment(tenantID, "MID", "Operations")
	require.NoError(t, err)
	require.NoError(t, mid.SetParent(&root.ID))
	leaf, err := identity.NewDepartment(tenantID, "LEAF", "Kitchen")
	require.NoError(t, err)
	require.NoError(t, leaf.SetParent(&mid.ID))

	t.Run("rejects moving a department under its own descendant", func(t *testing.T) {
		repo := new(MockDepartmentRepository)
		service := NewDepartmentService(repo)

		repo.On("FindByIDForTenant", mock.Anything, tenantID, root.ID).Return(root, nil)
		repo.On("FindByIDForTenant", mock.Anything, tenantID, leaf.ID).Return(leaf, nil)
		// Ancestor chain of the candidate parent: leaf -> mid -> root
		repo.On("ParentOf", mock.Anything, tenantID, leaf.ID).Return(&mid.ID, nil)
		repo.On("ParentOf", mock.Anything, tenantID, mid.ID).Return(&root.ID, nil)

		_, err := service.Update(context.Background(), tenantID, root.ID, UpdateDepartmentRequest{
			Name:     root.Name,
			ParentID: &leaf.ID,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CYCLE_DETECTED", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("allows moving a leaf under an unrelated department", func(t *testing.T) {
		repo := new(MockDepartmentRepository)
		service := NewDepartmentService(repo)

		other, err := identity.NewDepartment(tenantID, "FIN", "Finance")
		require.NoError(t, err)
		moved, err := identity.NewDepartment(tenantID, "QA", "Quality")
		require.NoError(t, err)

		repo.On("FindByIDForTenant", mock.Anything, tenantID, moved.ID).Return(moved, nil)
		repo.On("FindByIDForTenant", mock.Anything, tenantID, other.ID).Return(other, nil)
		repo.On("ParentOf", mock.Anything, tenantID, other.ID).Return(nil, nil)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(d *identity.Department) bool {
			return d.ParentID != nil && *d.ParentID == other.ID
		})).Return(nil)

		resp, err := service.Update(context.Background(), tenantID, moved.ID, UpdateDepartmentRequest{
			Name:     moved.Name,
			ParentID: &other.ID,
		})

		require.NoError(t, err)
		require.NotNil(t, resp.ParentID)
		assert.Equal(t, other.ID, *resp.ParentID)
		repo.AssertExpectations(t)
	})

	t.Run("surfaces corruption when the stored chain already cycles", func(t *testing.T) {
		repo := new(MockDepartmentRepository)
		service := NewDepartmentService(repo)

		a, err := identity.NewDepartment(tenantID, "AA", "A")
		require.NoError(t, err)
		b, err := identity.NewDepartment(tenantID, "BB", "B")
		require.NoError(t, err)
		target, err := identity.NewDepartment(tenantID, "CC", "C")
		require.NoError(t, err)

		repo.On("FindByIDForTenant", mock.Anything, tenantID, target.ID).Return(target, nil)
		repo.On("FindByIDForTenant", mock.Anything, tenantID, a.ID).Return(a, nil)
		// a -> b -> a, a stored cycle
		repo.On("ParentOf", mock.Anything, tenantID, a.ID).Return(&b.ID, nil)
		repo.On("ParentOf", mock.Anything, tenantID, b.ID).Return(&a.ID, nil)

		_, err = service.Update(context.Background(), tenantID, target.ID, UpdateDepartmentRequest{
			Name:     target.Name,
			ParentID: &a.ID,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "HIERARCHY_CORRUPT", domainErr.Code)
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	tenantID := uuid.New()

	t.Run("each blocking category refuses with its own error", func(t *testing.T) {
		tests := []struct {
			name     string
			usage    identity.DepartmentUsage
			wantCode string
		}{
			{"active employees", identity.DepartmentUsage{ActiveEmployees: 3}, "DEPARTMENT_HAS_EMPLOYEES"},
			{"child departments", identity.DepartmentUsage{ChildDepartments: 1}, "DEPARTMENT_HAS_CHILDREN"},
			{"positions", identity.DepartmentUsage{Positions: 2}, "DEPARTMENT_HAS_POSITIONS"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := new(MockDepartmentRepository)
				service := NewDepartmentService(repo)

				department, err := identity.NewDepartment(tenantID, "OPS", "Operations")
				require.NoError(t, err)

				repo.On("FindByIDForTenant", mock.Anything, tenantID, department.ID).Return(department, nil)
				repo.On("Usage", mock.Anything, tenantID, department.ID).Return(tt.usage, nil)

				err = service.Delete(context.Background(), tenantID, department.ID)

				require.Error(t, err)
				var domainErr *shared.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, tt.wantCode, domainErr.Code)
				repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("employees take precedence when several categories block", func(t *testing.T) {
		repo := new(MockDepartmentRepository)
		service := NewDepartmentService(repo)

		department, err := identity.NewDepartment(tenantID, "OPS", "Operations")
		require.NoError(t, err)

		repo.On("FindByIDForTenant", mock.Anything, tenantID, department.ID).Return(department, nil)
		repo.On("Usage", mock.Anything, tenantID, department.ID).Return(identity.DepartmentUsage{
			ActiveEmployees:  3,
			ChildDepartments: 1,
		}, nil)

		err = service.Delete(context.Background(), tenantID, department.ID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DEPARTMENT_HAS_EMPLOYEES", domainErr.Code)
	})

	t.Run("deletes when nothing references it", func(t *testing.T) {
		repo := new(MockDepartmentRepository)
		service := NewDepartmentService(repo)

		department, err := identity.NewDepartment(tenantID, "OPS", "Operations")
		require.NoError(t, err)

		repo.On("FindByIDForTenant", mock.Anything, tenantID, department.ID).Return(department, nil)
		repo.On("Usage", mock.Anything, tenantID, department.ID).Return(identity.DepartmentUsage{}, nil)
		repo.On("Delete", mock.Anything, tenantID, department.ID).Return(nil)

		require.NoError(t, service.Delete(context.Background(), tenantID, department.ID))
		repo.AssertExpectations(t)
	})
}
