package inventory

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sppg/backend/internal/domain/inventory"
	"github.com/sppg/backend/internal/domain/shared"
)

func TestImportItems_CreatesValidRows(t *testing.T) {
	repo := new(MockItemRepository)
	service := NewImportService(repo)
	tenantID := uuid.New()

	csv := strings.Join([]string{
		"code,name,category,unit,min_stock",
		"BRS-001,Beras Premium,STAPLE,kg,100",
		"AYM-001,Ayam Potong,PROTEIN,kg,",
	}, "\n")

	repo.On("ExistsByCode", mock.Anything, tenantID, "BRS-001").Return(false, nil)
	repo.On("ExistsByCode", mock.Anything, tenantID, "AYM-001").Return(false, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(item *inventory.InventoryItem) bool {
		return item.TenantID == tenantID
	})).Return(nil).Twice()

	result, err := service.ImportItems(context.Background(), tenantID, strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.ErrorRows)
	repo.AssertExpectations(t)
}

func TestImportItems_SkipsExistingCodes(t *testing.T) {
	repo := new(MockItemRepository)
	service := NewImportService(repo)
	tenantID := uuid.New()

	csv := "code,name,category,unit\nbrs-001,Beras Premium,STAPLE,kg\n"

	// code is normalized before the lookup
	repo.On("ExistsByCode", mock.Anything, tenantID, "BRS-001").Return(true, nil)

	result, err := service.ImportItems(context.Background(), tenantID, strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalRows)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	repo.AssertExpectations(t)
}

func TestImportItems_ReportsInvalidRows(t *testing.T) {
	repo := new(MockItemRepository)
	service := NewImportService(repo)
	tenantID := uuid.New()

	csv := strings.Join([]string{
		"code,name,category,unit",
		",Beras Premium,STAPLE,kg",
		"SYR-001,Sayur Bayam,NOT_A_CATEGORY,kg",
	}, "\n")

	result, err := service.ImportItems(context.Background(), tenantID, strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 2, result.ErrorRows)
	assert.NotEmpty(t, result.Errors)
	repo.AssertNotCalled(t, "Save")
}

func TestImportItems_MissingColumns(t *testing.T) {
	repo := new(MockItemRepository)
	service := NewImportService(repo)

	csv := "code,name\nBRS-001,Beras Premium\n"

	_, err := service.ImportItems(context.Background(), uuid.New(), strings.NewReader(csv))

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MISSING_COLUMNS", domainErr.Code)
}
