package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sppg/backend/internal/domain/inventory"
	"github.com/sppg/backend/internal/domain/shared"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormInventoryItemRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds existing item", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInventoryItemRepository(db)

		itemID := uuid.New()
		tenantID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "code", "name", "category", "unit", "current_stock", "min_stock", "cost_per_unit", "is_active"}).
			AddRow(itemID, tenantID, "BRS-001", "Beras Premium", "STAPLE", "kg", decimal.NewFromInt(120), decimal.NewFromInt(50), decimal.NewFromInt(14000), true)

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, itemID, 1).
			WillReturnRows(rows)

		item, err := repo.FindByIDForTenant(context.Background(), tenantID, itemID)

		require.NoError(t, err)
		assert.Equal(t, itemID, item.ID)
		assert.Equal(t, "BRS-001", item.Code)
		assert.True(t, item.CurrentStock.Equal(decimal.NewFromInt(120)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("translates missing row to NOT_FOUND", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInventoryItemRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "inventory_items"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByIDForTenant(context.Background(), uuid.New(), uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryItemRepository_FindByIDForUpdate(t *testing.T) {
	t.Run("locks the row", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInventoryItemRepository(db)

		itemID := uuid.New()
		tenantID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "code", "current_stock"}).
			AddRow(itemID, tenantID, "BRS-001", decimal.NewFromInt(120))

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE .* FOR UPDATE`).
			WithArgs(tenantID, itemID, 1).
			WillReturnRows(rows)

		item, err := repo.FindByIDForUpdate(context.Background(), tenantID, itemID)

		require.NoError(t, err)
		assert.Equal(t, itemID, item.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryItemRepository_ExistsByCode(t *testing.T) {
	t.Run("normalizes the code before matching", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInventoryItemRepository(db)

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "inventory_items" WHERE tenant_id = \$1 AND code = \$2`).
			WithArgs(tenantID, "BRS-001").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByCode(context.Background(), tenantID, "brs-001")

		require.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockMovementRepository_Append(t *testing.T) {
	t.Run("inserts the movement", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormStockMovementRepository(db)

		movement := &inventory.StockMovement{
			BaseEntity: shared.BaseEntity{
				ID:        uuid.New(),
				CreatedAt: time.Now(),
			},
			TenantID:        uuid.New(),
			InventoryItemID: uuid.New(),
			MovementType:    inventory.MovementIn,
			Quantity:        decimal.NewFromInt(25),
			StockBefore:     decimal.NewFromInt(100),
			StockAfter:      decimal.NewFromInt(125),
			UnitCost:        decimal.NewFromInt(14000),
			ReferenceType:   inventory.ReferenceProcurement,
			ReferenceID:     "PO-2026-0001",
			MovementDate:    time.Now(),
		}

		mock.ExpectExec(`INSERT INTO "stock_movements"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Append(context.Background(), movement)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockMovementRepository_NetPostedByReference(t *testing.T) {
	t.Run("sums quantities with OUT counted negative", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormStockMovementRepository(db)

		tenantID := uuid.New()
		itemID := uuid.New()

		mock.ExpectQuery(`SELECT SUM\(CASE WHEN movement_type = \$1 THEN quantity ELSE -quantity END\) FROM "stock_movements" WHERE tenant_id = \$2 AND inventory_item_id = \$3 AND reference_type = \$4 AND reference_id = \$5`).
			WithArgs(inventory.MovementIn, tenantID, itemID, inventory.ReferenceProcurement, "PO-2026-0001").
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("55"))

		net, err := repo.NetPostedByReference(context.Background(), tenantID, itemID, inventory.ReferenceProcurement, "PO-2026-0001")

		require.NoError(t, err)
		assert.True(t, net.Equal(decimal.NewFromInt(55)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no posted rows sums to zero", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormStockMovementRepository(db)

		mock.ExpectQuery(`SELECT SUM\(CASE WHEN movement_type = \$1 THEN quantity ELSE -quantity END\) FROM "stock_movements"`).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(nil))

		net, err := repo.NetPostedByReference(context.Background(), uuid.New(), uuid.New(), inventory.ReferenceProcurement, "PO-2026-0002")

		require.NoError(t, err)
		assert.True(t, net.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockMovementRepository_CountByReference(t *testing.T) {
	t.Run("counts ledger rows for the document", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormStockMovementRepository(db)

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "stock_movements" WHERE tenant_id = \$1 AND reference_type = \$2 AND reference_id = \$3`).
			WithArgs(tenantID, inventory.ReferenceProcurement, "PO-2026-0001").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountByReference(context.Background(), tenantID, inventory.ReferenceProcurement, "PO-2026-0001")

		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
