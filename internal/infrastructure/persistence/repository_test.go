package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err, "Failed to open GORM connection")

	t.Cleanup(func() { mockDB.Close() })
	return gormDB, mock
}

func TestProductRepository_DecrementStock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)
	productID := uuid.New()

	mock.ExpectExec(`UPDATE "products" SET "stock_quantity"=stock_quantity - \$1`).
		WithArgs(3, productID, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DecrementStock(context.Background(), productID, 3)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_DecrementStock_Insufficient(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)
	productID := uuid.New()

	mock.ExpectExec(`UPDATE "products" SET "stock_quantity"=stock_quantity - \$1`).
		WithArgs(11, productID, 11).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DecrementStock(context.Background(), productID, 11)
	require.ErrorIs(t, err, shared.ErrInsufficientStock)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCartItemRepository_ClearSession(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCartItemRepository(db)

	mock.ExpectExec(`DELETE FROM "cart_items" WHERE session_id = \$1`).
		WithArgs("sess-1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.ClearSession(context.Background(), "sess-1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_FindAll_SortByProductCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow(uuid.New(), "Tools").
		AddRow(uuid.New(), "Toys")
	mock.ExpectQuery(`SELECT "categories"\.\*, \(SELECT count\(\*\) FROM products WHERE products\.category_id = categories\.id\) AS product_count FROM "categories" ORDER BY product_count DESC`).
		WillReturnRows(rows)

	categories, err := repo.FindAll(context.Background(), shared.Filter{OrderBy: "product_count", OrderDir: "desc"})
	require.NoError(t, err)
	assert.Len(t, categories, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_FindAll_PlainSortSelectsColumnsOnly(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "categories" ORDER BY name ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(uuid.New(), "Tools"))

	categories, err := repo.FindAll(context.Background(), shared.Filter{OrderBy: "name", OrderDir: "asc"})
	require.NoError(t, err)
	assert.Len(t, categories, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WithArgs("ghost", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, shared.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderStatusRepository_FindByName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderStatusRepository(db)
	statusID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "name", "is_active", "sort_order"}).
		AddRow(statusID, "PENDING", true, 1)
	mock.ExpectQuery(`SELECT \* FROM "order_statuses" WHERE name = \$1`).
		WithArgs("PENDING", 1).
		WillReturnRows(rows)

	status, err := repo.FindByName(context.Background(), "PENDING")
	require.NoError(t, err)
	assert.Equal(t, statusID, status.ID)
	assert.Equal(t, "PENDING", status.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateError_DuplicateKey(t *testing.T) {
	err := translateError(gorm.ErrDuplicatedKey)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	assert.NoError(t, translateError(nil))
	assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound), shared.ErrNotFound)
}

func TestTranslateError_ForeignKeyViolation(t *testing.T) {
	var domainErr *shared.DomainError
	require.ErrorAs(t, translateError(gorm.ErrForeignKeyViolated), &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)

	raw := errors.New(`pq: update or delete on table "products" violates foreign key constraint "order_products_product_id_fkey" on table "order_products"`)
	require.ErrorAs(t, translateError(raw), &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestProductRepository_Delete_ReferencedByOrders(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)
	productID := uuid.New()

	mock.ExpectExec(`DELETE FROM "products"`).
		WithArgs(productID).
		WillReturnError(errors.New(`pq: update or delete on table "products" violates foreign key constraint "order_products_product_id_fkey" on table "order_products"`))

	err := repo.Delete(context.Background(), productID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateSortField(t *testing.T) {
	assert.Equal(t, "price", ValidateSortField("price", ProductSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("price; DROP TABLE", ProductSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("", ProductSortFields, "created_at"))

	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "DESC", ValidateSortOrder("junk"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
}
