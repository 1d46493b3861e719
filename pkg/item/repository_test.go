package item

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/taktplan/taktplan/internal/test_utils"
)

var (
	dbContainer *postgres.PostgresContainer
	openDB      func() *pgxpool.Pool
)

func TestMain(m *testing.M) {
	dbContainer, openDB = test_utils.TestWithDB()
	code := m.Run()
	if err := testcontainers.TerminateContainer(dbContainer); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
	os.Exit(code)
}

func setupRepositoryTest(t *testing.T) (context.Context, *RepositoryImpl) {
	testCtx := context.Background()
	err := dbContainer.Restore(testCtx, postgres.WithSnapshotName("postgres-test-snapshot"))
	require.NoError(t, err)
	db := openDB()
	t.Cleanup(db.Close)
	return testCtx, NewRepository(db)
}

func TestRepositoryImpl_CreateAndGetItem(t *testing.T) {
	// given
	testCtx, repo := setupRepositoryTest(t)
	startDate := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	// when
	id, err := repo.CreateItem(testCtx, Item{
		Code:                 "10001",
		Name:                 "Widget",
		ManufactureStartDate: &startDate,
		Remarks:              "prototype run",
	})
	require.NoError(t, err)

	// then
	stored, err := repo.GetItem(testCtx, id)
	require.NoError(t, err)
	assert.Equal(t, "10001", stored.Code)
	assert.Equal(t, "Widget", stored.Name)
	assert.Equal(t, "prototype run", stored.Remarks)
	require.NotNil(t, stored.ManufactureStartDate)
	assert.True(t, startDate.Equal(*stored.ManufactureStartDate))
}

func TestRepositoryImpl_GetItem_NotFound(t *testing.T) {
	// given
	testCtx, repo := setupRepositoryTest(t)

	// when
	_, err := repo.GetItem(testCtx, 999)

	// then
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRepositoryImpl_CreateItem_DuplicateCode(t *testing.T) {
	// given
	testCtx, repo := setupRepositoryTest(t)
	_, err := repo.CreateItem(testCtx, Item{Code: "10001", Name: "Widget"})
	require.NoError(t, err)

	// when
	_, err = repo.CreateItem(testCtx, Item{Code: "10001", Name: "Other"})

	// then
	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestRepositoryImpl_SearchItems(t *testing.T) {
	// given
	testCtx, repo := setupRepositoryTest(t)
	require.NoError(t, repo.CreateCategory(testCtx, ItemCategory{Code: "RAW", Name: "Raw Material"}))
	_, err := repo.CreateItem(testCtx, Item{Code: "20000", Name: "Brass nut"})
	require.NoError(t, err)
	_, err = repo.CreateItem(testCtx, Item{Code: "10000", Name: "Steel bolt", CategoryCode: "RAW"})
	require.NoError(t, err)

	t.Run("should return all items ordered by code with category names joined", func(t *testing.T) {
		items, err := repo.SearchItems(testCtx, Filter{})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "10000", items[0].Code)
		assert.Equal(t, "Raw Material", items[0].CategoryName)
		assert.Equal(t, "20000", items[1].Code)
		assert.Empty(t, items[1].CategoryName)
	})

	t.Run("should filter by name substring", func(t *testing.T) {
		items, err := repo.SearchItems(testCtx, Filter{Name: "bolt"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Steel bolt", items[0].Name)
	})

	t.Run("should filter by exact code", func(t *testing.T) {
		items, err := repo.SearchItems(testCtx, Filter{Code: "20000"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Brass nut", items[0].Name)
	})

	t.Run("should filter by category code", func(t *testing.T) {
		items, err := repo.SearchItems(testCtx, Filter{CategoryCode: "RAW"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "10000", items[0].Code)
	})
}

func TestRepositoryImpl_UpdateItem(t *testing.T) {
	// given
	testCtx, repo := setupRepositoryTest(t)
	id, err := repo.CreateItem(testCtx, Item{Code: "10001", Name: "Widget"})
	require.NoError(t, err)

	// when
	updated, err := repo.UpdateItem(testCtx, Item{Id: id, Code: "10001", Name: "Gadget"})
	require.NoError(t, err)

	// then
	assert.True(t, updated)
	stored, err := repo.GetItem(testCtx, id)
	require.NoError(t, err)
	assert.Equal(t, "Gadget", stored.Name)

	// updating an unknown id reports false without an error
	updated, err = repo.UpdateItem(testCtx, Item{Id: 999, Code: "10002", Name: "Ghost"})
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestRepositoryImpl_Categories(t *testing.T) {
	// given
	testCtx, repo := setupRepositoryTest(t)
	require.NoError(t, repo.CreateCategory(testCtx, ItemCategory{Code: "RAW", Name: "Raw Material"}))

	t.Run("should reject a duplicate category code", func(t *testing.T) {
		err := repo.CreateCategory(testCtx, ItemCategory{Code: "RAW", Name: "Other"})
		assert.ErrorIs(t, err, ErrDuplicateCategory)
	})

	t.Run("should rename and delete a category", func(t *testing.T) {
		updated, err := repo.UpdateCategory(testCtx, ItemCategory{Code: "RAW", Name: "Raw Materials"})
		require.NoError(t, err)
		assert.True(t, updated)

		deleted, err := repo.DeleteCategory(testCtx, "RAW")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.DeleteCategory(testCtx, "RAW")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
