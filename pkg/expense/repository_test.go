package expense

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kharcha/kharcha/internal/test_utils"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) *RepositoryImpl {
	db := test_utils.SetupTestDB(t)
	return NewRepository(db)
}

func storeExpense(t *testing.T, repo *RepositoryImpl, description string, amount float64, category Category, date string, tags ...string) Expense {
	t.Helper()
	day, err := utils.ParseDate(date)
	require.NoError(t, err)
	expense := Expense{
		ID:          uuid.NewString(),
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        day,
		Priority:    PriorityMedium,
		Tags:        tags,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
		UpdatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, repo.Store(context.Background(), expense))
	return expense
}

func TestRepositoryImpl_StoreAndFindById(t *testing.T) {
	repo := setupTestRepository(t)

	stored := storeExpense(t, repo, "Movie Ticket", 200, CategoryEntertainment, "2026-08-02", "movie")

	found, err := repo.FindById(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Description, found.Description)
	assert.Equal(t, stored.Amount, found.Amount)
	assert.Equal(t, stored.Category, found.Category)
	assert.Equal(t, "2026-08-02", utils.FormatDate(found.Date))
	assert.Equal(t, []string{"movie"}, found.Tags)
}

func TestRepositoryImpl_FindById_NotFound(t *testing.T) {
	repo := setupTestRepository(t)

	_, err := repo.FindById(context.Background(), "does-not-exist")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryImpl_Find(t *testing.T) {
	repo := setupTestRepository(t)
	storeExpense(t, repo, "Mess Lunch", 80, CategoryFood, "2026-08-01", "mess")
	storeExpense(t, repo, "Restaurant", 300, CategoryFood, "2026-08-03", "treat")
	storeExpense(t, repo, "Bus Pass", 500, CategoryTransport, "2026-08-02", "bus")

	t.Run("should return all expenses newest first", func(t *testing.T) {
		expenses, err := repo.Find(context.Background(), Filter{})

		require.NoError(t, err)
		require.Len(t, expenses, 3)
		assert.Equal(t, "Restaurant", expenses[0].Description)
		assert.Equal(t, "Bus Pass", expenses[1].Description)
		assert.Equal(t, "Mess Lunch", expenses[2].Description)
	})

	t.Run("should filter by category", func(t *testing.T) {
		expenses, err := repo.Find(context.Background(), Filter{Category: CategoryFood})

		require.NoError(t, err)
		assert.Len(t, expenses, 2)
	})

	t.Run("should apply inclusive amount bounds", func(t *testing.T) {
		min, max := 80.0, 300.0
		expenses, err := repo.Find(context.Background(), Filter{MinAmount: &min, MaxAmount: &max})

		require.NoError(t, err)
		assert.Len(t, expenses, 2)
	})

	t.Run("should apply inclusive date range", func(t *testing.T) {
		start, _ := utils.ParseDate("2026-08-02")
		end, _ := utils.ParseDate("2026-08-03")
		expenses, err := repo.Find(context.Background(), Filter{StartDate: start, EndDate: end})

		require.NoError(t, err)
		assert.Len(t, expenses, 2)
	})

	t.Run("should match tags case-insensitively", func(t *testing.T) {
		expenses, err := repo.Find(context.Background(), Filter{Tags: []string{"MESS"}})

		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, "Mess Lunch", expenses[0].Description)
	})

	t.Run("should paginate after filtering", func(t *testing.T) {
		expenses, err := repo.Find(context.Background(), Filter{Skip: 1, Limit: 1})

		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, "Bus Pass", expenses[0].Description)
	})

	t.Run("should return empty slice for no matches", func(t *testing.T) {
		expenses, err := repo.Find(context.Background(), Filter{Category: CategoryTravel})

		require.NoError(t, err)
		assert.NotNil(t, expenses)
		assert.Empty(t, expenses)
	})
}

func TestRepositoryImpl_Update(t *testing.T) {
	repo := setupTestRepository(t)
	stored := storeExpense(t, repo, "Books", 800, CategoryEducation, "2026-08-05")

	stored.Amount = 850
	stored.Notes = "second-hand"
	updated, err := repo.Update(context.Background(), stored)

	require.NoError(t, err)
	assert.True(t, updated)

	found, err := repo.FindById(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, 850.0, found.Amount)
	assert.Equal(t, "second-hand", found.Notes)
}

func TestRepositoryImpl_Delete(t *testing.T) {
	repo := setupTestRepository(t)
	stored := storeExpense(t, repo, "Auto", 100, CategoryTransport, "2026-08-06")

	deleted, err := repo.Delete(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
