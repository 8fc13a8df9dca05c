package expense

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kharcha/kharcha/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func setupService(t *testing.T) (*ServiceImpl, *StubRepository, *utils.MockClock) {
	repo := NewStubRepository()
	clock := &utils.MockClock{FixedNow: time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)}
	service := NewService(repo, clock)
	t.Cleanup(repo.Cleanup)
	return service, repo, clock
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should assign id and timestamps", func(t *testing.T) {
		service, _, clock := setupService(t)

		created, err := service.Create(ctx, validExpense())

		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, clock.Now(), created.CreatedAt)
		assert.Equal(t, clock.Now(), created.UpdatedAt)
	})

	t.Run("should default priority to Medium", func(t *testing.T) {
		service, _, _ := setupService(t)
		expense := validExpense()
		expense.Priority = ""

		created, err := service.Create(ctx, expense)

		require.NoError(t, err)
		assert.Equal(t, PriorityMedium, created.Priority)
	})

	t.Run("should reject invalid expense and not store it", func(t *testing.T) {
		service, repo, _ := setupService(t)
		expense := validExpense()
		expense.Amount = -5

		_, err := service.Create(ctx, expense)

		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
		count, _ := repo.Count(ctx)
		assert.Zero(t, count)
	})

	t.Run("should normalize tags", func(t *testing.T) {
		service, _, _ := setupService(t)
		expense := validExpense()
		expense.Tags = []string{" mess ", "", "lunch"}

		created, err := service.Create(ctx, expense)

		require.NoError(t, err)
		assert.Equal(t, []string{"mess", "lunch"}, created.Tags)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should apply only provided fields", func(t *testing.T) {
		service, _, _ := setupService(t)
		created, err := service.Create(ctx, validExpense())
		require.NoError(t, err)

		newAmount := 120.0
		updated, err := service.Update(ctx, created.ID, Update{Amount: &newAmount})

		require.NoError(t, err)
		assert.Equal(t, 120.0, updated.Amount)
		assert.Equal(t, created.Description, updated.Description)
		assert.Equal(t, created.Category, updated.Category)
	})

	t.Run("should refresh updated_at but keep created_at", func(t *testing.T) {
		service, _, clock := setupService(t)
		created, err := service.Create(ctx, validExpense())
		require.NoError(t, err)

		clock.SetNow(created.CreatedAt.Add(48 * time.Hour))
		newAmount := 120.0
		updated, err := service.Update(ctx, created.ID, Update{Amount: &newAmount})

		require.NoError(t, err)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
		assert.Equal(t, clock.Now(), updated.UpdatedAt)
	})

	t.Run("should return not found for missing id", func(t *testing.T) {
		service, _, _ := setupService(t)

		_, err := service.Update(ctx, "missing", Update{})

		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("should reject update producing invalid expense", func(t *testing.T) {
		service, _, _ := setupService(t)
		created, err := service.Create(ctx, validExpense())
		require.NoError(t, err)

		empty := ""
		_, err = service.Update(ctx, created.ID, Update{Description: &empty})

		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should delete an existing expense", func(t *testing.T) {
		service, repo, _ := setupService(t)
		created, err := service.Create(ctx, validExpense())
		require.NoError(t, err)

		err = service.Delete(ctx, created.ID)

		assert.NoError(t, err)
		count, _ := repo.Count(ctx)
		assert.Zero(t, count)
	})

	t.Run("should return not found for missing id, not silent success", func(t *testing.T) {
		service, _, _ := setupService(t)

		err := service.Delete(ctx, "missing")

		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestServiceImpl_List(t *testing.T) {
	t.Run("should return empty slice when nothing matches", func(t *testing.T) {
		service, _, _ := setupService(t)

		expenses, err := service.List(ctx, Filter{Category: CategoryTravel})

		require.NoError(t, err)
		assert.NotNil(t, expenses)
		assert.Empty(t, expenses)
	})
}
