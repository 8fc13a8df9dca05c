package analytics

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

// 2026-08-27 is a Thursday; the current week starts 2026-08-24.
var now = time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

func setupService(t *testing.T, monthlyIncome float64) (*ServiceImpl, *expense.StubRepository) {
	repo := expense.NewStubRepository()
	clock := &utils.MockClock{FixedNow: now}
	t.Cleanup(repo.Cleanup)
	return NewService(repo, clock, monthlyIncome), repo
}

func addExpense(t *testing.T, repo *expense.StubRepository, amount float64, category expense.Category, date string) {
	t.Helper()
	addExpenseWithPriority(t, repo, amount, category, date, expense.PriorityMedium)
}

func addExpenseWithPriority(t *testing.T, repo *expense.StubRepository, amount float64, category expense.Category, date string, priority expense.Priority) {
	t.Helper()
	day, err := utils.ParseDate(date)
	require.NoError(t, err)
	require.NoError(t, repo.Store(ctx, expense.Expense{
		ID:          uuid.NewString(),
		Description: "test expense",
		Amount:      amount,
		Category:    category,
		Date:        day,
		Priority:    priority,
		Tags:        []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}))
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	day, err := utils.ParseDate(s)
	require.NoError(t, err)
	return day
}

func TestServiceImpl_GetOverview(t *testing.T) {
	t.Run("should compute the documented two-day scenario", func(t *testing.T) {
		service, repo := setupService(t, 0)
		addExpense(t, repo, 10, expense.CategoryFood, "2026-08-20")
		addExpense(t, repo, 20, expense.CategoryFood, "2026-08-21")
		addExpense(t, repo, 30, expense.CategoryTransport, "2026-08-21")

		overview, err := service.GetOverview(ctx, date(t, "2026-08-20"), date(t, "2026-08-21"))

		require.NoError(t, err)
		assert.Equal(t, 60.0, overview.TotalSpent)
		assert.Equal(t, 30.0, overview.AverageDaily)
		assert.Equal(t, map[expense.Category]float64{
			expense.CategoryFood:      30,
			expense.CategoryTransport: 30,
		}, overview.CategoryBreakdown)
		require.Len(t, overview.TopExpenses, 3)
		assert.Equal(t, 30.0, overview.TopExpenses[0].Amount)
		assert.Equal(t, 20.0, overview.TopExpenses[1].Amount)
		assert.Equal(t, 10.0, overview.TopExpenses[2].Amount)
	})

	t.Run("should return zero values and empty collections for no matches", func(t *testing.T) {
		service, _ := setupService(t, 15000)

		overview, err := service.GetOverview(ctx, date(t, "2030-01-01"), date(t, "2030-01-31"))

		require.NoError(t, err)
		assert.Zero(t, overview.TotalSpent)
		assert.Zero(t, overview.AverageDaily)
		assert.Zero(t, overview.SavingsRate)
		assert.Empty(t, overview.CategoryBreakdown)
		assert.Empty(t, overview.MonthlyTrend)
		assert.Empty(t, overview.WeeklySpending)
		assert.Empty(t, overview.TopExpenses)
		assert.NotNil(t, overview.CategoryBreakdown)
		assert.NotNil(t, overview.TopExpenses)
	})

	t.Run("should make average daily equal total for a single-day range", func(t *testing.T) {
		service, repo := setupService(t, 0)
		addExpense(t, repo, 100, expense.CategoryFood, "2026-08-20")
		addExpense(t, repo, 50, expense.CategoryFood, "2026-08-20")

		overview, err := service.GetOverview(ctx, date(t, "2026-08-20"), date(t, "2026-08-20"))

		require.NoError(t, err)
		assert.Equal(t, overview.TotalSpent, overview.AverageDaily)
	})

	t.Run("should derive days from expense dates for unbounded ranges", func(t *testing.T) {
		service, repo := setupService(t, 0)
		addExpense(t, repo, 30, expense.CategoryFood, "2026-08-01")
		addExpense(t, repo, 30, expense.CategoryFood, "2026-08-03")

		overview, err := service.GetOverview(ctx, time.Time{}, time.Time{})

		require.NoError(t, err)
		assert.Equal(t, 60.0, overview.TotalSpent)
		assert.InDelta(t, 20.0, overview.AverageDaily, 1e-9) // 3-day span
	})

	t.Run("should keep category breakdown summing to total", func(t *testing.T) {
		service, repo := setupService(t, 0)
		categories := expense.Categories()
		for i := 0; i < 50; i++ {
			addExpense(t, repo, 0.1*float64(i+1), categories[i%len(categories)], "2026-08-15")
		}

		overview, err := service.GetOverview(ctx, time.Time{}, time.Time{})

		require.NoError(t, err)
		sum := 0.0
		for _, amount := range overview.CategoryBreakdown {
			sum += amount
		}
		assert.InDelta(t, overview.TotalSpent, sum, 1e-6)
	})

	t.Run("should omit categories with no matches instead of zero entries", func(t *testing.T) {
		service, repo := setupService(t, 0)
		addExpense(t, repo, 10, expense.CategoryFood, "2026-08-20")

		overview, err := service.GetOverview(ctx, time.Time{}, time.Time{})

		require.NoError(t, err)
		assert.Len(t, overview.CategoryBreakdown, 1)
		_, present := overview.CategoryBreakdown[expense.CategoryTravel]
		assert.False(t, present)
	})

	t.Run("should cap top expenses at 10 sorted by amount then date", func(t *testing.T) {
		service, repo := setupService(t, 0)
		for i := 1; i <= 12; i++ {
			addExpense(t, repo, float64(i*10), expense.CategoryOther, "2026-08-10")
		}
		// two equal amounts on different days: newer one wins the tie
		addExpense(t, repo, 500, expense.CategoryOther, "2026-08-01")
		addExpense(t, repo, 500, expense.CategoryOther, "2026-08-05")

		overview, err := service.GetOverview(ctx, time.Time{}, time.Time{})

		require.NoError(t, err)
		require.Len(t, overview.TopExpenses, 10)
		for i := 1; i < len(overview.TopExpenses); i++ {
			assert.GreaterOrEqual(t, overview.TopExpenses[i-1].Amount, overview.TopExpenses[i].Amount)
		}
		assert.Equal(t, 500.0, overview.TopExpenses[0].Amount)
		assert.Equal(t, "2026-08-05", utils.FormatDate(overview.TopExpenses[0].Date))
		assert.Equal(t, "2026-08-01", utils.FormatDate(overview.TopExpenses[1].Date))
	})

	t.Run("should order monthly trend chronologically", func(t *testing.T) {
		service, repo := setupService(t, 0)
		addExpense(t, repo, 10, expense.CategoryFood, "2026-08-01")
		addExpense(t, repo, 20, expense.CategoryFood, "2026-06-15")
		addExpense(t, repo, 30, expense.CategoryFood, "2026-07-10")

		overview, err := service.GetOverview(ctx, time.Time{}, time.Time{})

		require.NoError(t, err)
		require.Len(t, overview.MonthlyTrend, 3)
		assert.Equal(t, "2026-06", overview.MonthlyTrend[0].Month)
		assert.Equal(t, "2026-07", overview.MonthlyTrend[1].Month)
		assert.Equal(t, "2026-08", overview.MonthlyTrend[2].Month)
	})

	t.Run("should anchor weekly spending to now with 8 chronological weeks", func(t *testing.T) {
		service, repo := setupService(t, 0)
		addExpense(t, repo, 100, expense.CategoryFood, "2026-08-25") // current week
		addExpense(t, repo, 40, expense.CategoryFood, "2026-08-18")  // previous week

		overview, err := service.GetOverview(ctx, time.Time{}, time.Time{})

		require.NoError(t, err)
		require.Len(t, overview.WeeklySpending, 8)
		last := overview.WeeklySpending[7]
		assert.Equal(t, "2026-08-24", last.Week)
		assert.Equal(t, 100.0, last.Amount)
		assert.Equal(t, "2026-08-17", overview.WeeklySpending[6].Week)
		assert.Equal(t, 40.0, overview.WeeklySpending[6].Amount)
		for i := 1; i < len(overview.WeeklySpending); i++ {
			assert.Less(t, overview.WeeklySpending[i-1].Week, overview.WeeklySpending[i].Week)
		}
	})

	t.Run("should compute spending velocity against the previous week", func(t *testing.T) {
		service, repo := setupService(t, 0)
		addExpense(t, repo, 150, expense.CategoryFood, "2026-08-25") // within last 7 days
		addExpense(t, repo, 100, expense.CategoryFood, "2026-08-15") // 7..14 days back

		overview, err := service.GetOverview(ctx, time.Time{}, time.Time{})

		require.NoError(t, err)
		assert.Equal(t, 150.0, overview.SpendingVelocity.CurrentWeek)
		assert.Equal(t, 100.0, overview.SpendingVelocity.PreviousWeek)
		assert.InDelta(t, 50.0, overview.SpendingVelocity.ChangePercentage, 1e-9)
	})

	t.Run("should compute savings rate from current month spending", func(t *testing.T) {
		service, repo := setupService(t, 15000)
		addExpense(t, repo, 5000, expense.CategoryHousing, "2026-08-01")
		addExpense(t, repo, 1000, expense.CategoryFood, "2026-07-15") // previous month, ignored

		overview, err := service.GetOverview(ctx, time.Time{}, time.Time{})

		require.NoError(t, err)
		assert.InDelta(t, (15000.0-5000.0)/15000.0*100, overview.SavingsRate, 1e-9)
	})

	t.Run("should floor savings rate at zero when overspent", func(t *testing.T) {
		service, repo := setupService(t, 1000)
		addExpense(t, repo, 5000, expense.CategoryHousing, "2026-08-01")

		overview, err := service.GetOverview(ctx, time.Time{}, time.Time{})

		require.NoError(t, err)
		assert.Zero(t, overview.SavingsRate)
	})

	t.Run("should sum priority distribution by priority", func(t *testing.T) {
		service, repo := setupService(t, 0)
		addExpenseWithPriority(t, repo, 10, expense.CategoryFood, "2026-08-20", expense.PriorityHigh)
		addExpenseWithPriority(t, repo, 20, expense.CategoryFood, "2026-08-20", expense.PriorityHigh)
		addExpenseWithPriority(t, repo, 5, expense.CategoryFood, "2026-08-20", expense.PriorityLow)

		overview, err := service.GetOverview(ctx, time.Time{}, time.Time{})

		require.NoError(t, err)
		assert.Equal(t, 30.0, overview.PriorityDistribution[expense.PriorityHigh])
		assert.Equal(t, 5.0, overview.PriorityDistribution[expense.PriorityLow])
		_, present := overview.PriorityDistribution[expense.PriorityMedium]
		assert.False(t, present)
	})
}

func TestTopExpenses_LengthProperty(t *testing.T) {
	for _, count := range []int{0, 1, 5, 10, 25} {
		expenses := make([]expense.Expense, count)
		for i := range expenses {
			expenses[i] = expense.Expense{Amount: float64(i), Date: now}
		}
		top := topExpenses(expenses)
		assert.Equal(t, int(math.Min(float64(count), 10)), len(top))
	}
}
