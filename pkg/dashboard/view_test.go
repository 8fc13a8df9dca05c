package dashboard

import (
	"testing"

	"github.com/kharcha/kharcha/pkg/analytics"
	"github.com/kharcha/kharcha/pkg/budget"
	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpenseListView(t *testing.T) {
	t.Run("should sum visible rows for display", func(t *testing.T) {
		view := NewExpenseListView([]expense.ExpenseDTO{
			{ID: "id-1", Description: "Mess Lunch", Amount: 80, Tags: []string{"mess", "lunch"}},
			{ID: "id-2", Description: "Auto", Amount: 100},
		})

		assert.Equal(t, 2, view.Count)
		assert.Equal(t, 180.0, view.DisplayTotal)
		assert.Equal(t, "mess, lunch", view.Rows[0].Tags)
	})

	t.Run("should render an empty list without rows", func(t *testing.T) {
		view := NewExpenseListView(nil)

		assert.Zero(t, view.Count)
		assert.Zero(t, view.DisplayTotal)
		assert.Empty(t, view.Rows)
	})
}

func TestNewDashboardView(t *testing.T) {
	t.Run("should split alerts by severity", func(t *testing.T) {
		view := NewDashboardView(analytics.OverviewDTO{TotalSpent: 9000}, []budget.AlertDTO{
			{Category: "Housing", Percentage: 112.5, AlertLevel: "Critical"},
			{Category: "Food & Dining", Percentage: 85, AlertLevel: "Warning"},
		})

		require.Len(t, view.CriticalAlerts, 1)
		require.Len(t, view.WarningAlerts, 1)
		assert.Equal(t, "Housing", view.CriticalAlerts[0].Category)
		assert.Equal(t, 9000.0, view.TotalSpent)
	})

	t.Run("should carry top expenses as rows", func(t *testing.T) {
		view := NewDashboardView(analytics.OverviewDTO{
			TopExpenses: []expense.ExpenseDTO{{ID: "id-1", Description: "Hostel Rent", Amount: 8000}},
		}, nil)

		require.Len(t, view.TopExpenses, 1)
		assert.Equal(t, "Hostel Rent", view.TopExpenses[0].Description)
	})
}
