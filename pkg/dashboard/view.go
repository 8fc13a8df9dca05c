package dashboard

import (
	"strings"

	"github.com/kharcha/kharcha/pkg/analytics"
	"github.com/kharcha/kharcha/pkg/budget"
	"github.com/kharcha/kharcha/pkg/expense"
)

// ExpenseRow is one table line ready for rendering.
type ExpenseRow struct {
	ID          string
	Date        string
	Description string
	Category    string
	Amount      float64
	Priority    string
	Tags        string
}

// ExpenseListView is the list page model. DisplayTotal sums the visible rows
// for display convenience only; the backend overview is the source of truth
// for aggregates.
type ExpenseListView struct {
	Rows         []ExpenseRow
	Count        int
	DisplayTotal float64
}

func NewExpenseListView(expenses []expense.ExpenseDTO) ExpenseListView {
	view := ExpenseListView{Rows: make([]ExpenseRow, 0, len(expenses))}
	for _, dto := range expenses {
		view.Rows = append(view.Rows, newExpenseRow(dto))
		view.DisplayTotal += dto.Amount
	}
	view.Count = len(view.Rows)
	return view
}

// DashboardView is the landing page model. Alert slices keep the backend
// ordering (highest overshoot first).
type DashboardView struct {
	TotalSpent     float64
	AverageDaily   float64
	SavingsRate    float64
	TopExpenses    []ExpenseRow
	CriticalAlerts []budget.AlertDTO
	WarningAlerts  []budget.AlertDTO
}

func NewDashboardView(overview analytics.OverviewDTO, alerts []budget.AlertDTO) DashboardView {
	view := DashboardView{
		TotalSpent:     overview.TotalSpent,
		AverageDaily:   overview.AverageDaily,
		SavingsRate:    overview.SavingsRate,
		TopExpenses:    make([]ExpenseRow, 0, len(overview.TopExpenses)),
		CriticalAlerts: []budget.AlertDTO{},
		WarningAlerts:  []budget.AlertDTO{},
	}
	for _, dto := range overview.TopExpenses {
		view.TopExpenses = append(view.TopExpenses, newExpenseRow(dto))
	}
	for _, alert := range alerts {
		if alert.AlertLevel == string(budget.AlertLevelCritical) {
			view.CriticalAlerts = append(view.CriticalAlerts, alert)
		} else {
			view.WarningAlerts = append(view.WarningAlerts, alert)
		}
	}
	return view
}

func newExpenseRow(dto expense.ExpenseDTO) ExpenseRow {
	return ExpenseRow{
		ID:          dto.ID,
		Date:        dto.Date,
		Description: dto.Description,
		Category:    dto.Category,
		Amount:      dto.Amount,
		Priority:    dto.Priority,
		Tags:        strings.Join(dto.Tags, ", "),
	}
}
