package analytics

import (
	"github.com/kharcha/kharcha/pkg/expense"
)

// Overview is the aggregate summary computed over a date range. It is never
// persisted; every query recomputes it from the expense store.
type Overview struct {
	TotalSpent           float64
	AverageDaily         float64
	CategoryBreakdown    map[expense.Category]float64
	MonthlyTrend         []MonthlyAmount
	WeeklySpending       []WeeklyAmount
	PriorityDistribution map[expense.Priority]float64
	TopExpenses          []expense.Expense
	DailyPattern         map[string]float64
	SpendingVelocity     Velocity
	SavingsRate          float64
}

// MonthlyAmount is one calendar month's total, keyed "YYYY-MM".
type MonthlyAmount struct {
	Month  string
	Amount float64
}

// WeeklyAmount is one week's total, keyed by the Monday that starts it.
type WeeklyAmount struct {
	Week   string
	Amount float64
}

// Velocity compares the last 7 days of spending against the 7 days before.
type Velocity struct {
	CurrentWeek      float64
	PreviousWeek     float64
	ChangePercentage float64
}

func emptyOverview() Overview {
	return Overview{
		CategoryBreakdown:    map[expense.Category]float64{},
		MonthlyTrend:         []MonthlyAmount{},
		WeeklySpending:       []WeeklyAmount{},
		PriorityDistribution: map[expense.Priority]float64{},
		TopExpenses:          []expense.Expense{},
		DailyPattern:         map[string]float64{},
	}
}
