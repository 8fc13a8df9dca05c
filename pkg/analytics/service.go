package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/expense"
	log "github.com/sirupsen/logrus"
)

const (
	topExpensesLimit = 10
	weeklyWindowSize = 8
)

type Service interface {
	// GetOverview aggregates all expenses within the inclusive [start, end]
	// range. A zero start or end leaves that side unbounded.
	GetOverview(ctx context.Context, start, end time.Time) (Overview, error)
}

type ServiceImpl struct {
	expenses      expense.Repository
	clock         utils.Clock
	monthlyIncome float64
}

func NewService(expenses expense.Repository, clock utils.Clock, monthlyIncome float64) *ServiceImpl {
	return &ServiceImpl{expenses: expenses, clock: clock, monthlyIncome: monthlyIncome}
}

func (s *ServiceImpl) GetOverview(ctx context.Context, start, end time.Time) (Overview, error) {
	matching, err := s.expenses.Find(ctx, expense.Filter{StartDate: start, EndDate: end})
	if err != nil {
		return Overview{}, err
	}

	// Zero matches is a valid result, not an error.
	if len(matching) == 0 {
		return emptyOverview(), nil
	}

	overview := emptyOverview()
	for _, exp := range matching {
		overview.TotalSpent += exp.Amount
		overview.CategoryBreakdown[exp.Category] += exp.Amount
		overview.PriorityDistribution[exp.Priority] += exp.Amount
		overview.DailyPattern[exp.Date.Weekday().String()] += exp.Amount
	}

	overview.AverageDaily = overview.TotalSpent / float64(daysInRange(start, end, matching))
	overview.MonthlyTrend = monthlyTrend(matching)
	overview.WeeklySpending = s.weeklySpending(matching)
	overview.TopExpenses = topExpenses(matching)
	overview.SpendingVelocity = s.spendingVelocity(matching)
	overview.SavingsRate = s.savingsRate(matching)

	log.Debugf("computed analytics overview over %d expenses, total %.2f", len(matching), overview.TotalSpent)
	return overview, nil
}

// daysInRange is the divisor for the daily average: the explicit range when
// both bounds are present, otherwise the span of the matching expense dates.
// Always at least 1, so a single-day range yields averageDaily == totalSpent.
func daysInRange(start, end time.Time, matching []expense.Expense) int {
	if !start.IsZero() && !end.IsZero() {
		return utils.DaysBetween(start, end)
	}

	earliest, latest := matching[0].Date, matching[0].Date
	for _, exp := range matching[1:] {
		if exp.Date.Before(earliest) {
			earliest = exp.Date
		}
		if exp.Date.After(latest) {
			latest = exp.Date
		}
	}
	return utils.DaysBetween(earliest, latest)
}

// monthlyTrend groups amounts by calendar month, chronologically ascending.
func monthlyTrend(matching []expense.Expense) []MonthlyAmount {
	byMonth := map[string]float64{}
	for _, exp := range matching {
		byMonth[utils.MonthKey(exp.Date)] += exp.Amount
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	trend := make([]MonthlyAmount, 0, len(months))
	for _, month := range months {
		trend = append(trend, MonthlyAmount{Month: month, Amount: byMonth[month]})
	}
	return trend
}

// weeklySpending is a fixed window of the last 8 weeks anchored to the clock's
// now, independent of the requested range. Weeks start on Monday and are
// returned chronologically.
func (s *ServiceImpl) weeklySpending(matching []expense.Expense) []WeeklyAmount {
	currentWeekStart := utils.StartOfWeek(s.clock.Now())

	weekly := make([]WeeklyAmount, 0, weeklyWindowSize)
	for i := weeklyWindowSize - 1; i >= 0; i-- {
		weekStart := currentWeekStart.AddDate(0, 0, -7*i)
		weekEnd := weekStart.AddDate(0, 0, 6)

		amount := 0.0
		for _, exp := range matching {
			if !exp.Date.Before(weekStart) && !exp.Date.After(weekEnd) {
				amount += exp.Amount
			}
		}
		weekly = append(weekly, WeeklyAmount{Week: utils.FormatDate(weekStart), Amount: amount})
	}
	return weekly
}

// topExpenses returns the largest expenses, amount descending, ties broken by
// date descending. A full sort is fine at this scale.
func topExpenses(matching []expense.Expense) []expense.Expense {
	sorted := make([]expense.Expense, len(matching))
	copy(sorted, matching)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Amount != sorted[j].Amount {
			return sorted[i].Amount > sorted[j].Amount
		}
		return sorted[i].Date.After(sorted[j].Date)
	})

	if len(sorted) > topExpensesLimit {
		sorted = sorted[:topExpensesLimit]
	}
	return sorted
}

// spendingVelocity compares the last 7 days against the 7 days before that,
// both anchored to the clock's now.
func (s *ServiceImpl) spendingVelocity(matching []expense.Expense) Velocity {
	today := s.clock.Now()
	currentStart := today.AddDate(0, 0, -7)
	previousStart := currentStart.AddDate(0, 0, -7)

	velocity := Velocity{}
	for _, exp := range matching {
		switch {
		case !exp.Date.Before(currentStart) && !exp.Date.After(today):
			velocity.CurrentWeek += exp.Amount
		case !exp.Date.Before(previousStart) && exp.Date.Before(currentStart):
			velocity.PreviousWeek += exp.Amount
		}
	}
	if velocity.PreviousWeek > 0 {
		velocity.ChangePercentage = (velocity.CurrentWeek - velocity.PreviousWeek) / velocity.PreviousWeek * 100
	}
	return velocity
}

// savingsRate is the share of the configured monthly income left after this
// calendar month's spending, floored at zero.
func (s *ServiceImpl) savingsRate(matching []expense.Expense) float64 {
	if s.monthlyIncome <= 0 {
		return 0
	}

	currentMonth := utils.MonthKey(s.clock.Now())
	spent := 0.0
	for _, exp := range matching {
		if utils.MonthKey(exp.Date) == currentMonth {
			spent += exp.Amount
		}
	}

	rate := (s.monthlyIncome - spent) / s.monthlyIncome * 100
	if rate < 0 {
		return 0
	}
	return rate
}
