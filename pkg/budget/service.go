package budget

import (
	"context"
	"sort"
	"time"

	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/expense"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetAll(ctx context.Context) ([]Budget, error)
	SetLimit(ctx context.Context, category expense.Category, monthlyLimit float64) (Budget, error)
	// GetAlerts evaluates current-month spending against configured limits.
	// Categories without a configured limit never produce an alert.
	GetAlerts(ctx context.Context) ([]Alert, error)
}

type ServiceImpl struct {
	repo     Repository
	expenses expense.Repository
	clock    utils.Clock
}

func NewService(repo Repository, expenses expense.Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, expenses: expenses, clock: clock}
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Budget, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) SetLimit(ctx context.Context, category expense.Category, monthlyLimit float64) (Budget, error) {
	if !category.IsValid() {
		return Budget{}, &expense.ValidationError{Reason: "unknown category " + string(category)}
	}
	if monthlyLimit <= 0 {
		return Budget{}, &expense.ValidationError{Reason: "monthly limit must be positive"}
	}

	budget := Budget{Category: category, MonthlyLimit: monthlyLimit}
	if err := s.repo.Upsert(ctx, budget); err != nil {
		return Budget{}, err
	}
	log.Infof("set budget for %s to %.2f", category, monthlyLimit)
	return budget, nil
}

func (s *ServiceImpl) GetAlerts(ctx context.Context) ([]Alert, error) {
	monthStart, monthEnd := currentMonthBounds(s.clock.Now())
	monthExpenses, err := s.expenses.Find(ctx, expense.Filter{StartDate: monthStart, EndDate: monthEnd})
	if err != nil {
		return nil, err
	}

	spentByCategory := map[expense.Category]float64{}
	for _, exp := range monthExpenses {
		spentByCategory[exp.Category] += exp.Amount
	}

	budgets, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	limits := make(map[expense.Category]float64, len(budgets))
	for _, budget := range budgets {
		limits[budget.Category] = budget.MonthlyLimit
	}

	alerts := []Alert{}
	for category, spent := range spentByCategory {
		limit, configured := limits[category]
		if !configured || limit <= 0 {
			continue
		}

		percentage := spent / limit * 100
		level, alerting := levelFor(percentage)
		if !alerting {
			continue
		}
		alerts = append(alerts, Alert{
			Category:   category,
			Spent:      spent,
			Budget:     limit,
			Percentage: percentage,
			Level:      level,
		})
	}

	// Worst offenders first so the dashboard can render top-down.
	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].Percentage > alerts[j].Percentage
	})
	return alerts, nil
}

func currentMonthBounds(now time.Time) (time.Time, time.Time) {
	year, month, _ := now.Date()
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}
