package budget

import (
	"context"
	"sort"

	"github.com/kharcha/kharcha/pkg/expense"
)

// StubRepository is an in-memory Repository used in tests.
type StubRepository struct {
	budgets map[expense.Category]float64
}

func NewStubRepository() *StubRepository {
	return &StubRepository{budgets: make(map[expense.Category]float64)}
}

func (s *StubRepository) GetAll(_ context.Context) ([]Budget, error) {
	budgets := make([]Budget, 0, len(s.budgets))
	for category, limit := range s.budgets {
		budgets = append(budgets, Budget{Category: category, MonthlyLimit: limit})
	}
	sort.Slice(budgets, func(i, j int) bool {
		return budgets[i].Category < budgets[j].Category
	})
	return budgets, nil
}

func (s *StubRepository) Upsert(_ context.Context, budget Budget) error {
	s.budgets[budget.Category] = budget.MonthlyLimit
	return nil
}

func (s *StubRepository) Cleanup() {
	s.budgets = make(map[expense.Category]float64)
}
