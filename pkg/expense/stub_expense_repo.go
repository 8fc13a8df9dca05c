package expense

import (
	"context"
	"sort"
)

// StubRepository is an in-memory Repository used in tests.
type StubRepository struct {
	expenses map[string]Expense
}

func NewStubRepository() *StubRepository {
	return &StubRepository{expenses: make(map[string]Expense)}
}

func (s *StubRepository) Store(_ context.Context, expense Expense) error {
	s.expenses[expense.ID] = expense
	return nil
}

func (s *StubRepository) Find(_ context.Context, filter Filter) ([]Expense, error) {
	matched := []Expense{}
	for _, expense := range s.expenses {
		if matches(expense, filter) {
			matched = append(matched, expense)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if len(filter.Tags) > 0 {
		matched = filterByTags(matched, filter.Tags)
	}
	return paginate(matched, filter.Skip, filter.Limit), nil
}

func (s *StubRepository) FindById(_ context.Context, id string) (Expense, error) {
	expense, ok := s.expenses[id]
	if !ok {
		return Expense{}, ErrNotFound
	}
	return expense, nil
}

func (s *StubRepository) Update(_ context.Context, expense Expense) (bool, error) {
	if _, ok := s.expenses[expense.ID]; !ok {
		return false, nil
	}
	s.expenses[expense.ID] = expense
	return true, nil
}

func (s *StubRepository) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := s.expenses[id]; !ok {
		return false, nil
	}
	delete(s.expenses, id)
	return true, nil
}

func (s *StubRepository) Count(_ context.Context) (int, error) {
	return len(s.expenses), nil
}

func (s *StubRepository) Cleanup() {
	s.expenses = make(map[string]Expense)
}

func matches(expense Expense, filter Filter) bool {
	if filter.Category != "" && expense.Category != filter.Category {
		return false
	}
	if filter.Priority != "" && expense.Priority != filter.Priority {
		return false
	}
	if filter.MinAmount != nil && expense.Amount < *filter.MinAmount {
		return false
	}
	if filter.MaxAmount != nil && expense.Amount > *filter.MaxAmount {
		return false
	}
	if !filter.StartDate.IsZero() && expense.Date.Before(filter.StartDate) {
		return false
	}
	if !filter.EndDate.IsZero() && expense.Date.After(filter.EndDate) {
		return false
	}
	return true
}
