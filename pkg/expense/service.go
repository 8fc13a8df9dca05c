package expense

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kharcha/kharcha/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, expense Expense) (Expense, error)
	List(ctx context.Context, filter Filter) ([]Expense, error)
	Get(ctx context.Context, id string) (Expense, error)
	Update(ctx context.Context, id string, update Update) (Expense, error)
	Delete(ctx context.Context, id string) error
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) Create(ctx context.Context, expense Expense) (Expense, error) {
	expense.Tags = normalizeTags(expense.Tags)
	if expense.Priority == "" {
		expense.Priority = PriorityMedium
	}
	if err := expense.Validate(); err != nil {
		return Expense{}, err
	}

	now := s.clock.Now()
	expense.ID = uuid.NewString()
	expense.CreatedAt = now
	expense.UpdatedAt = now

	if err := s.repo.Store(ctx, expense); err != nil {
		return Expense{}, err
	}
	log.Debugf("stored expense %s (%s, %.2f)", expense.ID, expense.Category, expense.Amount)
	return expense, nil
}

func (s *ServiceImpl) List(ctx context.Context, filter Filter) ([]Expense, error) {
	return s.repo.Find(ctx, filter)
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Expense, error) {
	return s.repo.FindById(ctx, id)
}

func (s *ServiceImpl) Update(ctx context.Context, id string, update Update) (Expense, error) {
	expense, err := s.repo.FindById(ctx, id)
	if err != nil {
		return Expense{}, err
	}

	if update.Description != nil {
		expense.Description = *update.Description
	}
	if update.Amount != nil {
		expense.Amount = *update.Amount
	}
	if update.Category != nil {
		expense.Category = *update.Category
	}
	if update.Date != nil {
		expense.Date = *update.Date
	}
	if update.Priority != nil {
		expense.Priority = *update.Priority
	}
	if update.Tags != nil {
		expense.Tags = normalizeTags(*update.Tags)
	}
	if update.Notes != nil {
		expense.Notes = *update.Notes
	}

	if err := expense.Validate(); err != nil {
		return Expense{}, err
	}
	expense.UpdatedAt = s.clock.Now()

	updated, err := s.repo.Update(ctx, expense)
	if err != nil {
		return Expense{}, err
	}
	if !updated {
		return Expense{}, ErrNotFound
	}
	return expense, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	log.Debugf("deleted expense %s", id)
	return nil
}

// normalizeTags trims whitespace and drops empty entries so that the stored
// comma-joined form round-trips cleanly.
func normalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			normalized = append(normalized, tag)
		}
	}
	return normalized
}
