package budget

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/kharcha/kharcha/pkg/expense"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Budget, error)
	Upsert(ctx context.Context, budget Budget) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Budget, error) {
	query, args, err := sq.Select("category", "monthly_limit").From("budgets").OrderBy("category").ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build select query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	budgets := []Budget{}
	for rows.Next() {
		var budget Budget
		var category string
		if err := rows.Scan(&category, &budget.MonthlyLimit); err != nil {
			err := fmt.Errorf("could not scan budget: %w", err)
			log.Error(err)
			return nil, err
		}
		budget.Category = expense.Category(category)
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return budgets, nil
}

func (r *RepositoryImpl) Upsert(ctx context.Context, budget Budget) error {
	query, args, err := sq.Insert("budgets").
		Columns("category", "monthly_limit").
		Values(string(budget.Category), budget.MonthlyLimit).
		Suffix("ON CONFLICT(category) DO UPDATE SET monthly_limit = excluded.monthly_limit").
		ToSql()
	if err != nil {
		return fmt.Errorf("could not build upsert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		err := fmt.Errorf("could not upsert budget: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
