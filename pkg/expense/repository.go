package expense

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/kharcha/kharcha/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, expense Expense) error
	Find(ctx context.Context, filter Filter) ([]Expense, error)
	FindById(ctx context.Context, id string) (Expense, error)
	Update(ctx context.Context, expense Expense) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const expenseColumns = "id, description, amount, category, date, priority, tags, notes, created_at, updated_at"

func (r *RepositoryImpl) Store(ctx context.Context, expense Expense) error {
	query, args, err := sq.Insert("expenses").
		Columns("id", "description", "amount", "category", "date", "priority", "tags", "notes", "created_at", "updated_at").
		Values(
			expense.ID,
			expense.Description,
			expense.Amount,
			string(expense.Category),
			utils.FormatDate(expense.Date),
			string(expense.Priority),
			strings.Join(expense.Tags, ","),
			expense.Notes,
			expense.CreatedAt.Format(time.RFC3339),
			expense.UpdatedAt.Format(time.RFC3339),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("could not build insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		err := fmt.Errorf("could not store expense: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

// Find returns expenses matching the filter, newest first. Attribute and range
// predicates are pushed into SQL; tag intersection and pagination are applied
// afterwards so that skip/limit always count post-filter rows.
func (r *RepositoryImpl) Find(ctx context.Context, filter Filter) ([]Expense, error) {
	builder := sq.Select(expenseColumns).From("expenses").OrderBy("date DESC, created_at DESC")

	if filter.Category != "" {
		builder = builder.Where(sq.Eq{"category": string(filter.Category)})
	}
	if filter.Priority != "" {
		builder = builder.Where(sq.Eq{"priority": string(filter.Priority)})
	}
	if filter.MinAmount != nil {
		builder = builder.Where(sq.GtOrEq{"amount": *filter.MinAmount})
	}
	if filter.MaxAmount != nil {
		builder = builder.Where(sq.LtOrEq{"amount": *filter.MaxAmount})
	}
	if !filter.StartDate.IsZero() {
		builder = builder.Where(sq.GtOrEq{"date": utils.FormatDate(filter.StartDate)})
	}
	if !filter.EndDate.IsZero() {
		builder = builder.Where(sq.LtOrEq{"date": utils.FormatDate(filter.EndDate)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build select query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	expenses := []Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	if len(filter.Tags) > 0 {
		expenses = filterByTags(expenses, filter.Tags)
	}

	return paginate(expenses, filter.Skip, filter.Limit), nil
}

func (r *RepositoryImpl) FindById(ctx context.Context, id string) (Expense, error) {
	query, args, err := sq.Select(expenseColumns).From("expenses").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return Expense{}, fmt.Errorf("could not build select query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	expense, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return Expense{}, ErrNotFound
	}
	if err != nil {
		log.Error(err)
		return Expense{}, err
	}
	return expense, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, expense Expense) (bool, error) {
	query, args, err := sq.Update("expenses").
		Set("description", expense.Description).
		Set("amount", expense.Amount).
		Set("category", string(expense.Category)).
		Set("date", utils.FormatDate(expense.Date)).
		Set("priority", string(expense.Priority)).
		Set("tags", strings.Join(expense.Tags, ",")).
		Set("notes", expense.Notes).
		Set("updated_at", expense.UpdatedAt.Format(time.RFC3339)).
		Where(sq.Eq{"id": expense.ID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("could not build update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not update expense: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := sq.Delete("expenses").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("could not build delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not delete expense: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepositoryImpl) Count(ctx context.Context) (int, error) {
	row := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM expenses")
	var count int
	if err := row.Scan(&count); err != nil {
		err := fmt.Errorf("could not count expenses: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (Expense, error) {
	var expense Expense
	var category, priority, dateString, createdAt, updatedAt, tags string
	var notes sql.NullString
	if err := row.Scan(
		&expense.ID,
		&expense.Description,
		&expense.Amount,
		&category,
		&dateString,
		&priority,
		&tags,
		&notes,
		&createdAt,
		&updatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return Expense{}, err
		}
		return Expense{}, fmt.Errorf("could not scan expense: %w", err)
	}

	expense.Category = Category(category)
	expense.Priority = Priority(priority)
	expense.Notes = notes.String
	expense.Tags = splitTags(tags)

	date, err := utils.ParseDate(dateString)
	if err != nil {
		return Expense{}, fmt.Errorf("could not parse expense date: %w", err)
	}
	expense.Date = date

	if expense.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return Expense{}, fmt.Errorf("could not parse created_at: %w", err)
	}
	if expense.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return Expense{}, fmt.Errorf("could not parse updated_at: %w", err)
	}
	return expense, nil
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func filterByTags(expenses []Expense, tags []string) []Expense {
	wanted := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		wanted[strings.ToLower(strings.TrimSpace(tag))] = struct{}{}
	}

	matched := []Expense{}
	for _, expense := range expenses {
		for _, tag := range expense.Tags {
			if _, ok := wanted[strings.ToLower(tag)]; ok {
				matched = append(matched, expense)
				break
			}
		}
	}
	return matched
}

func paginate(expenses []Expense, skip, limit int) []Expense {
	if skip >= len(expenses) {
		return []Expense{}
	}
	expenses = expenses[skip:]
	if limit > 0 && limit < len(expenses) {
		expenses = expenses[:limit]
	}
	return expenses
}
