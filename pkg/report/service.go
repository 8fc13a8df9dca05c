package report

import (
	"context"
	"time"

	"github.com/kharcha/kharcha/pkg/expense"
)

type Service interface {
	// Export returns all expenses within the inclusive [start, end] range in
	// the requested format. Zero bounds are unbounded.
	Export(ctx context.Context, format Format, start, end time.Time) (Report, error)
}

type ServiceImpl struct {
	expenses expense.Repository
	renderer CsvRenderer
}

func NewService(expenses expense.Repository, renderer CsvRenderer) *ServiceImpl {
	return &ServiceImpl{expenses: expenses, renderer: renderer}
}

func (s *ServiceImpl) Export(ctx context.Context, format Format, start, end time.Time) (Report, error) {
	if format != FormatJSON && format != FormatCSV {
		return Report{}, ErrUnsupportedFormat
	}

	matching, err := s.expenses.Find(ctx, expense.Filter{StartDate: start, EndDate: end})
	if err != nil {
		return Report{}, err
	}

	report := Report{Format: format, Expenses: matching}
	if format == FormatCSV {
		csv, err := s.renderer.RenderExpenses(matching)
		if err != nil {
			return Report{}, err
		}
		report.CSV = csv
	}
	return report, nil
}
