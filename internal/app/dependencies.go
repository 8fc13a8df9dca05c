package app

import (
	"database/sql"

	"github.com/kharcha/kharcha/internal/config"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/analytics"
	"github.com/kharcha/kharcha/pkg/budget"
	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/kharcha/kharcha/pkg/report"
	"github.com/kharcha/kharcha/pkg/sample"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	ExpenseRepo    expense.Repository
	ExpenseService expense.Service
	ExpenseHandler *expense.Handler

	AnalyticsService analytics.Service
	AnalyticsHandler *analytics.Handler

	BudgetRepo    budget.Repository
	BudgetService budget.Service
	BudgetHandler *budget.Handler

	ReportService report.Service
	ReportHandler *report.Handler

	SampleGenerator *sample.Generator
	SampleHandler   *sample.Handler

	Clock utils.Clock
}

func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	clock := utils.SystemClock{}

	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, clock)
	expenseHandler := expense.NewHandler(expenseService)

	analyticsService := analytics.NewService(expenseRepo, clock, cfg.Finance.MonthlyIncome)
	analyticsHandler := analytics.NewHandler(analyticsService)

	budgetRepo := budget.NewRepository(db)
	budgetService := budget.NewService(budgetRepo, expenseRepo, clock)
	budgetHandler := budget.NewHandler(budgetService)

	reportService := report.NewService(expenseRepo, report.NewCsvRenderer())
	reportHandler := report.NewHandler(reportService)

	sampleGenerator := sample.NewGenerator(expenseRepo, clock)
	sampleHandler := sample.NewHandler(sampleGenerator)

	return &Dependencies{
		ExpenseRepo:    expenseRepo,
		ExpenseService: expenseService,
		ExpenseHandler: expenseHandler,

		AnalyticsService: analyticsService,
		AnalyticsHandler: analyticsHandler,

		BudgetRepo:    budgetRepo,
		BudgetService: budgetService,
		BudgetHandler: budgetHandler,

		ReportService: reportService,
		ReportHandler: reportHandler,

		SampleGenerator: sampleGenerator,
		SampleHandler:   sampleHandler,

		Clock: clock,
	}
}
