package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kharcha/kharcha/internal/config"
	"github.com/kharcha/kharcha/internal/rest"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Health
	r.HandleFunc("/", healthHandler(cfg, deps)).Methods("GET")

	// Expenses
	r.HandleFunc("/expenses/", deps.ExpenseHandler.List).Methods("GET")
	r.HandleFunc("/expenses/", deps.ExpenseHandler.Create).Methods("POST")
	r.HandleFunc("/expenses/{id}", deps.ExpenseHandler.Get).Methods("GET")
	r.HandleFunc("/expenses/{id}", deps.ExpenseHandler.Update).Methods("PUT")
	r.HandleFunc("/expenses/{id}", deps.ExpenseHandler.Delete).Methods("DELETE")

	// Analytics
	r.HandleFunc("/analytics/overview", deps.AnalyticsHandler.GetOverview).Methods("GET")

	// Budgets
	r.HandleFunc("/budgets/alerts", deps.BudgetHandler.GetAlerts).Methods("GET")
	r.HandleFunc("/budgets/", deps.BudgetHandler.GetAll).Methods("GET")
	r.HandleFunc("/budgets/{category}", deps.BudgetHandler.SetLimit).Methods("PUT")

	// Reports
	r.HandleFunc("/reports/export", deps.ReportHandler.Export).Methods("GET")

	// Sample data
	r.HandleFunc("/sample-data/initialize", deps.SampleHandler.Initialize).Methods("POST")
}

// healthHandler always answers 200; a degraded database is reported in the
// body, not the status code, so dashboards can render the detail.
func healthHandler(cfg config.Application, deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		databaseStatus := "connected"
		status := "healthy"
		if _, err := deps.ExpenseRepo.Count(r.Context()); err != nil {
			databaseStatus = "unavailable"
			status = "degraded"
		}

		rest.WriteJSON(w, http.StatusOK, map[string]string{
			"message":  "Kharcha Expense Tracker API",
			"version":  version,
			"database": databaseStatus,
			"currency": cfg.Finance.Currency,
			"status":   status,
		})
	}
}
