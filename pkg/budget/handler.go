package budget

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kharcha/kharcha/internal/rest"
	"github.com/kharcha/kharcha/pkg/expense"
)

type BudgetDTO struct {
	Category     string  `json:"category"`
	MonthlyLimit float64 `json:"monthly_limit"`
}

type AlertDTO struct {
	Category   string  `json:"category"`
	Spent      float64 `json:"spent"`
	Budget     float64 `json:"budget"`
	Percentage float64 `json:"percentage"`
	AlertLevel string  `json:"alert_level"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.service.GetAll(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}

	dtos := make([]BudgetDTO, 0, len(budgets))
	for _, budget := range budgets {
		dtos = append(dtos, BudgetDTO{Category: string(budget.Category), MonthlyLimit: budget.MonthlyLimit})
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) SetLimit(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	var dto struct {
		MonthlyLimit float64 `json:"monthly_limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	budget, err := h.service.SetLimit(r.Context(), expense.Category(category), dto.MonthlyLimit)
	if err != nil {
		var validationErr *expense.ValidationError
		if errors.As(err, &validationErr) {
			rest.WriteError(w, http.StatusBadRequest, "Validation failed", validationErr.Reason)
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}

	rest.WriteJSON(w, http.StatusOK, BudgetDTO{Category: string(budget.Category), MonthlyLimit: budget.MonthlyLimit})
}

func (h *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.service.GetAlerts(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}

	dtos := make([]AlertDTO, 0, len(alerts))
	for _, alert := range alerts {
		dtos = append(dtos, AlertDTO{
			Category:   string(alert.Category),
			Spent:      alert.Spent,
			Budget:     alert.Budget,
			Percentage: alert.Percentage,
			AlertLevel: string(alert.Level),
		})
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}
