package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/kharcha/kharcha/internal/rest"
	"github.com/kharcha/kharcha/internal/utils"
	log "github.com/sirupsen/logrus"
)

type ExpenseDTO struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	Category    string   `json:"category"`
	Date        string   `json:"date"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
	Notes       string   `json:"notes,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type ExpenseCreateDTO struct {
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	Category    string   `json:"category"`
	Date        string   `json:"date"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
	Notes       string   `json:"notes"`
}

type ExpenseUpdateDTO struct {
	Description *string   `json:"description"`
	Amount      *float64  `json:"amount"`
	Category    *string   `json:"category"`
	Date        *string   `json:"date"`
	Priority    *string   `json:"priority"`
	Tags        *[]string `json:"tags"`
	Notes       *string   `json:"notes"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new expense")

	var dto ExpenseCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	var date time.Time
	if dto.Date != "" {
		parsed, err := utils.ParseDate(dto.Date)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "date must be an ISO-8601 calendar date (YYYY-MM-DD)")
			return
		}
		date = parsed
	}

	created, err := h.service.Create(r.Context(), Expense{
		Description: dto.Description,
		Amount:      dto.Amount,
		Category:    Category(dto.Category),
		Date:        date,
		Priority:    Priority(dto.Priority),
		Tags:        dto.Tags,
		Notes:       dto.Notes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, ToDTO(created))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	expenses, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dtos := make([]ExpenseDTO, 0, len(expenses))
	for _, expense := range expenses {
		dtos = append(dtos, ToDTO(expense))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	expense, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(expense))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var dto ExpenseUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	update := Update{
		Description: dto.Description,
		Amount:      dto.Amount,
		Tags:        dto.Tags,
		Notes:       dto.Notes,
	}
	if dto.Category != nil {
		category := Category(*dto.Category)
		update.Category = &category
	}
	if dto.Priority != nil {
		priority := Priority(*dto.Priority)
		update.Priority = &priority
	}
	if dto.Date != nil {
		date, err := utils.ParseDate(*dto.Date)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "date must be an ISO-8601 calendar date (YYYY-MM-DD)")
			return
		}
		update.Date = &date
	}

	updated, err := h.service.Update(r.Context(), id, update)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully", "id": id})
}

// filterFromQuery parses the /expenses/ query parameters. Malformed dates and
// numbers are rejected rather than silently ignored.
func filterFromQuery(r *http.Request) (Filter, error) {
	query := r.URL.Query()
	filter := Filter{Limit: 1000}

	if category := query.Get("category"); category != "" && category != "All" {
		filter.Category = Category(category)
	}
	if priority := query.Get("priority"); priority != "" && priority != "All" {
		filter.Priority = Priority(priority)
	}
	if raw := query.Get("min_amount"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Filter{}, validationErrorf("min_amount must be a number, got %q", raw)
		}
		filter.MinAmount = &value
	}
	if raw := query.Get("max_amount"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Filter{}, validationErrorf("max_amount must be a number, got %q", raw)
		}
		filter.MaxAmount = &value
	}
	if raw := query.Get("start_date"); raw != "" {
		date, err := utils.ParseDate(raw)
		if err != nil {
			return Filter{}, validationErrorf("start_date must be an ISO-8601 calendar date, got %q", raw)
		}
		filter.StartDate = date
	}
	if raw := query.Get("end_date"); raw != "" {
		date, err := utils.ParseDate(raw)
		if err != nil {
			return Filter{}, validationErrorf("end_date must be an ISO-8601 calendar date, got %q", raw)
		}
		filter.EndDate = date
	}
	if raw := query.Get("tags"); raw != "" {
		filter.Tags = splitTags(raw)
	}
	if raw := query.Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return Filter{}, validationErrorf("skip must be a non-negative integer, got %q", raw)
		}
		filter.Skip = skip
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return Filter{}, validationErrorf("limit must be a non-negative integer, got %q", raw)
		}
		filter.Limit = limit
	}

	return filter, nil
}

// writeServiceError maps domain errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		rest.WriteError(w, http.StatusBadRequest, "Validation failed", validationErr.Reason)
	case errors.Is(err, ErrNotFound):
		rest.WriteError(w, http.StatusNotFound, "Expense not found", "")
	default:
		rest.WriteError(w, http.StatusInternalServerError, err.Error(), "")
	}
}

func ToDTO(expense Expense) ExpenseDTO {
	return ExpenseDTO{
		ID:          expense.ID,
		Description: expense.Description,
		Amount:      expense.Amount,
		Category:    string(expense.Category),
		Date:        utils.FormatDate(expense.Date),
		Priority:    string(expense.Priority),
		Tags:        expense.Tags,
		Notes:       expense.Notes,
		CreatedAt:   expense.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   expense.UpdatedAt.Format(time.RFC3339),
	}
}
