package report

import (
	"errors"
	"net/http"
	"time"

	"github.com/kharcha/kharcha/internal/rest"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/expense"
)

// CsvExportDTO wraps the rendered CSV document so the response stays JSON.
type CsvExportDTO struct {
	CSV string `json:"csv"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	format := Format(query.Get("format"))
	if format == "" {
		format = FormatJSON
	}

	var start, end time.Time
	if raw := query.Get("start_date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid start_date format", "start_date must be an ISO-8601 calendar date (YYYY-MM-DD)")
			return
		}
		start = parsed
	}
	if raw := query.Get("end_date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid end_date format", "end_date must be an ISO-8601 calendar date (YYYY-MM-DD)")
			return
		}
		end = parsed
	}

	result, err := h.service.Export(r.Context(), format, start, end)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) {
			rest.WriteError(w, http.StatusBadRequest, "Unsupported format", "format must be one of: json, csv")
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}

	if result.Format == FormatCSV {
		rest.WriteJSON(w, http.StatusOK, CsvExportDTO{CSV: result.CSV})
		return
	}

	dtos := make([]expense.ExpenseDTO, 0, len(result.Expenses))
	for _, exp := range result.Expenses {
		dtos = append(dtos, expense.ToDTO(exp))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}
