package analytics

import (
	"net/http"
	"time"

	"github.com/kharcha/kharcha/internal/rest"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/expense"
)

type OverviewDTO struct {
	TotalSpent           float64              `json:"total_spent"`
	AverageDaily         float64              `json:"average_daily"`
	CategoryBreakdown    map[string]float64   `json:"category_breakdown"`
	MonthlyTrend         []MonthlyAmountDTO   `json:"monthly_trend"`
	WeeklySpending       []WeeklyAmountDTO    `json:"weekly_spending"`
	PriorityDistribution map[string]float64   `json:"priority_distribution"`
	TopExpenses          []expense.ExpenseDTO `json:"top_expenses"`
	DailyPattern         map[string]float64   `json:"daily_pattern"`
	SpendingVelocity     VelocityDTO          `json:"spending_velocity"`
	SavingsRate          float64              `json:"savings_rate"`
}

type MonthlyAmountDTO struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

type WeeklyAmountDTO struct {
	Week   string  `json:"week"`
	Amount float64 `json:"amount"`
}

type VelocityDTO struct {
	CurrentWeek      float64 `json:"current_week"`
	PreviousWeek     float64 `json:"previous_week"`
	ChangePercentage float64 `json:"change_percentage"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	var start, end time.Time

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid start_date format", "start_date must be an ISO-8601 calendar date (YYYY-MM-DD)")
			return
		}
		start = parsed
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid end_date format", "end_date must be an ISO-8601 calendar date (YYYY-MM-DD)")
			return
		}
		end = parsed
	}

	overview, err := h.service.GetOverview(r.Context(), start, end)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}

	rest.WriteJSON(w, http.StatusOK, toDTO(overview))
}

func toDTO(overview Overview) OverviewDTO {
	dto := OverviewDTO{
		TotalSpent:           overview.TotalSpent,
		AverageDaily:         overview.AverageDaily,
		CategoryBreakdown:    map[string]float64{},
		MonthlyTrend:         make([]MonthlyAmountDTO, 0, len(overview.MonthlyTrend)),
		WeeklySpending:       make([]WeeklyAmountDTO, 0, len(overview.WeeklySpending)),
		PriorityDistribution: map[string]float64{},
		TopExpenses:          make([]expense.ExpenseDTO, 0, len(overview.TopExpenses)),
		DailyPattern:         overview.DailyPattern,
		SpendingVelocity: VelocityDTO{
			CurrentWeek:      overview.SpendingVelocity.CurrentWeek,
			PreviousWeek:     overview.SpendingVelocity.PreviousWeek,
			ChangePercentage: overview.SpendingVelocity.ChangePercentage,
		},
		SavingsRate: overview.SavingsRate,
	}

	for category, amount := range overview.CategoryBreakdown {
		dto.CategoryBreakdown[string(category)] = amount
	}
	for priority, amount := range overview.PriorityDistribution {
		dto.PriorityDistribution[string(priority)] = amount
	}
	for _, month := range overview.MonthlyTrend {
		dto.MonthlyTrend = append(dto.MonthlyTrend, MonthlyAmountDTO{Month: month.Month, Amount: month.Amount})
	}
	for _, week := range overview.WeeklySpending {
		dto.WeeklySpending = append(dto.WeeklySpending, WeeklyAmountDTO{Week: week.Week, Amount: week.Amount})
	}
	for _, top := range overview.TopExpenses {
		dto.TopExpenses = append(dto.TopExpenses, expense.ToDTO(top))
	}
	return dto
}
