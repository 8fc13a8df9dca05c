package analytics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T) (*Handler, *expense.StubRepository) {
	repo := expense.NewStubRepository()
	clock := &utils.MockClock{FixedNow: now}
	t.Cleanup(repo.Cleanup)
	return NewHandler(NewService(repo, clock, 15000)), repo
}

func TestHandler_GetOverview_InvalidStartDate(t *testing.T) {
	handler, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/analytics/overview?start_date=yesterday", nil)
	w := httptest.NewRecorder()
	handler.GetOverview(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResponse struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
	assert.Contains(t, errResponse.Error, "Invalid start_date format")
	assert.Contains(t, errResponse.Details, "ISO-8601")
}

func TestHandler_GetOverview_InvalidEndDate(t *testing.T) {
	handler, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/analytics/overview?end_date=2026-13-45", nil)
	w := httptest.NewRecorder()
	handler.GetOverview(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetOverview_EmptyRange(t *testing.T) {
	handler, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/analytics/overview?start_date=2030-01-01&end_date=2030-01-31", nil)
	w := httptest.NewRecorder()
	handler.GetOverview(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var dto OverviewDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.Zero(t, dto.TotalSpent)
	assert.NotNil(t, dto.CategoryBreakdown)
	assert.Empty(t, dto.CategoryBreakdown)
	assert.Empty(t, dto.TopExpenses)
}

func TestHandler_GetOverview_SerializesAggregates(t *testing.T) {
	handler, repo := setupHandler(t)
	addExpense(t, repo, 80, expense.CategoryFood, "2026-08-20")
	addExpense(t, repo, 200, expense.CategoryEntertainment, "2026-08-21")

	req := httptest.NewRequest(http.MethodGet, "/analytics/overview?start_date=2026-08-20&end_date=2026-08-21", nil)
	w := httptest.NewRecorder()
	handler.GetOverview(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var dto OverviewDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.Equal(t, 280.0, dto.TotalSpent)
	assert.Equal(t, 140.0, dto.AverageDaily)
	assert.Equal(t, 80.0, dto.CategoryBreakdown["Food & Dining"])
	assert.Equal(t, 200.0, dto.CategoryBreakdown["Entertainment"])
	require.Len(t, dto.TopExpenses, 2)
	assert.Equal(t, 200.0, dto.TopExpenses[0].Amount)
	assert.Len(t, dto.WeeklySpending, 8)
}
