package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kharcha/kharcha/internal/rest"
	"github.com/kharcha/kharcha/pkg/analytics"
	"github.com/kharcha/kharcha/pkg/budget"
	"github.com/kharcha/kharcha/pkg/expense"
	log "github.com/sirupsen/logrus"
)

const defaultTimeout = 10 * time.Second

// ConnectionError reports that the backend could not be reached at all.
// Callers surface it as a blocking page-level error instead of retrying.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot reach expense backend at %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// APIError carries a non-2xx response decoded from the backend error body.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("backend returned %d: %s (%s)", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a backend 404 response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsValidation reports whether err is a backend 400 response.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest
}

// ExpenseQuery mirrors the /expenses/ filter parameters. Zero values are
// omitted from the request.
type ExpenseQuery struct {
	Category  string
	Priority  string
	StartDate string
	EndDate   string
	MinAmount *float64
	MaxAmount *float64
	Tags      []string
	Skip      int
	Limit     int
}

type Client interface {
	ListExpenses(ctx context.Context, query ExpenseQuery) ([]expense.ExpenseDTO, error)
	CreateExpense(ctx context.Context, dto expense.ExpenseCreateDTO) (expense.ExpenseDTO, error)
	GetExpense(ctx context.Context, id string) (expense.ExpenseDTO, error)
	UpdateExpense(ctx context.Context, id string, dto expense.ExpenseUpdateDTO) (expense.ExpenseDTO, error)
	DeleteExpense(ctx context.Context, id string) error
	GetAnalyticsOverview(ctx context.Context, startDate string, endDate string) (analytics.OverviewDTO, error)
	GetBudgets(ctx context.Context) ([]budget.BudgetDTO, error)
	SetBudgetLimit(ctx context.Context, category string, monthlyLimit float64) (budget.BudgetDTO, error)
	GetBudgetAlerts(ctx context.Context) ([]budget.AlertDTO, error)
	ExportCSV(ctx context.Context, startDate string, endDate string) (string, error)
	InitializeSampleData(ctx context.Context) error
}

type ClientImpl struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *ClientImpl {
	return &ClientImpl{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// do executes a single request against the backend and decodes the JSON
// response into out (when out is non-nil). There is no retry.
func (c *ClientImpl) do(ctx context.Context, method string, path string, query url.Values, body any, out any) error {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to reach backend: %v", err)
		return &ConnectionError{URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var errorBody rest.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errorBody); err != nil {
			errorBody.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errorBody.Error, Details: errorBody.Details}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return err
	}
	return nil
}

func (c *ClientImpl) ListExpenses(ctx context.Context, query ExpenseQuery) ([]expense.ExpenseDTO, error) {
	params := url.Values{}
	if query.Category != "" {
		params.Set("category", query.Category)
	}
	if query.Priority != "" {
		params.Set("priority", query.Priority)
	}
	if query.StartDate != "" {
		params.Set("start_date", query.StartDate)
	}
	if query.EndDate != "" {
		params.Set("end_date", query.EndDate)
	}
	if query.MinAmount != nil {
		params.Set("min_amount", strconv.FormatFloat(*query.MinAmount, 'f', -1, 64))
	}
	if query.MaxAmount != nil {
		params.Set("max_amount", strconv.FormatFloat(*query.MaxAmount, 'f', -1, 64))
	}
	if len(query.Tags) > 0 {
		params.Set("tags", strings.Join(query.Tags, ","))
	}
	if query.Skip > 0 {
		params.Set("skip", strconv.Itoa(query.Skip))
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}

	var expenses []expense.ExpenseDTO
	if err := c.do(ctx, http.MethodGet, "/expenses/", params, nil, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

func (c *ClientImpl) CreateExpense(ctx context.Context, dto expense.ExpenseCreateDTO) (expense.ExpenseDTO, error) {
	var created expense.ExpenseDTO
	if err := c.do(ctx, http.MethodPost, "/expenses/", nil, dto, &created); err != nil {
		return expense.ExpenseDTO{}, err
	}
	return created, nil
}

func (c *ClientImpl) GetExpense(ctx context.Context, id string) (expense.ExpenseDTO, error) {
	var found expense.ExpenseDTO
	if err := c.do(ctx, http.MethodGet, "/expenses/"+url.PathEscape(id), nil, nil, &found); err != nil {
		return expense.ExpenseDTO{}, err
	}
	return found, nil
}

func (c *ClientImpl) UpdateExpense(ctx context.Context, id string, dto expense.ExpenseUpdateDTO) (expense.ExpenseDTO, error) {
	var updated expense.ExpenseDTO
	if err := c.do(ctx, http.MethodPut, "/expenses/"+url.PathEscape(id), nil, dto, &updated); err != nil {
		return expense.ExpenseDTO{}, err
	}
	return updated, nil
}

func (c *ClientImpl) DeleteExpense(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/expenses/"+url.PathEscape(id), nil, nil, nil)
}

func (c *ClientImpl) GetAnalyticsOverview(ctx context.Context, startDate string, endDate string) (analytics.OverviewDTO, error) {
	params := url.Values{}
	if startDate != "" {
		params.Set("start_date", startDate)
	}
	if endDate != "" {
		params.Set("end_date", endDate)
	}

	var overview analytics.OverviewDTO
	if err := c.do(ctx, http.MethodGet, "/analytics/overview", params, nil, &overview); err != nil {
		return analytics.OverviewDTO{}, err
	}
	return overview, nil
}

func (c *ClientImpl) GetBudgets(ctx context.Context) ([]budget.BudgetDTO, error) {
	var budgets []budget.BudgetDTO
	if err := c.do(ctx, http.MethodGet, "/budgets/", nil, nil, &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}

func (c *ClientImpl) SetBudgetLimit(ctx context.Context, category string, monthlyLimit float64) (budget.BudgetDTO, error) {
	body := map[string]float64{"monthly_limit": monthlyLimit}
	var updated budget.BudgetDTO
	if err := c.do(ctx, http.MethodPut, "/budgets/"+url.PathEscape(category), nil, body, &updated); err != nil {
		return budget.BudgetDTO{}, err
	}
	return updated, nil
}

func (c *ClientImpl) GetBudgetAlerts(ctx context.Context) ([]budget.AlertDTO, error) {
	var alerts []budget.AlertDTO
	if err := c.do(ctx, http.MethodGet, "/budgets/alerts", nil, nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (c *ClientImpl) ExportCSV(ctx context.Context, startDate string, endDate string) (string, error) {
	params := url.Values{}
	params.Set("format", "csv")
	if startDate != "" {
		params.Set("start_date", startDate)
	}
	if endDate != "" {
		params.Set("end_date", endDate)
	}

	var export struct {
		CSV string `json:"csv"`
	}
	if err := c.do(ctx, http.MethodGet, "/reports/export", params, nil, &export); err != nil {
		return "", err
	}
	return export.CSV, nil
}

func (c *ClientImpl) InitializeSampleData(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/sample-data/initialize", nil, nil, nil)
}
