package dashboard

// Page identifies one of the dashboard views.
type Page string

const (
	PageDashboard   Page = "Dashboard"
	PageAddExpense  Page = "Add Expense"
	PageExpenseList Page = "Expense List"
	PageAnalytics   Page = "Analytics"
	PageBudgets     Page = "Budgets"
	PageExport      Page = "Export"
)

func Pages() []Page {
	return []Page{PageDashboard, PageAddExpense, PageExpenseList, PageAnalytics, PageBudgets, PageExport}
}

func (p Page) IsValid() bool {
	for _, page := range Pages() {
		if p == page {
			return true
		}
	}
	return false
}

// Filters holds the expense list filter selection. Empty string means "All".
type Filters struct {
	Category  string   `json:"category"`
	Priority  string   `json:"priority"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Tags      []string `json:"tags"`
}

// State is the whole per-session UI state. It is a plain serializable value
// so a session can be persisted and restored between interactions.
type State struct {
	Page         Page    `json:"page"`
	Filters      Filters `json:"filters"`
	EditTargetID string  `json:"edit_target_id"`
	LastError    string  `json:"last_error"`
}

func NewState() State {
	return State{Page: PageDashboard}
}

// Event is one user interaction applied to the state.
type Event interface {
	isEvent()
}

// Navigate switches to another page.
type Navigate struct {
	To Page
}

// SetFilters replaces the active expense list filters.
type SetFilters struct {
	Filters Filters
}

// ClearFilters resets the filter selection to "All".
type ClearFilters struct{}

// SelectForEdit opens the expense form prefilled with an existing expense.
type SelectForEdit struct {
	ID string
}

// CancelEdit abandons the edit and returns to the list.
type CancelEdit struct{}

// ReportError records a user-visible failure message on the current page.
type ReportError struct {
	Message string
}

// DismissError clears the failure message.
type DismissError struct{}

func (Navigate) isEvent()      {}
func (SetFilters) isEvent()    {}
func (ClearFilters) isEvent()  {}
func (SelectForEdit) isEvent() {}
func (CancelEdit) isEvent()    {}
func (ReportError) isEvent()   {}
func (DismissError) isEvent()  {}

// Reduce applies an event to a state and returns the resulting state. It is
// pure: the input state is never mutated and the same state and event always
// produce the same result.
func Reduce(state State, event Event) State {
	next := state
	next.Filters.Tags = copyTags(state.Filters.Tags)

	switch e := event.(type) {
	case Navigate:
		if !e.To.IsValid() {
			return next
		}
		next.Page = e.To
		next.LastError = ""
		if e.To != PageAddExpense {
			next.EditTargetID = ""
		}
	case SetFilters:
		next.Filters = e.Filters
		next.Filters.Tags = copyTags(e.Filters.Tags)
	case ClearFilters:
		next.Filters = Filters{}
	case SelectForEdit:
		if e.ID == "" {
			return next
		}
		next.EditTargetID = e.ID
		next.Page = PageAddExpense
		next.LastError = ""
	case CancelEdit:
		next.EditTargetID = ""
		next.Page = PageExpenseList
	case ReportError:
		next.LastError = e.Message
	case DismissError:
		next.LastError = ""
	}

	return next
}

func copyTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	copied := make([]string, len(tags))
	copy(copied, tags)
	return copied
}
