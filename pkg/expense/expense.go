package expense

import (
	"errors"
	"fmt"
	"time"
)

// Category is the closed set of spending categories.
type Category string

const (
	CategoryFood          Category = "Food & Dining"
	CategoryTransport     Category = "Transportation"
	CategoryEntertainment Category = "Entertainment"
	CategoryUtilities     Category = "Utilities"
	CategoryShopping      Category = "Shopping"
	CategoryHealthcare    Category = "Healthcare"
	CategoryTravel        Category = "Travel"
	CategoryEducation     Category = "Education"
	CategoryHousing       Category = "Housing"
	CategoryOther         Category = "Other"
)

// Categories returns all known categories in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryUtilities,
		CategoryShopping,
		CategoryHealthcare,
		CategoryTravel,
		CategoryEducation,
		CategoryHousing,
		CategoryOther,
	}
}

func (c Category) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Priority marks how discretionary an expense was.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Expense is a single recorded spending transaction. Date carries no time
// component; CreatedAt/UpdatedAt are full timestamps.
type Expense struct {
	ID          string
	Description string
	Amount      float64
	Category    Category
	Date        time.Time
	Priority    Priority
	Tags        []string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Update carries a partial modification; nil fields are left untouched.
type Update struct {
	Description *string
	Amount      *float64
	Category    *Category
	Date        *time.Time
	Priority    *Priority
	Tags        *[]string
	Notes       *string
}

// Filter selects expenses by attribute predicates. Zero-valued fields do not
// constrain the result. Date bounds are inclusive; Tags matches expenses whose
// tag set intersects the given tags (case-insensitive).
type Filter struct {
	Category  Category
	Priority  Priority
	MinAmount *float64
	MaxAmount *float64
	Tags      []string
	StartDate time.Time
	EndDate   time.Time
	Skip      int
	Limit     int
}

// ErrNotFound is returned when an expense id does not exist.
var ErrNotFound = errors.New("expense not found")

// ValidationError reports a rejected write. It never silently defaults the
// offending field.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the writable fields of an expense.
func (e Expense) Validate() error {
	if e.Description == "" {
		return validationErrorf("description must not be empty")
	}
	if e.Amount <= 0 {
		return validationErrorf("amount must be positive, got %v", e.Amount)
	}
	if !e.Category.IsValid() {
		return validationErrorf("unknown category %q", e.Category)
	}
	if e.Date.IsZero() {
		return validationErrorf("date is required")
	}
	if !e.Priority.IsValid() {
		return validationErrorf("unknown priority %q", e.Priority)
	}
	return nil
}
