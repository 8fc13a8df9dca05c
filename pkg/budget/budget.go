package budget

import (
	"github.com/kharcha/kharcha/pkg/expense"
)

// Budget is a per-category monthly spending limit.
type Budget struct {
	Category     expense.Category
	MonthlyLimit float64
}

// AlertLevel is the severity of a budget alert. Spending below the warning
// threshold is not surfaced at all.
type AlertLevel string

const (
	AlertLevelWarning  AlertLevel = "Warning"
	AlertLevelCritical AlertLevel = "Critical"
)

const (
	warningThreshold  = 80.0
	criticalThreshold = 100.0
)

// Alert reports a category whose current-month spending approaches or exceeds
// its configured limit.
type Alert struct {
	Category   expense.Category
	Spent      float64
	Budget     float64
	Percentage float64
	Level      AlertLevel
}

// levelFor maps a percentage of budget consumed onto an alert level. The
// second return is false when no alert should be raised.
func levelFor(percentage float64) (AlertLevel, bool) {
	switch {
	case percentage >= criticalThreshold:
		return AlertLevelCritical, true
	case percentage >= warningThreshold:
		return AlertLevelWarning, true
	default:
		return "", false
	}
}
