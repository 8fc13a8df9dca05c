package report

import (
	"errors"

	"github.com/kharcha/kharcha/pkg/expense"
)

// Format selects the export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ErrUnsupportedFormat is returned for formats other than json and csv.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Report is the result of an export: either the raw expense list (json) or a
// rendered CSV document.
type Report struct {
	Format   Format
	Expenses []expense.Expense
	CSV      string
}
