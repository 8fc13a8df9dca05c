package report

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/expense"
	log "github.com/sirupsen/logrus"
)

// CsvRenderer renders an expense list as a CSV document.
type CsvRenderer interface {
	RenderExpenses(expenses []expense.Expense) (string, error)
}

type CsvRendererImpl struct {
}

func NewCsvRenderer() *CsvRendererImpl {
	return &CsvRendererImpl{}
}

var csvHeader = []string{"ID", "Date", "Category", "Description", "Amount", "Priority", "Tags", "Notes"}

func (t *CsvRendererImpl) RenderExpenses(expenses []expense.Expense) (string, error) {
	data := make([][]string, 0, len(expenses)+1)
	data = append(data, csvHeader)
	for _, exp := range expenses {
		data = append(data, []string{
			exp.ID,
			utils.FormatDate(exp.Date),
			string(exp.Category),
			exp.Description,
			strconv.FormatFloat(exp.Amount, 'f', -1, 64),
			string(exp.Priority),
			strings.Join(exp.Tags, ";"),
			exp.Notes,
		})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
