// Package writer renders the normalized transaction table as delimited
// text: header row Date,Description,Debit Amt,Credit Amt,Balance, dates as
// YYYY-MM-DD, nulls as empty fields, amounts as plain decimal text.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-tabulator/internal/models"
)

const dateFormat = "2006-01-02"

// CSVWriter writes output tables in CSV format.
type CSVWriter struct{}

// WriteToFile writes the table to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, table *models.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, table)
}

// Write writes the table in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, table *models.Table) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if err := writer.Write(table.Header()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range table.Rows {
		row := []string{
			formatDate(txn.Date),
			formatString(txn.Description),
			formatAmount(txn.Debit),
			formatAmount(txn.Credit),
			formatAmount(txn.Balance),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return writer.Error()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateFormat)
}

func formatString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatAmount(v decimal.NullDecimal) string {
	if !v.Valid {
		return ""
	}
	return v.Decimal.String()
}
