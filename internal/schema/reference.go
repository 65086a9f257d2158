package schema

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-tabulator/internal/models"
)

// referenceRow mirrors one line of an expected-output CSV. Headers match the
// canonical column headings; gocsv binds by header name.
type referenceRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Debit       string `csv:"Debit Amt"`
	Credit      string `csv:"Credit Amt"`
	Balance     string `csv:"Balance"`
}

// LoadReference reads a reference table ("expected" CSV) used for
// calibration against extracted output. Dates are YYYY-MM-DD, empty numeric
// fields are nulls.
func LoadReference(path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference CSV: %w", err)
	}
	defer f.Close()

	var rows []referenceRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parsing reference CSV %q: %w", path, err)
	}

	table := &models.Table{}
	for i, row := range rows {
		txn, err := row.transaction()
		if err != nil {
			return nil, fmt.Errorf("reference row %d: %w", i+2, err)
		}
		table.Rows = append(table.Rows, txn)
	}
	return table, nil
}

func (r referenceRow) transaction() (models.Transaction, error) {
	var txn models.Transaction

	if s := strings.TrimSpace(r.Date); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return txn, fmt.Errorf("parsing date %q: %w", s, err)
		}
		txn.Date = &t
	}
	if s := strings.TrimSpace(r.Description); s != "" {
		txn.Description = &s
	}

	for _, field := range []struct {
		raw string
		dst *decimal.NullDecimal
	}{
		{r.Debit, &txn.Debit},
		{r.Credit, &txn.Credit},
		{r.Balance, &txn.Balance},
	} {
		s := strings.TrimSpace(field.raw)
		if s == "" {
			continue
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return txn, fmt.Errorf("parsing amount %q: %w", s, err)
		}
		*field.dst = decimal.NullDecimal{Decimal: d, Valid: true}
	}
	return txn, nil
}
