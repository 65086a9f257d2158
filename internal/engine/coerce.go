package engine

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-tabulator/internal/models"
	"github.com/insightdelivered/statement-tabulator/internal/schema"
)

// Policy holds the bank-specific coercion choices that were observed to
// differ between statement layouts. None of them is an implicit default:
// callers pass the policy for the bank being parsed.
type Policy struct {
	// ZeroAsNull remaps exact-zero Debit/Credit amounts to null, for layouts
	// whose reference output represents "not applicable" as blank.
	ZeroAsNull bool
	// FillMissingAmounts zero-fills null amounts instead, for layouts whose
	// reference output uses 0.0 rather than blanks. Applied after ZeroAsNull
	// would be, so the two are mutually exclusive in practice.
	FillMissingAmounts bool
	// RequireDate drops rows whose Date cannot be parsed.
	RequireDate bool
}

// Day-first ambiguous formats come before anything else: bank statements in
// scope write DD before MM.
var dateLayouts = []string{
	"02/01/2006",
	"02/01/06",
	"02-01-2006",
	"2006-01-02",
	"02 Jan 2006",
	"02-Jan-2006",
	"02-Jan-06",
	"02.01.2006",
}

// pageArtifactPattern strips "Page N of M" fragments that extraction
// sometimes concatenates onto descriptions.
var pageArtifactPattern = regexp.MustCompile(`(?i)\s*\(?page\s*\d+\s*of\s*\d+\)?\s*`)

// Coerce converts accumulated raw records into the typed output table. All
// five columns are always present in the result; data-quality problems
// degrade to null cells or dropped rows, never to an error.
func Coerce(records []models.Record, policy Policy) *models.Table {
	table := &models.Table{Rows: []models.Transaction{}}
	for _, rec := range records {
		txn, keep := coerceRecord(rec, policy)
		if keep {
			table.Rows = append(table.Rows, txn)
		}
	}
	return table
}

func coerceRecord(rec models.Record, policy Policy) (models.Transaction, bool) {
	txn := models.Transaction{
		Description: cleanDescription(rec.Get(models.ColDescription)),
		Debit:       NumericValue(rec.Get(models.ColDebit)),
		Credit:      NumericValue(rec.Get(models.ColCredit)),
		Balance:     NumericValue(rec.Get(models.ColBalance)),
	}

	if policy.ZeroAsNull {
		txn.Debit = zeroToNull(txn.Debit)
		txn.Credit = zeroToNull(txn.Credit)
	}
	if policy.FillMissingAmounts {
		txn.Debit = nullToZero(txn.Debit)
		txn.Credit = nullToZero(txn.Credit)
		txn.Balance = nullToZero(txn.Balance)
	}

	if raw := Clean(rec.Get(models.ColDate)); raw != nil {
		txn.Date = parseDate(*raw)
	}
	if policy.RequireDate && txn.Date == nil {
		return txn, false
	}

	// Rows with no description and nothing but zero/null amounts are
	// recaptured sub-headers or totals, even when a date parsed.
	if txn.Description == nil &&
		zeroOrNull(txn.Debit) && zeroOrNull(txn.Credit) && zeroOrNull(txn.Balance) {
		return txn, false
	}
	return txn, true
}

func cleanDescription(cell models.RawCell) *string {
	s := Clean(cell)
	if s == nil {
		return nil
	}
	scrubbed := strings.TrimSpace(pageArtifactPattern.ReplaceAllString(*s, " "))
	if scrubbed == "" {
		return nil
	}
	return &scrubbed
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func zeroToNull(v decimal.NullDecimal) decimal.NullDecimal {
	if v.Valid && v.Decimal.IsZero() {
		return decimal.NullDecimal{}
	}
	return v
}

func nullToZero(v decimal.NullDecimal) decimal.NullDecimal {
	if !v.Valid {
		return decimal.NullDecimal{Decimal: decimal.Zero, Valid: true}
	}
	return v
}

func zeroOrNull(v decimal.NullDecimal) bool {
	return !v.Valid || v.Decimal.IsZero()
}

// Reconcile verifies the output table against a reference schema. A schema
// whose column set, order, or dtypes differ is reported as ErrSchemaMismatch
// rather than silently truncating, so downstream equality tests can detect
// it explicitly.
func Reconcile(table *models.Table, s schema.Schema) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	// Column order and dtypes are fixed by the Transaction type, and null is
	// the single missing-value representation, so a valid schema needs no
	// further alignment.
	return nil
}
