package engine

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/insightdelivered/statement-tabulator/internal/models"
)

const (
	fallbackWidth = 5 // Date, Description, Debit, Credit, Balance
	maxRowWidth   = 7 // cells beyond this are far-right noise
)

// rejectPhrases mark rows that are totals, footers, or carried-forward
// balances re-captured by the table extractor rather than transactions.
var rejectPhrases = []string{
	"total",
	"page",
	"balance brought forward",
	"balance carried forward",
}

var rejectMatcher = ahocorasick.NewStringMatcher(rejectPhrases)

// Reconstruct converts one raw data row into a Record. When a column mapping
// exists for the table it is used verbatim; otherwise the positional
// fallback applies. ok is false when the row is rejected.
func Reconstruct(row models.RawRow, columns map[int]models.LogicalColumn) (models.Record, bool) {
	if len(columns) > 0 {
		return reconstructMapped(row, columns)
	}
	return reconstructPositional(row)
}

// reconstructMapped copies each mapped, in-bounds cell untouched. Columns
// without a mapped index stay nil.
func reconstructMapped(row models.RawRow, columns map[int]models.LogicalColumn) (models.Record, bool) {
	var rec models.Record
	for idx, col := range columns {
		if idx >= 0 && idx < len(row) {
			rec.Set(col, row[idx])
		}
	}
	return rec, accept(rec)
}

// reconstructPositional maps cells by position when no header row was found
// for the table. Rows are padded to 5 cells and truncated past 7; 6 or 7
// cells means extra columns are present, so amounts are located from the
// right instead.
func reconstructPositional(row models.RawRow) (models.Record, bool) {
	if blankRow(row) {
		return models.Record{}, false
	}

	r := append(models.RawRow{}, row...)
	for len(r) < fallbackWidth {
		r = append(r, nil)
	}
	if len(r) > maxRowWidth {
		r = r[:maxRowWidth]
	}

	var rec models.Record
	if len(r) == fallbackWidth {
		for i, col := range models.Columns() {
			rec.Set(col, r[i])
		}
		return rec, accept(rec)
	}

	rec.Set(models.ColDate, r[0])
	rec.Set(models.ColDescription, r[1])

	var numeric []int
	for i, cell := range r {
		if numericLike(cell) {
			numeric = append(numeric, i)
		}
	}
	if len(numeric) > 0 {
		// Rightmost numeric-like cell is the running balance.
		rec.Set(models.ColBalance, r[numeric[len(numeric)-1]])
		rest := numeric[:len(numeric)-1]
		switch {
		case len(rest) == 1:
			// These layouts carry no sign convention: a lone amount is a
			// deposit unless it has an explicit minus.
			cell := r[rest[0]]
			if strings.HasPrefix(Normalize(cell), "-") {
				rec.Set(models.ColDebit, cell)
			} else {
				rec.Set(models.ColCredit, cell)
			}
		case len(rest) >= 2:
			rec.Set(models.ColDebit, r[rest[0]])
			rec.Set(models.ColCredit, r[rest[1]])
		}
	}
	return rec, accept(rec)
}

func blankRow(row models.RawRow) bool {
	for _, cell := range row {
		if Normalize(cell) != "" {
			return false
		}
	}
	return true
}

// accept rejects records that have no date, no description, and no nonzero
// amount (presumed headers, footers, or totals), and records whose
// description contains a reject phrase.
func accept(rec models.Record) bool {
	date := Normalize(rec.Get(models.ColDate))
	desc := Normalize(rec.Get(models.ColDescription))
	if date == "" && desc == "" && !hasAmount(rec) {
		return false
	}
	if desc != "" && len(rejectMatcher.Match([]byte(desc))) > 0 {
		return false
	}
	return true
}

func hasAmount(rec models.Record) bool {
	for _, col := range []models.LogicalColumn{models.ColDebit, models.ColCredit, models.ColBalance} {
		if v := NumericValue(rec.Get(col)); v.Valid && !v.Decimal.IsZero() {
			return true
		}
	}
	return false
}
