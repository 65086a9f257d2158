package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawCell is a single cell as returned by table extraction.
// nil means the extractor found no text at that position.
type RawCell = *string

// RawRow is one physical table row, cells in left-to-right order.
type RawRow []RawCell

// RawTable is one physical table found on a page, rows in document order.
type RawTable []RawRow

// Page is the sequence of tables found on one PDF page, in extraction order.
type Page []RawTable

// Cell wraps a string literal into a RawCell. Mostly useful in tests and
// fixtures, where building []*string by hand is noisy.
func Cell(s string) RawCell {
	return &s
}

// LogicalColumn identifies one of the five canonical output fields.
// Declaration order matters: it is the order in which header keywords are
// tested, so it acts as the tie-break when two columns could claim the same
// header cell.
type LogicalColumn int

const (
	ColDate LogicalColumn = iota
	ColDescription
	ColDebit
	ColCredit
	ColBalance

	numColumns
)

var columnNames = [numColumns]string{
	ColDate:        "Date",
	ColDescription: "Description",
	ColDebit:       "Debit Amt",
	ColCredit:      "Credit Amt",
	ColBalance:     "Balance",
}

// String returns the output column heading for the logical column.
func (c LogicalColumn) String() string {
	if c < 0 || c >= numColumns {
		return "unknown"
	}
	return columnNames[c]
}

// Columns returns all logical columns in declaration (tie-break) order.
func Columns() []LogicalColumn {
	return []LogicalColumn{ColDate, ColDescription, ColDebit, ColCredit, ColBalance}
}

// ColumnHeadings returns the fixed output header row.
func ColumnHeadings() []string {
	return append([]string(nil), columnNames[:]...)
}

// Record holds the raw text of one data row keyed by logical column,
// before type coercion. Unmapped columns stay nil.
type Record struct {
	cells [numColumns]RawCell
}

// Set stores the raw cell for a logical column.
func (r *Record) Set(col LogicalColumn, cell RawCell) {
	if col >= 0 && col < numColumns {
		r.cells[col] = cell
	}
}

// Get returns the raw cell for a logical column, or nil.
func (r *Record) Get(col LogicalColumn) RawCell {
	if col < 0 || col >= numColumns {
		return nil
	}
	return r.cells[col]
}

// Transaction is one fully coerced output row. Amounts are nullable
// decimals; a null Date means the raw text did not parse as a date.
type Transaction struct {
	Date        *time.Time          `json:"date"`
	Description *string             `json:"description"`
	Debit       decimal.NullDecimal `json:"debit"`
	Credit      decimal.NullDecimal `json:"credit"`
	Balance     decimal.NullDecimal `json:"balance"`
}

// Table is the final ordered output: rows in statement order under the
// fixed [Date, Description, Debit Amt, Credit Amt, Balance] column layout.
type Table struct {
	Rows []Transaction
}

// Header returns the table's column headings in schema order.
func (t *Table) Header() []string {
	return ColumnHeadings()
}
