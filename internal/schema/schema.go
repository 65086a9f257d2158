// Package schema defines the reference output schema and utilities for
// comparing extracted tables against calibration fixtures.
package schema

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-tabulator/internal/models"
)

// Kind is the dtype of one output column.
type Kind int

const (
	KindDate Kind = iota
	KindText
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	}
	return "unknown"
}

// Column is one schema entry: output heading plus dtype.
type Column struct {
	Name string
	Kind Kind
}

// Schema is the ordered column layout an output table must match.
type Schema struct {
	Columns []Column
}

// Default returns the canonical five-column transaction schema.
func Default() Schema {
	return Schema{Columns: []Column{
		{Name: models.ColDate.String(), Kind: KindDate},
		{Name: models.ColDescription.String(), Kind: KindText},
		{Name: models.ColDebit.String(), Kind: KindNumber},
		{Name: models.ColCredit.String(), Kind: KindNumber},
		{Name: models.ColBalance.String(), Kind: KindNumber},
	}}
}

// Empty reports whether the schema carries no columns.
func (s Schema) Empty() bool {
	return len(s.Columns) == 0
}

// Validate checks that the schema matches the transaction column layout
// exactly, in order and in kind.
func (s Schema) Validate() error {
	want := Default().Columns
	if len(s.Columns) != len(want) {
		return fmt.Errorf("expected %d columns, got %d", len(want), len(s.Columns))
	}
	for i, col := range s.Columns {
		if col.Name != want[i].Name {
			return fmt.Errorf("column %d: expected %q, got %q", i, want[i].Name, col.Name)
		}
		if col.Kind != want[i].Kind {
			return fmt.Errorf("column %q: expected %s, got %s", col.Name, want[i].Kind, col.Kind)
		}
	}
	return nil
}

// Equal compares two tables value-for-value and null-for-null. Dates compare
// by calendar day, amounts by decimal value.
func Equal(a, b *models.Table) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Rows) != len(b.Rows) {
		return false
	}
	for i := range a.Rows {
		if !rowsEqual(a.Rows[i], b.Rows[i]) {
			return false
		}
	}
	return true
}

func rowsEqual(a, b models.Transaction) bool {
	if (a.Date == nil) != (b.Date == nil) {
		return false
	}
	if a.Date != nil {
		ay, am, ad := a.Date.Date()
		by, bm, bd := b.Date.Date()
		if ay != by || am != bm || ad != bd {
			return false
		}
	}
	if (a.Description == nil) != (b.Description == nil) {
		return false
	}
	if a.Description != nil && *a.Description != *b.Description {
		return false
	}
	return amountsEqual(a.Debit, b.Debit) &&
		amountsEqual(a.Credit, b.Credit) &&
		amountsEqual(a.Balance, b.Balance)
}

func amountsEqual(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}
