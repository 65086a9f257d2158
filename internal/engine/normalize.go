package engine

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-tabulator/internal/models"
)

// Normalize canonicalizes a raw cell for keyword matching: trimmed,
// lowercased, newlines collapsed to spaces. Extraction-layer placeholders
// ("none", "nan") and nil cells normalize to "".
func Normalize(cell models.RawCell) string {
	if cell == nil {
		return ""
	}
	s := strings.ReplaceAll(*cell, "\n", " ")
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "none" || s == "nan" {
		return ""
	}
	return s
}

// Clean is the output-facing string mode: it trims and collapses newlines
// but preserves case. Empty cells and placeholder values become nil.
func Clean(cell models.RawCell) *string {
	if cell == nil {
		return nil
	}
	s := strings.TrimSpace(strings.ReplaceAll(*cell, "\n", " "))
	switch strings.ToLower(s) {
	case "", "none", "nan":
		return nil
	}
	return &s
}

// NumericValue coerces a raw cell to a nullable decimal amount. Thousands
// separators and stray ellipsis artifacts are stripped first. A lone "-" is
// the blank marker many statements use, not a value or a sign. Anything
// unparseable yields null, never zero and never an error.
func NumericValue(cell models.RawCell) decimal.NullDecimal {
	if cell == nil {
		return decimal.NullDecimal{}
	}
	s := strings.ReplaceAll(*cell, ",", "")
	s = strings.ReplaceAll(s, "...", "")
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// numericLike reports whether a cell looks like an amount after
// normalization: an optional sign, digits, and at most one decimal point.
func numericLike(cell models.RawCell) bool {
	s := strings.ReplaceAll(Normalize(cell), ",", "")
	if s == "" {
		return false
	}
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	s = strings.Replace(s, ".", "", 1)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
