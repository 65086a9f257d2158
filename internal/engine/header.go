package engine

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/insightdelivered/statement-tabulator/internal/models"
)

// KeywordMap assigns header keyword substrings to each logical column.
// Keyword order matters: the first keyword that matches an unclaimed cell
// claims that cell's physical index for the column.
type KeywordMap map[models.LogicalColumn][]string

// HeaderRule controls when a scanned row qualifies as the header row.
// The thresholds vary between statement layouts, so they are configured
// per bank rather than fixed.
type HeaderRule struct {
	// ExtraColumns is how many mapped columns beyond Date and Balance the
	// alternate qualification rule requires. Zero means the default of 2.
	ExtraColumns int
	// Fuzzy retries header matching with a one-edit tolerance when exact
	// substring matching finds no qualifying row. Catches header typos
	// like "Withdrawl".
	Fuzzy bool
}

func (r HeaderRule) extra() int {
	if r.ExtraColumns <= 0 {
		return 2
	}
	return r.ExtraColumns
}

// HeaderMatch locates a table's header row and the derived column mapping.
// Data rows begin at RowIndex+1.
type HeaderMatch struct {
	RowIndex int
	Columns  map[int]models.LogicalColumn
}

// FindHeader scans a table's rows from the top for a header row. Tables on
// different pages may lay columns out differently, so the mapping is
// re-derived for every table. Tables with fewer than 2 rows are never
// transaction tables and never match.
func FindHeader(table models.RawTable, keywords KeywordMap, rule HeaderRule) (HeaderMatch, bool) {
	if len(table) < 2 {
		return HeaderMatch{}, false
	}
	for i, row := range table {
		if m := matchRow(row, keywords, exactMatch); qualifies(m, rule) {
			return HeaderMatch{RowIndex: i, Columns: m}, true
		}
	}
	if rule.Fuzzy {
		for i, row := range table {
			if m := matchRow(row, keywords, fuzzyMatch); qualifies(m, rule) {
				return HeaderMatch{RowIndex: i, Columns: m}, true
			}
		}
	}
	return HeaderMatch{}, false
}

// cellMatcher tests one keyword against one normalized header cell.
type cellMatcher func(keyword, cell string) bool

func exactMatch(keyword, cell string) bool {
	return strings.Contains(cell, keyword)
}

// fuzzyMatch additionally accepts a whitespace token of the cell within one
// edit of the keyword.
func fuzzyMatch(keyword, cell string) bool {
	if strings.Contains(cell, keyword) {
		return true
	}
	for _, tok := range strings.Fields(cell) {
		if fuzzy.LevenshteinDistance(keyword, tok) <= 1 {
			return true
		}
	}
	return false
}

// matchRow derives a physical-index-to-logical-column mapping for one row.
// Logical columns are tested in declaration order and a claimed physical
// index is never reassigned, so the first match always wins.
func matchRow(row models.RawRow, keywords KeywordMap, match cellMatcher) map[int]models.LogicalColumn {
	cells := make([]string, len(row))
	for i, c := range row {
		cells[i] = Normalize(c)
	}

	claimed := make(map[int]models.LogicalColumn)
	for _, col := range models.Columns() {
	keywordScan:
		for _, kw := range keywords[col] {
			for i, cell := range cells {
				if cell == "" {
					continue
				}
				if _, taken := claimed[i]; taken {
					continue
				}
				if match(kw, cell) {
					claimed[i] = col
					break keywordScan
				}
			}
		}
	}
	return claimed
}

// qualifies applies the header coverage rule: Date and Description both
// mapped, or Date plus Balance plus enough other columns.
func qualifies(m map[int]models.LogicalColumn, rule HeaderRule) bool {
	has := make(map[models.LogicalColumn]bool, len(m))
	for _, col := range m {
		has[col] = true
	}
	if has[models.ColDate] && has[models.ColDescription] {
		return true
	}
	return has[models.ColDate] && has[models.ColBalance] && len(m) >= 2+rule.extra()
}
