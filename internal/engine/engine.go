// Package engine converts raw statement tables into the normalized
// five-column transaction table. It locates each table's header row,
// reconstructs data rows (with a positional fallback when no header can be
// identified), and coerces the result against a reference schema.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/insightdelivered/statement-tabulator/internal/models"
	"github.com/insightdelivered/statement-tabulator/internal/schema"
)

// TableSource supplies the raw tables of a statement file. Implementations
// own the file handle for the duration of the call and must release it on
// every exit path, including on error.
type TableSource interface {
	Extract(path string) ([]models.Page, error)
}

// Options configures an Engine for one bank layout.
type Options struct {
	Keywords KeywordMap
	Header   HeaderRule
	Policy   Policy
	// Schema is the reference schema for final reconciliation. Zero value
	// means the canonical transaction schema.
	Schema schema.Schema
	Logger *slog.Logger
}

// Engine drives extraction for one bank configuration. Pages, tables, and
// rows are processed strictly in document order so the output preserves
// transaction chronology.
type Engine struct {
	source   TableSource
	keywords KeywordMap
	header   HeaderRule
	policy   Policy
	schema   schema.Schema
	log      *slog.Logger
}

// New builds an engine over the given table source.
func New(source TableSource, opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Schema.Empty() {
		opts.Schema = schema.Default()
	}
	return &Engine{
		source:   source,
		keywords: opts.Keywords,
		header:   opts.Header,
		policy:   opts.Policy,
		schema:   opts.Schema,
		log:      opts.Logger,
	}
}

// Extract runs the full pipeline for one statement file. Row- and
// table-level problems are absorbed and logged; only unreadable input and a
// schema mismatch surface as errors. The returned table is always non-nil
// and correctly shaped, empty on failure.
func (e *Engine) Extract(path string) (*models.Table, error) {
	pages, err := e.source.Extract(path)
	if err != nil {
		return &models.Table{Rows: []models.Transaction{}}, fmt.Errorf("%w: %s: %v", ErrUnreadableInput, path, err)
	}

	var records []models.Record
	for pi, page := range pages {
		for ti, table := range page {
			records = append(records, e.extractTable(pi, ti, table)...)
		}
	}

	out := Coerce(records, e.policy)
	if err := Reconcile(out, e.schema); err != nil {
		return out, err
	}
	e.log.Debug("statement extracted", "path", path, "pages", len(pages), "rows", len(out.Rows))
	return out, nil
}

// extractTable converts one raw table into records. Tables with fewer than
// 2 rows are not transaction tables. When no header row qualifies, the
// first row is still consumed as the failed header attempt and the
// remaining rows go through the positional fallback.
func (e *Engine) extractTable(pageIdx, tableIdx int, table models.RawTable) []models.Record {
	if len(table) < 2 {
		return nil
	}

	start := 1
	var columns map[int]models.LogicalColumn
	if match, ok := FindHeader(table, e.keywords, e.header); ok {
		start = match.RowIndex + 1
		columns = match.Columns
	} else {
		e.log.Debug("no header row found, using positional fallback",
			"page", pageIdx, "table", tableIdx)
	}

	var records []models.Record
	for ri, row := range table[start:] {
		rec, ok := Reconstruct(row, columns)
		if !ok {
			e.log.Debug("row rejected", "page", pageIdx, "table", tableIdx, "row", start+ri)
			continue
		}
		records = append(records, rec)
	}
	return records
}
