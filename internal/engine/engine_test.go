package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-tabulator/internal/models"
	"github.com/insightdelivered/statement-tabulator/internal/schema"
)

// stubSource serves canned tables in place of real PDF extraction.
type stubSource struct {
	pages []models.Page
	err   error
}

func (s *stubSource) Extract(path string) ([]models.Page, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.pages, nil
}

func sbiOptions() Options {
	return Options{
		Keywords: KeywordMap{
			models.ColDate:        {"date", "txn date", "transaction date"},
			models.ColDescription: {"description", "particulars", "particular"},
			models.ColDebit:       {"debit", "withdrawal"},
			models.ColCredit:      {"credit", "deposit"},
			models.ColBalance:     {"balance", "closing balance"},
		},
		Policy: Policy{FillMissingAmounts: true, RequireDate: true},
	}
}

// A synthetic two-page statement: the first page has a proper header, the
// second page's table has none and goes through the positional fallback.
func calibrationPages() []models.Page {
	return []models.Page{
		{
			models.RawTable{
				row("Txn Date", "Description", "Debit", "Credit", "Balance"),
				row("05-09-2025", "Opening Balance", "-", "10000.00", "10000.00"),
				row("10-09-2025", "DEPOSIT-ATM 123456789", "-", "2,500.00", "12,500.00"),
				row("15-09-2025", "ONLINE PURCHASE AMAZON", "500.00", "-", "12,000.00"),
				row("", "TOTAL", "500.00", "12,500.00", ""),
			},
		},
		{
			models.RawTable{
				row("Statement continued"),
				row("20-09-2025", "TRANSFER TO JOHN DOE", "1,200.00", "-", "10,800.00"),
				row("25-09-2025", "SALARY CREDIT", "-", "35,000.00", "45,800.00"),
			},
		},
	}
}

func TestEngineExtractCalibration(t *testing.T) {
	eng := New(&stubSource{pages: calibrationPages()}, sbiOptions())

	got, err := eng.Extract("statement.pdf")
	require.NoError(t, err)

	want, err := schema.LoadReference("testdata/sbi_expected.csv")
	require.NoError(t, err)

	require.Len(t, got.Rows, len(want.Rows))
	assert.True(t, schema.Equal(got, want), "extracted table differs from reference:\ngot  %+v\nwant %+v", got.Rows, want.Rows)
}

func TestEngineExtractPreservesOrder(t *testing.T) {
	eng := New(&stubSource{pages: calibrationPages()}, sbiOptions())

	got, err := eng.Extract("statement.pdf")
	require.NoError(t, err)
	require.Len(t, got.Rows, 5)

	for i := 1; i < len(got.Rows); i++ {
		require.NotNil(t, got.Rows[i].Date)
		assert.False(t, got.Rows[i].Date.Before(*got.Rows[i-1].Date),
			"rows out of chronological order at %d", i)
	}
}

func TestEngineSkipsTinyTables(t *testing.T) {
	pages := []models.Page{
		{
			models.RawTable{row("Some stray caption")},
			models.RawTable{
				row("Date", "Description", "Debit", "Credit", "Balance"),
				row("05-09-2025", "PAYMENT", "100.00", "-", "900.00"),
			},
		},
	}

	eng := New(&stubSource{pages: pages}, sbiOptions())
	got, err := eng.Extract("statement.pdf")
	require.NoError(t, err)
	assert.Len(t, got.Rows, 1)
}

func TestEngineUnreadableInput(t *testing.T) {
	eng := New(&stubSource{err: errors.New("bad xref")}, sbiOptions())

	table, err := eng.Extract("broken.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadableInput)
	// Lenient failure mode: an empty, correctly shaped table is returned.
	require.NotNil(t, table)
	assert.Empty(t, table.Rows)
}

func TestEngineSchemaMismatch(t *testing.T) {
	opts := sbiOptions()
	opts.Schema = schema.Schema{Columns: []schema.Column{{Name: "Date", Kind: schema.KindDate}}}

	eng := New(&stubSource{pages: calibrationPages()}, opts)
	_, err := eng.Extract("statement.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}
