package extractor

import (
	"strings"
	"testing"

	"github.com/insightdelivered/statement-tabulator/internal/models"
)

func TestLinesToTable(t *testing.T) {
	text := "Txn Date    Description            Debit     Credit    Balance\n" +
		"05-09-2025  Opening Balance        -         10000.00  10000.00\n" +
		"\n" +
		"10-09-2025  DEPOSIT-ATM 123456789  -         2,500.00  12,500.00\n"

	table := linesToTable(text)
	if len(table) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table))
	}
	if len(table[0]) != 5 {
		t.Fatalf("expected 5 header cells, got %d: %v", len(table[0]), table[0])
	}
	if got := *table[1][1]; got != "Opening Balance" {
		t.Errorf("cell (1,1): got %q", got)
	}
	if got := *table[2][4]; got != "12,500.00" {
		t.Errorf("cell (2,4): got %q", got)
	}
}

func TestLinesToTableSingleSpaceStaysOneCell(t *testing.T) {
	table := linesToTable("Opening Balance\n")
	if len(table) != 1 || len(table[0]) != 1 {
		t.Fatalf("expected 1x1 table, got %v", table)
	}
	if *table[0][0] != "Opening Balance" {
		t.Errorf("got %q", *table[0][0])
	}
}

func TestCellValue(t *testing.T) {
	if cellValue("  ") != nil {
		t.Error("whitespace-only cell should be nil")
	}
	if got := cellValue(" 25.99 "); got == nil || *got != "25.99" {
		t.Errorf("got %v", got)
	}
}

func tableOf(words ...string) []models.Page {
	var row models.RawRow
	for _, w := range words {
		row = append(row, models.Cell(w))
	}
	return []models.Page{{models.RawTable{row}}}
}

func TestReadable(t *testing.T) {
	ok := tableOf("Account", "Statement", "Date", "Description", "Debit", "Credit", "Balance", "05-09-2025", "DEPOSIT")
	if !readable(ok) {
		t.Error("expected statement-like table to be readable")
	}

	if readable(nil) {
		t.Error("expected empty extraction to be unreadable")
	}

	garbage := tableOf(strings.Repeat("þíûó", 40))
	if readable(garbage) {
		t.Error("expected identity-encoded garbage to be unreadable")
	}

	// Readable characters but no recognizable statement word.
	prose := tableOf("lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing", "elit", "sed", "do")
	if readable(prose) {
		t.Error("expected non-statement text to be unreadable")
	}
}
