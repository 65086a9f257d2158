package extractor

import (
	"strings"
	"unicode"

	"github.com/insightdelivered/statement-tabulator/internal/models"
)

// commonWords appear in virtually every bank statement. Extracted tables
// containing none of them are likely decode garbage.
var commonWords = []string{
	"bank", "account", "balance", "date", "payment", "statement",
	"total", "amount", "credit", "debit", "transaction", "withdrawal",
	"deposit", "description", "particulars", "narration", "opening",
	"closing", "transfer", "page",
}

// readable checks that the extracted tables hold enough text, that it is
// mostly ASCII-readable rather than binary garbage, and that at least one
// recognizable statement word appears. Requires >50 chars and >60% readable
// characters.
func readable(pages []models.Page) bool {
	text := flatten(pages)
	if len(strings.TrimSpace(text)) <= 50 {
		return false
	}
	if quality(text) <= 0.6 {
		return false
	}
	lower := strings.ToLower(text)
	for _, word := range commonWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func flatten(pages []models.Page) string {
	var b strings.Builder
	for _, page := range pages {
		for _, table := range page {
			for _, row := range table {
				for _, cell := range row {
					if cell != nil {
						b.WriteString(*cell)
						b.WriteByte(' ')
					}
				}
			}
		}
	}
	return b.String()
}

// quality returns the ratio of basic readable characters to total. A strict
// ASCII check: unicode.IsLetter is too broad and matches the accented
// characters that identity-encoded fonts decode into.
func quality(text string) float64 {
	total := 0
	good := 0
	for _, r := range text {
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
			strings.ContainsRune(`.,-/:;()'"%&@#!?+=*`, r) ||
			r == '£' || r == '$' || r == '€' || r == '₹' {
			good++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(good) / float64(total)
}
