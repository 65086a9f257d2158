// Package extractor turns statement PDFs into raw tables: pages of rows of
// optional cell strings. It is the supplied table-extraction capability the
// engine builds on; locating table boundaries (line grids, whitespace) is
// this package's policy, not the engine's.
package extractor

import (
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/insightdelivered/statement-tabulator/internal/models"
)

// defaultColumnGap is the horizontal distance (in PDF units) between text
// items that is read as a column boundary.
const defaultColumnGap = 15

// PDFSource extracts tables from statement PDFs using the PDF text layer,
// falling back to the external pdftotext command (poppler-utils) when the
// library cannot decode readable text.
type PDFSource struct {
	// ColumnGap overrides the column-boundary distance. Zero means the
	// default.
	ColumnGap float64
}

// NewPDFSource returns a source with default settings.
func NewPDFSource() *PDFSource {
	return &PDFSource{}
}

// Extract reads the PDF and returns one table per page. The file handle is
// scoped to this call and released on every exit path.
func (s *PDFSource) Extract(path string) ([]models.Page, error) {
	pages, libErr := s.extractWithLibrary(path)
	if libErr == nil && readable(pages) {
		return pages, nil
	}

	popplerPages, popplerErr := s.extractWithPdftotext(path)
	if popplerErr == nil && readable(popplerPages) {
		return popplerPages, nil
	}

	if libErr != nil {
		return nil, fmt.Errorf("PDF table extraction failed: %v; the file may be image-based or use undecodable font encodings", libErr)
	}
	return nil, fmt.Errorf("no readable tables could be extracted from PDF")
}

// extractWithLibrary uses the PDF text layer: text items are grouped into
// rows by Y coordinate, ordered by X, and split into cells at horizontal
// gaps wider than the column boundary.
func (s *PDFSource) extractWithLibrary(path string) (pages []models.Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(path)
	if openErr != nil {
		return nil, openErr
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	gap := s.ColumnGap
	if gap <= 0 {
		gap = defaultColumnGap
	}

	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, models.Page{})
			continue
		}
		table := pageTable(page, gap)
		if len(table) == 0 {
			pages = append(pages, models.Page{})
			continue
		}
		pages = append(pages, models.Page{table})
	}
	return pages, nil
}

// pageTable reconstructs one table from a page's positioned text.
func pageTable(page pdf.Page, gap float64) models.RawTable {
	content := page.Content()
	if len(content.Text) == 0 {
		return nil
	}

	type textItem struct {
		x float64
		s string
	}
	rowMap := make(map[int][]textItem)
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		// Round Y to group fragments of the same visual row.
		yKey := int(math.Round(t.Y))
		rowMap[yKey] = append(rowMap[yKey], textItem{x: t.X, s: t.S})
	}

	// PDF Y grows bottom-to-top; descending Y is document order.
	yKeys := make([]int, 0, len(rowMap))
	for y := range rowMap {
		yKeys = append(yKeys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

	var table models.RawTable
	for _, y := range yKeys {
		items := rowMap[y]
		sort.Slice(items, func(a, b int) bool {
			return items[a].x < items[b].x
		})

		var row models.RawRow
		var cell strings.Builder
		var prevX float64
		for j, item := range items {
			if j > 0 && item.x-prevX > gap {
				row = append(row, cellValue(cell.String()))
				cell.Reset()
			}
			cell.WriteString(item.s)
			prevX = item.x
		}
		row = append(row, cellValue(cell.String()))
		table = append(table, row)
	}
	return table
}

func cellValue(s string) models.RawCell {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// columnSplitPattern splits layout-preserving text lines into cells at runs
// of two or more spaces.
var columnSplitPattern = regexp.MustCompile(`\s{2,}`)

// extractWithPdftotext shells out to pdftotext -layout per page and splits
// each line into cells on column whitespace.
func (s *PDFSource) extractWithPdftotext(path string) ([]models.Page, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not available: %v", err)
	}

	numPages := 1
	if out, err := exec.Command("pdfinfo", path).Output(); err == nil {
		for _, line := range strings.Split(string(out), "\n") {
			if strings.HasPrefix(line, "Pages:") {
				if n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Pages:"))); err == nil && n > 0 {
					numPages = n
				}
			}
		}
	}

	var pages []models.Page
	for i := 1; i <= numPages; i++ {
		pageStr := strconv.Itoa(i)
		out, err := exec.Command("pdftotext", "-layout", "-f", pageStr, "-l", pageStr, path, "-").Output()
		if err != nil {
			pages = append(pages, models.Page{})
			continue
		}
		table := linesToTable(string(out))
		if len(table) == 0 {
			pages = append(pages, models.Page{})
			continue
		}
		pages = append(pages, models.Page{table})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("pdftotext produced no output")
	}
	return pages, nil
}

func linesToTable(text string) models.RawTable {
	var table models.RawTable
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		var row models.RawRow
		for _, field := range columnSplitPattern.Split(strings.TrimLeft(line, " "), -1) {
			row = append(row, cellValue(field))
		}
		table = append(table, row)
	}
	return table
}
