package lms

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Row is one data row of the first table on a page: trimmed cell text plus the
// href of the first anchor in the row, when present. Detail-page links live on
// anchors rather than in cell text, so the extractor carries them alongside.
type Row struct {
	Cells []string
	Link  string
}

// ExtractRows parses the document and returns the first table's data rows.
// Header rows (recognized by their first cell) and rows with fewer than
// minCells cells are skipped. A page with no table yields an empty slice and
// no error, so callers can distinguish "nothing listed" from a failed fetch.
func ExtractRows(r io.Reader, minCells int) ([]Row, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return extractRows(doc, minCells), nil
}

func extractRows(doc *goquery.Document, minCells int) []Row {
	rows := make([]Row, 0)

	table := doc.Find("table").First()
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := make([]string, 0)
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})

		if len(cells) < minCells {
			return
		}
		if isHeaderRow(cells[0]) {
			return
		}

		link := ""
		if href, ok := tr.Find("a").First().Attr("href"); ok {
			link = strings.TrimSpace(href)
		}

		rows = append(rows, Row{Cells: cells, Link: link})
	})

	return rows
}

func isHeaderRow(firstCell string) bool {
	for _, label := range headerLabels {
		if strings.EqualFold(strings.TrimSpace(firstCell), label) {
			return true
		}
	}
	return false
}
