package nepse

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/floorsight/backend/internal/contracts"
)

// parseFloorSheetHTML extracts the floor-sheet table from a portal page.
// The table's own header cells become the row keys; resolving them against
// canonical fields is the pipeline's job, so header drift on the portal side
// does not break this parser.
func parseFloorSheetHTML(html string) ([]contracts.RawRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	table := doc.Find("table").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return sel.Find("th").Length() > 0
	}).First()
	if table.Length() == 0 {
		return nil, nil
	}

	var headers []string
	table.Find("th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})
	if len(headers) == 0 {
		return nil, nil
	}

	var rows []contracts.RawRow
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}

		row := make(contracts.RawRow, len(headers))
		cells.Each(func(i int, td *goquery.Selection) {
			if i < len(headers) && headers[i] != "" {
				row[headers[i]] = strings.TrimSpace(td.Text())
			}
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})

	return rows, nil
}
