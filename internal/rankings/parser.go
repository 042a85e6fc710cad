package rankings

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseTable turns the first <table> on a page into CSV-style records, header first.
// The header comes from <thead> when present, otherwise from the first row.
func ParseTable(body io.Reader) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no rankings table found")
	}

	var records [][]string

	headerCells := table.Find("thead tr").First().Find("th, td")
	if headerCells.Length() > 0 {
		records = append(records, cellTexts(headerCells))
	}

	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		rows = table.Find("tr")
	}
	rows.Each(func(i int, row *goquery.Selection) {
		if row.ParentsFiltered("thead").Length() > 0 {
			return
		}
		cells := row.Find("th, td")
		if cells.Length() == 0 {
			return
		}
		records = append(records, cellTexts(cells))
	})

	if len(records) == 0 {
		return nil, fmt.Errorf("rankings table is empty")
	}
	return records, nil
}

func cellTexts(cells *goquery.Selection) []string {
	out := make([]string, 0, cells.Length())
	cells.Each(func(i int, s *goquery.Selection) {
		out = append(out, strings.Join(strings.Fields(s.Text()), " "))
	})
	return out
}
