package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kenryu621/Tosshin-Scraper/internal/models"
	"github.com/kenryu621/Tosshin-Scraper/internal/scraper"
)

// ErrUnexpectedPage means the page carries neither the results table nor
// the "nothing found" marker. Distinct from an empty result on purpose:
// callers must not conflate a broken page with zero matches.
var ErrUnexpectedPage = errors.New("unexpected results page structure")

const (
	noResultsSelector    = "div.parts-search__result__nothing strong"
	resultsTableSelector = "table.parts-search__result__table"
)

// Result is the outcome of extracting one results page. Empty is set when
// the site reported no matches for the keyword.
type Result struct {
	Records []models.PartRecord
	Empty   bool
}

type TosshinParser struct{}

func NewTosshinParser() *TosshinParser {
	return &TosshinParser{}
}

// Extract parses the OEM results table into flat part records, one per row.
// Missing cells yield empty fields, not errors.
func (p *TosshinParser) Extract(page *scraper.ResultsPage) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	if doc.Find(noResultsSelector).Length() > 0 {
		return &Result{Empty: true}, nil
	}

	// The first table on the page is the OEM table.
	table := doc.Find(resultsTableSelector).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("keyword %q: %w", page.Keyword, ErrUnexpectedPage)
	}

	var records []models.PartRecord

	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}

		rec := models.NewPartRecord(page.Keyword, page.URL)
		rec.Maker = collapseWhitespace(cells.Eq(1).Text())
		rec.Weight = strings.TrimSpace(cells.Eq(2).Text())
		rec.Price = strings.TrimSpace(cells.Eq(3).Text())
		records = append(records, rec)
	})

	return &Result{Records: records}, nil
}

// collapseWhitespace squeezes runs of whitespace into single spaces. Maker
// names on the site wrap across lines inside the cell.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
