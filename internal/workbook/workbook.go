package workbook

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kenryu621/Tosshin-Scraper/internal/models"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Tosshin Data"

var header = []string{"Part Number", "Maker", "Weight", "Price", "URL"}

var columnWidths = map[string]float64{
	"A": 22, // Part Number
	"B": 28, // Maker
	"C": 12, // Weight
	"D": 14, // Price
	"E": 60, // URL
}

// Workbook accumulates part records during the run and serializes them to a
// styled xlsx file once at the end.
type Workbook struct {
	records []models.PartRecord
	logger  *slog.Logger
}

func New(logger *slog.Logger) *Workbook {
	return &Workbook{
		logger: logger.With("component", "workbook"),
	}
}

// Append takes ownership of records in arrival order.
func (w *Workbook) Append(records ...models.PartRecord) {
	w.records = append(w.records, records...)
}

func (w *Workbook) Len() int {
	return len(w.records)
}

// Records returns the accumulated rows in append order.
func (w *Workbook) Records() []models.PartRecord {
	return w.records
}

// Flush writes the workbook to path: one sheet, a styled header row, then
// one row per record in append order. A locked or unwritable destination is
// reported with an actionable message; the scraped data is lost in that
// case, which is why Flush runs only after all keywords are done.
func (w *Workbook) Flush(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := w.writeHeader(f); err != nil {
		return err
	}

	for i, rec := range w.records {
		if err := w.writeRow(f, i+2, rec); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("cannot save workbook to %q, close the file if it is open in another program: %w", path, err)
	}

	w.logger.Info("workbook saved", "file", path, "rows", len(w.records))
	return nil
}

func (w *Workbook) writeHeader(f *excelize.File) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, title := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, title); err != nil {
			return fmt.Errorf("write header cell %s: %w", cell, err)
		}
	}

	if err := f.SetCellStyle(SheetName, "A1", "E1", headerStyle); err != nil {
		return fmt.Errorf("style header row: %w", err)
	}

	for col, width := range columnWidths {
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("set column width %s: %w", col, err)
		}
	}

	return nil
}

func (w *Workbook) writeRow(f *excelize.File, row int, rec models.PartRecord) error {
	values := []string{rec.PartNumber, rec.Maker, rec.Weight, rec.Price, rec.URL}
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("cell name for row %d: %w", row, err)
		}
		if err := f.SetCellValue(SheetName, cell, value); err != nil {
			return fmt.Errorf("write cell %s: %w", cell, err)
		}
	}

	if rec.URL != "" {
		cell, _ := excelize.CoordinatesToCellName(len(values), row)
		if err := f.SetCellHyperLink(SheetName, cell, rec.URL, "External"); err != nil {
			return fmt.Errorf("set hyperlink on %s: %w", cell, err)
		}
	}

	return nil
}
