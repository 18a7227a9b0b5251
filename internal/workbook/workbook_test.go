package workbook

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/kenryu621/Tosshin-Scraper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFlushRoundTrip(t *testing.T) {
	w := New(discardLogger())
	w.Append(
		models.PartRecord{PartNumber: "90916-03100", Maker: "Toyota", Weight: "0.2kg", Price: "¥500", URL: "https://example.test/?keyword=90916-03100"},
		models.PartRecord{PartNumber: "MD360935", Maker: "Mitsubishi Motors", Weight: "1.4kg", Price: "¥2,100", URL: "https://example.test/?keyword=MD360935"},
	)
	require.Equal(t, 2, w.Len())

	path := filepath.Join(t.TempDir(), "Tosshin data.xlsx")
	require.NoError(t, w.Flush(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Part Number", "Maker", "Weight", "Price", "URL"}, rows[0])
	assert.Equal(t, []string{"90916-03100", "Toyota", "0.2kg", "¥500", "https://example.test/?keyword=90916-03100"}, rows[1])
	assert.Equal(t, []string{"MD360935", "Mitsubishi Motors", "1.4kg", "¥2,100", "https://example.test/?keyword=MD360935"}, rows[2])
}

func TestFlushPreservesAppendOrder(t *testing.T) {
	w := New(discardLogger())
	w.Append(models.PartRecord{PartNumber: "C-300", URL: "https://example.test/c"})
	w.Append(models.PartRecord{PartNumber: "A-100", URL: "https://example.test/a"})
	w.Append(models.PartRecord{PartNumber: "B-200", URL: "https://example.test/b"})

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, w.Flush(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "C-300", rows[1][0])
	assert.Equal(t, "A-100", rows[2][0])
	assert.Equal(t, "B-200", rows[3][0])
}

func TestFlushEmptyWorkbookWritesHeaderOnly(t *testing.T) {
	w := New(discardLogger())

	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, w.Flush(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Part Number", "Maker", "Weight", "Price", "URL"}, rows[0])
}

func TestFlushEmptyFieldsStayEmpty(t *testing.T) {
	w := New(discardLogger())
	w.Append(models.PartRecord{PartNumber: "XYZ-1", Maker: "Toyota", URL: "https://example.test/x"})

	path := filepath.Join(t.TempDir(), "sparse.xlsx")
	require.NoError(t, w.Flush(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	weight, err := f.GetCellValue(SheetName, "C2")
	require.NoError(t, err)
	assert.Empty(t, weight)

	price, err := f.GetCellValue(SheetName, "D2")
	require.NoError(t, err)
	assert.Empty(t, price)
}

func TestFlushBlockedDestination(t *testing.T) {
	w := New(discardLogger())
	w.Append(models.PartRecord{PartNumber: "90916-03100", URL: "https://example.test"})

	// A directory squatting on the destination path makes the save fail the
	// same way a locked file does.
	dir := t.TempDir()
	path := filepath.Join(dir, "Tosshin data.xlsx")
	require.NoError(t, os.MkdirAll(path, 0755))

	err := w.Flush(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close the file")
}
