package source

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()
	wb := xlsx.NewFile()
	sheet, err := wb.AddSheet("Collections")
	require.NoError(t, err)

	header := sheet.AddRow()
	header.AddCell().SetString("company")
	header.AddCell().SetString("collected_value")

	row := sheet.AddRow()
	row.AddCell().SetString("ACME")
	row.AddCell().SetFloat(1234.5)

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, wb.Save(path))
	return path
}

func TestReadSheet(t *testing.T) {
	path := writeWorkbook(t)

	f, err := ReadSheet(path, "Collections")
	require.NoError(t, err)
	require.Equal(t, 1, f.Len())
	assert.Equal(t, []string{"company", "collected_value"}, f.Columns())
	assert.Equal(t, "ACME", f.Row(0).String("company"))
	assert.InDelta(t, 1234.5, f.Row(0).Float("collected_value"), 1e-9)
}

func TestReadSheet_MissingSheet(t *testing.T) {
	path := writeWorkbook(t)
	_, err := ReadSheet(path, "NoSuchSheet")
	assert.Error(t, err)
}
