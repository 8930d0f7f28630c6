package source

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/revenue-cli/internal/frame"
)

// ReadSheet reads one named sheet of an xlsx workbook, first row as
// header. An unconfigured or missing path yields ErrConnectorUnavailable;
// a missing sheet is a plain error for the caller's empty-shape fallback.
func ReadSheet(path, sheet string) (*frame.Frame, error) {
	if path == "" {
		return nil, eris.Wrapf(ErrConnectorUnavailable, "xlsx: no path configured for sheet %s", sheet)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, eris.Wrapf(ErrConnectorUnavailable, "xlsx: workbook %s: %v", path, err)
	}

	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "xlsx: open %s", path)
	}
	s, ok := file.Sheet[sheet]
	if !ok {
		return nil, eris.Errorf("xlsx: sheet %q not found in %s", sheet, path)
	}
	if len(s.Rows) == 0 {
		return frame.New(), nil
	}

	header := trimAll(rowStrings(s.Rows[0]))
	f := frame.New(header...)
	for _, row := range s.Rows[1:] {
		raw := rowStrings(row)
		cells := make([]any, len(raw))
		for i, v := range raw {
			cells[i] = v
		}
		f.AppendRow(cells...)
	}
	return f, nil
}

func rowStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		cells[i] = c.String()
	}
	return cells
}
