package source

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/sells-group/revenue-cli/internal/frame"
)

// DelimitedOptions configures the delimited-text reader.
type DelimitedOptions struct {
	Delimiter rune   // default ';'
	KeyColumn string // when set and absent from the header, triggers header repair
	CP1252    bool   // decode Windows-1252 (Excel exports) instead of UTF-8
}

// ReadDelimited reads a semicolon-delimited text file with the first row
// as header. Some exports carry a junk first line that shifts the real
// header into the first data row; when KeyColumn is set and missing from
// the parsed header, the first data row is promoted to header instead.
// An unconfigured or missing path yields ErrConnectorUnavailable.
func ReadDelimited(path string, opts DelimitedOptions) (*frame.Frame, error) {
	if path == "" {
		return nil, eris.Wrap(ErrConnectorUnavailable, "csv: no path configured")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(ErrConnectorUnavailable, "csv: open %s: %v", path, err)
	}
	defer file.Close()

	var r io.Reader = file
	if opts.CP1252 {
		r = transform.NewReader(file, charmap.Windows1252.NewDecoder())
	}

	reader := csv.NewReader(r)
	reader.Comma = ';'
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1 // allow variable fields

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "csv: read %s", path)
	}
	if len(records) == 0 {
		return frame.New(), nil
	}

	header := trimAll(records[0])
	data := records[1:]
	if opts.KeyColumn != "" && !contains(header, opts.KeyColumn) && len(data) > 0 {
		header = trimAll(data[0])
		data = data[1:]
	}

	f := frame.New(header...)
	for _, rec := range data {
		cells := make([]any, len(rec))
		for i, v := range rec {
			cells[i] = v
		}
		f.AppendRow(cells...)
	}
	return f, nil
}

func trimAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}
