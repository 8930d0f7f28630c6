// Package frame provides a small ordered-column table used as the
// intermediate shape between source readers, extractors, and reports.
package frame

import (
	"sort"
	"strings"
	"time"
)

// Frame is a rectangular table with named columns and untyped cells.
// A nil or zero-row Frame is a valid empty table.
type Frame struct {
	cols []string
	idx  map[string]int
	rows [][]any
}

// New returns an empty frame with the given columns.
func New(cols ...string) *Frame {
	f := &Frame{
		cols: append([]string(nil), cols...),
		idx:  make(map[string]int, len(cols)),
	}
	for i, c := range f.cols {
		f.idx[c] = i
	}
	return f
}

// Columns returns a copy of the column names in order.
func (f *Frame) Columns() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.cols...)
}

// HasColumn reports whether the named column exists.
func (f *Frame) HasColumn(name string) bool {
	if f == nil {
		return false
	}
	_, ok := f.idx[name]
	return ok
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.rows)
}

// Empty reports whether the frame is nil or has no rows.
func (f *Frame) Empty() bool {
	return f.Len() == 0
}

// AppendRow appends one row. Short rows are padded with nil, long rows
// truncated to the column count.
func (f *Frame) AppendRow(cells ...any) {
	row := make([]any, len(f.cols))
	copy(row, cells)
	f.rows = append(f.rows, row)
}

// Append appends a row from a column-keyed map; unknown keys are ignored.
func (f *Frame) Append(cells map[string]any) {
	row := make([]any, len(f.cols))
	for k, v := range cells {
		if i, ok := f.idx[k]; ok {
			row[i] = v
		}
	}
	f.rows = append(f.rows, row)
}

// Value returns the cell at row i, column name (nil if the column is absent).
func (f *Frame) Value(i int, name string) any {
	j, ok := f.idx[name]
	if !ok {
		return nil
	}
	return f.rows[i][j]
}

// Set overwrites the cell at row i, column name. Absent columns are a no-op.
func (f *Frame) Set(i int, name string, v any) {
	if j, ok := f.idx[name]; ok {
		f.rows[i][j] = v
	}
}

// AddColumn appends a new column filled with the given value. Adding an
// existing column is a no-op.
func (f *Frame) AddColumn(name string, fill any) {
	if f.HasColumn(name) {
		return
	}
	f.idx[name] = len(f.cols)
	f.cols = append(f.cols, name)
	for i := range f.rows {
		f.rows[i] = append(f.rows[i], fill)
	}
}

// Row is a cursor over one frame row.
type Row struct {
	f *Frame
	i int
}

// Row returns a cursor for row i.
func (f *Frame) Row(i int) Row { return Row{f: f, i: i} }

// Get returns the raw cell value for the named column.
func (r Row) Get(name string) any { return r.f.Value(r.i, name) }

// Float returns the cell coerced to float64, 0 when unparseable.
func (r Row) Float(name string) float64 {
	v, _ := Float(r.f.Value(r.i, name))
	return v
}

// String returns the cell rendered as a trimmed string.
func (r Row) String(name string) string {
	return strings.TrimSpace(String(r.f.Value(r.i, name)))
}

// Time returns the cell coerced to a time, ok=false when unparseable.
func (r Row) Time(name string) (time.Time, bool) {
	return Time(r.f.Value(r.i, name))
}

// Filter returns a new frame with the rows for which keep returns true.
func (f *Frame) Filter(keep func(Row) bool) *Frame {
	if f == nil {
		return nil
	}
	out := New(f.cols...)
	for i := range f.rows {
		if keep(Row{f: f, i: i}) {
			out.rows = append(out.rows, append([]any(nil), f.rows[i]...))
		}
	}
	return out
}

// Rename returns a new frame with columns renamed per the mapping.
func (f *Frame) Rename(mapping map[string]string) *Frame {
	if f == nil {
		return nil
	}
	cols := make([]string, len(f.cols))
	for i, c := range f.cols {
		if n, ok := mapping[c]; ok {
			cols[i] = n
		} else {
			cols[i] = c
		}
	}
	out := New(cols...)
	out.rows = f.copyRows()
	return out
}

// Select returns a new frame with only the named columns, in the given
// order. Absent columns are filled with nil cells.
func (f *Frame) Select(cols ...string) *Frame {
	out := New(cols...)
	if f == nil {
		return out
	}
	for i := range f.rows {
		row := make([]any, len(cols))
		for j, c := range cols {
			row[j] = f.Value(i, c)
		}
		out.rows = append(out.rows, row)
	}
	return out
}

// Clone returns a deep copy.
func (f *Frame) Clone() *Frame {
	if f == nil {
		return nil
	}
	out := New(f.cols...)
	out.rows = f.copyRows()
	return out
}

func (f *Frame) copyRows() [][]any {
	rows := make([][]any, len(f.rows))
	for i, r := range f.rows {
		rows[i] = append([]any(nil), r...)
	}
	return rows
}

// Concat combines frames by column union in first-seen order. Cells for
// columns a frame does not carry are nil. Nil and empty frames are skipped.
func Concat(frames ...*Frame) *Frame {
	var cols []string
	seen := make(map[string]bool)
	for _, fr := range frames {
		if fr.Empty() {
			continue
		}
		for _, c := range fr.cols {
			if !seen[c] {
				seen[c] = true
				cols = append(cols, c)
			}
		}
	}
	out := New(cols...)
	for _, fr := range frames {
		if fr.Empty() {
			continue
		}
		for i := range fr.rows {
			row := make([]any, len(cols))
			for j, c := range fr.cols {
				row[out.idx[c]] = fr.rows[i][j]
			}
			out.rows = append(out.rows, row)
		}
	}
	return out
}

// Melt reshapes the frame to long format: one output row per (input row,
// non-id column) pair, with columns idCols + "Attribute" + "Value".
// Id columns absent from the frame are dropped from the output.
func (f *Frame) Melt(idCols []string, attrCol, valueCol string) *Frame {
	var ids []string
	for _, c := range idCols {
		if f.HasColumn(c) {
			ids = append(ids, c)
		}
	}
	isID := make(map[string]bool, len(ids))
	for _, c := range ids {
		isID[c] = true
	}
	var valueCols []string
	if f != nil {
		for _, c := range f.cols {
			if !isID[c] {
				valueCols = append(valueCols, c)
			}
		}
	}

	out := New(append(append([]string(nil), ids...), attrCol, valueCol)...)
	if f == nil {
		return out
	}
	for i := range f.rows {
		for _, vc := range valueCols {
			row := make([]any, len(out.cols))
			for j, c := range ids {
				row[j] = f.Value(i, c)
			}
			row[len(ids)] = vc
			row[len(ids)+1] = f.Value(i, vc)
			out.rows = append(out.rows, row)
		}
	}
	return out
}

// GroupSum aggregates valueCol as a float sum per distinct key tuple,
// preserving first-seen group order. Unparseable values count as 0.
func (f *Frame) GroupSum(keys []string, valueCol string) *Frame {
	out := New(append(append([]string(nil), keys...), valueCol)...)
	if f.Empty() {
		return out
	}
	sums := make(map[string]float64)
	order := make(map[string]int)
	tuples := make(map[string][]any)
	var next int
	for i := range f.rows {
		k := f.groupKey(i, keys)
		if _, ok := order[k]; !ok {
			order[k] = next
			next++
			tuple := make([]any, len(keys))
			for j, c := range keys {
				tuple[j] = f.Value(i, c)
			}
			tuples[k] = tuple
		}
		v, _ := Float(f.Value(i, valueCol))
		sums[k] += v
	}
	rows := make([][]any, next)
	for k, pos := range order {
		rows[pos] = append(append([]any(nil), tuples[k]...), sums[k])
	}
	out.rows = rows
	return out
}

func (f *Frame) groupKey(i int, keys []string) string {
	var b strings.Builder
	for _, c := range keys {
		b.WriteString(cellKey(f.Value(i, c)))
		b.WriteByte(0x1f)
	}
	return b.String()
}

// SumColumn returns the float sum of a column, 0 when absent.
func (f *Frame) SumColumn(name string) float64 {
	if f.Empty() || !f.HasColumn(name) {
		return 0
	}
	var sum float64
	for i := range f.rows {
		v, _ := Float(f.Value(i, name))
		sum += v
	}
	return sum
}

// SortBy sorts rows in place, comparing the named columns as cell keys.
func (f *Frame) SortBy(cols ...string) {
	if f.Empty() {
		return
	}
	sort.SliceStable(f.rows, func(a, b int) bool {
		for _, c := range cols {
			j, ok := f.idx[c]
			if !ok {
				continue
			}
			ka, kb := cellKey(f.rows[a][j]), cellKey(f.rows[b][j])
			if ka != kb {
				return ka < kb
			}
		}
		return false
	})
}

// CoerceNumeric converts the named columns to float64 in place, turning
// unparseable and missing values into 0.
func (f *Frame) CoerceNumeric(cols ...string) {
	if f == nil {
		return
	}
	for _, c := range cols {
		j, ok := f.idx[c]
		if !ok {
			continue
		}
		for i := range f.rows {
			v, _ := Float(f.rows[i][j])
			f.rows[i][j] = v
		}
	}
}
