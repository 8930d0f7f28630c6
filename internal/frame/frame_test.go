package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMelt_RowCount(t *testing.T) {
	f := New("portfolio", "period", "A", "B", "C")
	f.AppendRow("MID", "2025-01-01", 1.0, 2.0, 3.0)
	f.AppendRow("Agro", "2025-02-01", 4.0, 5.0, 6.0)

	long := f.Melt([]string{"portfolio", "period"}, "Attribute", "Value")

	// 2 id-rows x 3 value columns.
	require.Equal(t, 6, long.Len())
	assert.Equal(t, []string{"portfolio", "period", "Attribute", "Value"}, long.Columns())

	var sumA float64
	for i := 0; i < long.Len(); i++ {
		if long.Row(i).String("Attribute") == "A" {
			sumA += long.Row(i).Float("Value")
		}
	}
	assert.InDelta(t, 5.0, sumA, 1e-9)
}

func TestMelt_DropsAbsentIDColumns(t *testing.T) {
	f := New("portfolio", "X")
	f.AppendRow("MID", 1.0)

	long := f.Melt([]string{"portfolio", "missing"}, "Attribute", "Value")
	assert.Equal(t, []string{"portfolio", "Attribute", "Value"}, long.Columns())
	require.Equal(t, 1, long.Len())
}

func TestConcat_ColumnUnion(t *testing.T) {
	a := New("portfolio", "A")
	a.AppendRow("MID", 1.0)
	b := New("portfolio", "B")
	b.AppendRow("Agro", 2.0)

	out := Concat(a, b)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, []string{"portfolio", "A", "B"}, out.Columns())

	// Union gaps are nil cells.
	assert.Nil(t, out.Value(0, "B"))
	assert.Nil(t, out.Value(1, "A"))
	assert.Equal(t, 2.0, out.Value(1, "B"))
}

func TestConcat_SkipsEmpty(t *testing.T) {
	a := New("A")
	a.AppendRow(1.0)
	out := Concat(nil, New("B"), a)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, []string{"A"}, out.Columns())
}

func TestGroupSum(t *testing.T) {
	f := New("k", "v")
	f.AppendRow("x", 1.0)
	f.AppendRow("y", 2.0)
	f.AppendRow("x", "3,5") // decimal comma string
	f.AppendRow("x", "junk")

	out := f.GroupSum([]string{"k"}, "v")
	require.Equal(t, 2, out.Len())
	// First-seen group order.
	assert.Equal(t, "x", out.Row(0).String("k"))
	assert.InDelta(t, 4.5, out.Row(0).Float("v"), 1e-9)
	assert.InDelta(t, 2.0, out.Row(1).Float("v"), 1e-9)
}

func TestFloat_Coercions(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{nil, 0, false},
		{12.5, 12.5, true},
		{int64(7), 7, true},
		{"1234.5", 1234.5, true},
		{"1.234,56", 1234.56, true},
		{"  42 ", 42, true},
		{"", 0, false},
		{"n/a", 0, false},
		{true, 1, true},
		{[]byte("3,14"), 3.14, true},
	}
	for _, tc := range cases {
		got, ok := Float(tc.in)
		assert.Equal(t, tc.ok, ok, "input %v", tc.in)
		assert.InDelta(t, tc.want, got, 1e-9, "input %v", tc.in)
	}
}

func TestTime_Layouts(t *testing.T) {
	for _, s := range []string{"2025-03-31", "31/03/2025", "2025-03-31 00:00:00", "2025-03"} {
		got, ok := Time(s)
		require.True(t, ok, s)
		assert.Equal(t, 2025, got.Year())
		assert.Equal(t, time.March, got.Month())
	}

	_, ok := Time("not a date")
	assert.False(t, ok)
}

func TestMonthStartAndMonthsBetween(t *testing.T) {
	d := time.Date(2025, time.March, 31, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), MonthStart(d))

	a := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 14, MonthsBetween(a, b))
	assert.Equal(t, -14, MonthsBetween(b, a))
}

func TestSelect_AbsentColumnsNil(t *testing.T) {
	f := New("a")
	f.AppendRow(1.0)
	out := f.Select("a", "b")
	assert.Equal(t, []string{"a", "b"}, out.Columns())
	assert.Nil(t, out.Value(0, "b"))
}

func TestEmptySafety(t *testing.T) {
	var f *Frame
	assert.True(t, f.Empty())
	assert.Zero(t, f.Len())
	assert.False(t, f.HasColumn("x"))
	assert.Zero(t, f.SumColumn("x"))
	assert.Nil(t, f.Filter(func(Row) bool { return true }))

	long := f.Melt([]string{"a"}, "Attribute", "Value")
	assert.True(t, long.Empty())
	assert.Equal(t, []string{"Attribute", "Value"}, long.Columns())
}

func TestSortBy(t *testing.T) {
	f := New("period", "v")
	f.AppendRow(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), 3.0)
	f.AppendRow(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), 1.0)
	f.AppendRow(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), 2.0)

	f.SortBy("period")
	assert.Equal(t, 1.0, f.Row(0).Float("v"))
	assert.Equal(t, 2.0, f.Row(1).Float("v"))
	assert.Equal(t, 3.0, f.Row(2).Float("v"))
}

func TestCoerceNumeric(t *testing.T) {
	f := New("v")
	f.AppendRow("1,5")
	f.AppendRow(nil)
	f.AppendRow("junk")

	f.CoerceNumeric("v")
	assert.Equal(t, 1.5, f.Value(0, "v"))
	assert.Equal(t, 0.0, f.Value(1, "v"))
	assert.Equal(t, 0.0, f.Value(2, "v"))
}
