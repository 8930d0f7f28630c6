package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/revenue-cli/internal/extract"
	"github.com/sells-group/revenue-cli/internal/frame"
)

func pivotFixture() *frame.Frame {
	f := frame.New(extract.ColPortfolio, extract.ColClient, extract.ColEngagement, extract.ColPeriod, "v")
	f.AppendRow("MID", "ACME", "10001", "2025-01-01", 10.0)
	f.AppendRow("MID", "ACME", "10001", "2025-01-20", 5.0)
	f.AppendRow("MID", "ACME", "10001", "2025-03-01", 20.0)
	f.AppendRow("Agro", "B", "10002", "2025-06-01", 7.0)
	f.AppendRow("Agro", "B", "10002", "2026-06-01", 99.0) // other year
	return f
}

func TestMonthlyPivot(t *testing.T) {
	out := MonthlyPivot(pivotFixture(), "v", 2025)

	// 3 key columns + 12 months + Total.
	require.Len(t, out.Columns(), 16)
	assert.Equal(t, "Jan/2025", out.Columns()[3])
	assert.Equal(t, "Dec/2025", out.Columns()[14])
	assert.Equal(t, colPivotTotal, out.Columns()[15])

	require.Equal(t, 2, out.Len())
	// Rows sorted by key: Agro before MID.
	assert.Equal(t, "Agro", out.Row(0).String(colPivotPortfolio))
	assert.InDelta(t, 7.0, out.Row(0).Float("Jun/2025"), 1e-9)
	assert.InDelta(t, 7.0, out.Row(0).Float(colPivotTotal), 1e-9)

	assert.InDelta(t, 15.0, out.Row(1).Float("Jan/2025"), 1e-9)
	assert.InDelta(t, 0.0, out.Row(1).Float("Feb/2025"), 1e-9)
	assert.InDelta(t, 35.0, out.Row(1).Float(colPivotTotal), 1e-9)
}

func TestMonthlyPivot_ColumnStability(t *testing.T) {
	full := MonthlyPivot(pivotFixture(), "v", 2025)
	empty := MonthlyPivot(frame.New(), "v", 2025)
	missingCol := MonthlyPivot(pivotFixture(), "nope", 2025)

	assert.Equal(t, full.Columns(), empty.Columns())
	assert.Equal(t, full.Columns(), missingCol.Columns())
	assert.True(t, empty.Empty())
	assert.True(t, missingCol.Empty())
}

func TestMonthlyPivot_RowTotals(t *testing.T) {
	out := MonthlyPivot(pivotFixture(), "v", 2025)
	for i := 0; i < out.Len(); i++ {
		var sum float64
		for _, label := range monthLabels(2025) {
			sum += out.Row(i).Float(label)
		}
		assert.InDelta(t, out.Row(i).Float(colPivotTotal), sum, 1e-9)
	}
}

func TestMonthlyPivot_EngagementNumericOrder(t *testing.T) {
	f := frame.New(extract.ColPortfolio, extract.ColClient, extract.ColEngagement, extract.ColPeriod, "v")
	f.AppendRow("MID", "ACME", "10002", "2025-01-01", 1.0)
	f.AppendRow("MID", "ACME", "999", "2025-01-01", 2.0)
	f.AppendRow("MID", "ACME", "X-1", "2025-01-01", 3.0)

	out := MonthlyPivot(f, "v", 2025)
	require.Equal(t, 3, out.Len())
	// Numeric codes ascend by value, non-numeric codes come last.
	assert.Equal(t, "999", out.Row(0).String(colPivotEngagement))
	assert.Equal(t, "10002", out.Row(1).String(colPivotEngagement))
	assert.Equal(t, "X-1", out.Row(2).String(colPivotEngagement))
}

func TestAnnualPivot(t *testing.T) {
	years := []int{2025, 2026, 2027, 2028, 2029}
	out := AnnualPivot(pivotFixture(), "v", years)

	require.Len(t, out.Columns(), 3+len(years)+1)
	require.Equal(t, 2, out.Len())

	assert.InDelta(t, 7.0, out.Row(0).Float("2025"), 1e-9)
	assert.InDelta(t, 99.0, out.Row(0).Float("2026"), 1e-9)
	assert.InDelta(t, 106.0, out.Row(0).Float(colPivotTotal), 1e-9)
	assert.InDelta(t, 0.0, out.Row(0).Float("2029"), 1e-9)
}

func TestAnnualPivot_EmptyHeaderStable(t *testing.T) {
	years := []int{2025, 2026}
	empty := AnnualPivot(nil, "v", years)
	assert.Equal(t, []string{colPivotPortfolio, colPivotClient, colPivotEngagement, "2025", "2026", colPivotTotal}, empty.Columns())
	assert.True(t, empty.Empty())
}
