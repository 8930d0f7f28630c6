package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/revenue-cli/internal/frame"
)

var refJune = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func ledgerRaw() *frame.Frame {
	f := frame.New("ref_period", "dre_class", "dre_subclass", "current_portfolio", "adjusted_book_value", "client", "engagement")
	f.AppendRow("2025-03-15", "ROB", "PoC Revenue", "MID", -100.0, "ACME", "12345")
	f.AppendRow("2024-12-31", "ROB", "PoC Revenue", "MID", -999.0, "ACME", "12345")  // before cutoff
	f.AppendRow("2025-08-01", "ROB", "PoC Revenue", "MID", -999.0, "ACME", "12345")  // after ref
	f.AppendRow("2025-03-15", "ROB", "PoC Revenue", "Publishing", -5.0, "P", "1")    // dropped portfolio
	f.AppendRow("2025-03-15", "Cost", "PoC Revenue", "MID", -999.0, "ACME", "12345") // wrong class
	f.AppendRow("2025-04-01", "ROB", "PoC Revenue", "Agro", -50.0, "B", "")
	return f
}

func TestTransformLedgerPoC(t *testing.T) {
	out := TransformLedgerPoC(ledgerRaw(), refJune)

	require.Equal(t, 2, out.Len())
	assert.Equal(t, []string{ColPortfolio, ColPeriod, ColEngagement, ColClient, MetricRevenuePoc}, out.Columns())

	// Sign flipped, period truncated to month start.
	assert.Equal(t, 100.0, out.Row(0).Float(MetricRevenuePoc))
	period, ok := out.Row(0).Time(ColPeriod)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), period)

	// Empty engagement remapped to the sentinel code.
	assert.Equal(t, "3", out.Row(1).String(ColEngagement))
}

func TestTransformLedgerPoC_EngagementRemap(t *testing.T) {
	f := frame.New("ref_period", "dre_class", "dre_subclass", "current_portfolio", "adjusted_book_value", "client", "engagement")
	f.AppendRow("2025-02-01", "ROB", "PoC Revenue", "MID", -1.0, "A", "NO INFO")

	out := TransformLedgerPoC(f, refJune)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "2", out.Row(0).String(ColEngagement))
}

func TestTransformLedgerProduct(t *testing.T) {
	f := frame.New("ref_period", "dre_subclass", "current_portfolio", "adjusted_book_value", "client", "engagement")
	f.AppendRow("2025-02-01", "Products", "MID", -200.0, "A", "NO INFO")
	f.AppendRow("2025-02-01", "Products", "MID", "junk", "A", "77")  // unparseable value dropped
	f.AppendRow("2025-02-01", "SUCCESS FEE", "MID", -1.0, "A", "77") // wrong subclass

	out := TransformLedgerProduct(f)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, 200.0, out.Row(0).Float(MetricRevenueProduct))
	assert.Equal(t, "0", out.Row(0).String(ColEngagement))
}

func TestTransformLedgerSuccessFee(t *testing.T) {
	f := frame.New("ref_period", "dre_subclass", "current_portfolio", "adjusted_book_value", "client", "engagement")
	f.AppendRow("2025-02-01", "SUCCESS FEE", "MID", -75.0, "A", "77")
	f.AppendRow("2025-02-01", "SUCCESS FEE", "MID", 0.0, "A", "78") // zero dropped

	out := TransformLedgerSuccessFee(f)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, 75.0, out.Row(0).Float(MetricSuccessFee))
}

func TestTransformLedger_EmptyInput(t *testing.T) {
	out := TransformLedgerPoC(frame.New(), refJune)
	assert.True(t, out.Empty())
	assert.Equal(t, []string{ColPortfolio, ColPeriod, ColEngagement, ColClient, MetricRevenuePoc}, out.Columns())
}
