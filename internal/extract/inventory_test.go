package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/revenue-cli/internal/frame"
)

func inventoryRaw() *frame.Frame {
	f := frame.New(ColPeriod, ColEngagement, ColPortfolio, ColClient, ColStatus, "held_accum", "recovered_accum")
	// Out of order on purpose: months must be sorted per engagement.
	f.AppendRow("2025-02-01", "10001", "MID", "ACME", "Active", 300.0, 50.0)
	f.AppendRow("2025-01-01", "10001", "MID", "ACME", "Active", 100.0, 0.0)
	f.AppendRow("2025-03-01", "10001", "MID", "ACME", "Active", 300.0, 150.0)
	return f
}

func TestTransformInventory_BalanceAndMovement(t *testing.T) {
	out := TransformInventory(inventoryRaw())
	require.Equal(t, 3, out.Len())

	// Jan: balance 100, first month movement equals the balance.
	assert.InDelta(t, 100.0, out.Row(0).Float(MetricInventoryBalance), 1e-9)
	assert.InDelta(t, 100.0, out.Row(0).Float(MetricInventoryMonth), 1e-9)

	// Feb: balance 250, movement +150.
	assert.InDelta(t, 250.0, out.Row(1).Float(MetricInventoryBalance), 1e-9)
	assert.InDelta(t, 150.0, out.Row(1).Float(MetricInventoryMonth), 1e-9)

	// Mar: balance 150, movement -100.
	assert.InDelta(t, 150.0, out.Row(2).Float(MetricInventoryBalance), 1e-9)
	assert.InDelta(t, -100.0, out.Row(2).Float(MetricInventoryMonth), 1e-9)
}

func TestTransformInventory_SameMonthRowsAggregate(t *testing.T) {
	f := frame.New(ColPeriod, ColEngagement, ColPortfolio, ColClient, ColStatus, "held_accum", "recovered_accum")
	f.AppendRow("2025-01-05", "10001", "MID", "ACME", "Active", 60.0, 0.0)
	f.AppendRow("2025-01-20", "10001", "MID", "ACME", "Active", 40.0, 10.0)

	out := TransformInventory(f)
	require.Equal(t, 1, out.Len())
	assert.InDelta(t, 90.0, out.Row(0).Float(MetricInventoryBalance), 1e-9)

	period, ok := out.Row(0).Time(ColPeriod)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), period)
}

func TestTransformInventory_CutoffAfterDiff(t *testing.T) {
	f := frame.New(ColPeriod, ColEngagement, ColPortfolio, ColClient, ColStatus, "held_accum", "recovered_accum")
	f.AppendRow("2024-12-01", "10001", "MID", "ACME", "Active", 100.0, 0.0)
	f.AppendRow("2025-01-01", "10001", "MID", "ACME", "Active", 130.0, 0.0)

	out := TransformInventory(f)
	// The pre-cutoff month is dropped from the output but still anchors
	// the first kept month's movement.
	require.Equal(t, 1, out.Len())
	assert.InDelta(t, 130.0, out.Row(0).Float(MetricInventoryBalance), 1e-9)
	assert.InDelta(t, 30.0, out.Row(0).Float(MetricInventoryMonth), 1e-9)
}

func TestTransformInventory_Empty(t *testing.T) {
	out := TransformInventory(frame.New())
	assert.True(t, out.Empty())
	assert.Equal(t, []string{ColPortfolio, ColPeriod, ColEngagement, ColClient, ColStatus, MetricInventoryBalance, MetricInventoryMonth}, out.Columns())
}
