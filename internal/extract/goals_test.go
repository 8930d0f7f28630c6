package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/revenue-cli/internal/crosswalk"
	"github.com/sells-group/revenue-cli/internal/frame"
)

func TestTransformRevenueGoal(t *testing.T) {
	raw := frame.New("Portfolio", "01/01/2025", "01/02/2025", "Notes")
	raw.AppendRow("MID", "100", "150,5", "ignore me")

	out := TransformRevenueGoal(raw)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, []string{ColPortfolio, ColPeriod, MetricRevenueGoal}, out.Columns())

	// File values are in thousands.
	assert.InDelta(t, 100000.0, out.Row(0).Float(MetricRevenueGoal), 1e-9)
	assert.InDelta(t, 150500.0, out.Row(1).Float(MetricRevenueGoal), 1e-9)

	period, ok := out.Row(1).Time(ColPeriod)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), period)
}

func TestTransformSalesGoalTD(t *testing.T) {
	raw := frame.New("Portfolio", "01/03/2025")
	raw.AppendRow("Agro", "75")

	out := TransformSalesGoalTD(raw)
	require.Equal(t, 1, out.Len())
	assert.InDelta(t, 75.0, out.Row(0).Float(MetricSalesGoal), 1e-9)
}

func TestTransformSalesGoalMean(t *testing.T) {
	raw := frame.New("Portfolio", "Sale Class", "01/01/2025")
	raw.AppendRow("MID", "New", "100")
	raw.AppendRow("MID", "Renewal", "-") // dash means zero

	out := TransformSalesGoalMean(raw)
	require.Equal(t, 1, out.Len())
	assert.InDelta(t, 50.0, out.Row(0).Float(MetricSalesGoal), 1e-9)
}

func TestTransformGoalPercent(t *testing.T) {
	cw := crosswalk.New()
	raw := frame.New("Portfolio", "Status", "01/01/2025", "01/02/2025")
	raw.AppendRow("América do Norte", "NOVO", "0.4", "0.6")
	raw.AppendRow("MID", "Renewal", "0.3", "0.7")

	out := TransformGoalPercent(raw, cw)
	require.Equal(t, 4, out.Len())

	// Source label normalized to the internal portfolio name.
	assert.Equal(t, "Falconi EUA", out.Row(0).String(ColPortfolio))
	assert.Equal(t, ClassNew, out.Row(0).String(ColStatus))
	assert.Equal(t, ClassRenewal, out.Row(2).String(ColStatus))
	assert.InDelta(t, 0.4, out.Row(0).Float(MetricGoalPercent), 1e-9)
}

func TestGoalTransforms_EmptyInput(t *testing.T) {
	assert.True(t, TransformRevenueGoal(frame.New()).Empty())
	assert.True(t, TransformSalesGoalTD(frame.New()).Empty())
	assert.True(t, TransformSalesGoalMean(frame.New()).Empty())
	assert.True(t, TransformGoalPercent(frame.New(), crosswalk.New()).Empty())
}
