package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/revenue-cli/internal/frame"
)

func TestTransformCollections(t *testing.T) {
	raw := frame.New("company", "engagement", "ref_period", "collected_value")
	raw.AppendRow("ACME", "10001", "2025-01-15", "1.234,56")
	raw.AppendRow("", "10002", "2025-01-15", "999")      // subtotal line
	raw.AppendRow("ACME", "0", "2025-01-15", "999")      // placeholder engagement
	raw.AppendRow("ACME", "10003", "not a date", "999")  // unparseable period

	out := TransformCollections(raw)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "10001", out.Row(0).String(ColEngagement))
	assert.InDelta(t, 1234.56, out.Row(0).Float(MetricCollections), 1e-9)
}

func TestTransformCrosswalkTable(t *testing.T) {
	raw := frame.New("un_original", "UN", "UN_USA")
	raw.AppendRow(" Varejo ", "Bens Não Duráveis", "")

	out := TransformCrosswalkTable(raw)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, []string{"original", "display", "usa"}, out.Columns())
	assert.Equal(t, "Varejo", out.Row(0).String("original"))
	assert.Equal(t, "Bens Não Duráveis", out.Row(0).String("display"))
}

func TestTransformCrosswalkTable_UnknownHeaders(t *testing.T) {
	raw := frame.New("foo", "bar")
	raw.AppendRow("a", "b")

	out := TransformCrosswalkTable(raw)
	assert.True(t, out.Empty())
	assert.Equal(t, []string{"original", "display", "usa"}, out.Columns())
}

func TestTransformPortfolioAux(t *testing.T) {
	raw := frame.New("Portfolio")
	raw.AppendRow("MID")
	raw.AppendRow("  ")
	raw.AppendRow("Agronegócio")

	out := TransformPortfolioAux(raw)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, "MID", out.Row(0).String(ColPortfolio))
}

func TestTransformRiskProjects(t *testing.T) {
	raw := frame.New("Engagement")
	raw.AppendRow("10001")
	raw.AppendRow("not a code")

	out := TransformRiskProjects(raw)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "10001", out.Row(0).String(ColEngagement))
	assert.Equal(t, "At Risk", out.Row(0).String(ColStatus))
}
