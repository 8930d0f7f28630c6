// Package unify folds the extractor outputs into one long-format table.
package unify

import (
	"github.com/sells-group/revenue-cli/internal/extract"
	"github.com/sells-group/revenue-cli/internal/frame"
)

// IdentityColumns are the dimensions kept through the melt; everything
// else becomes an (Attribute, Value) pair.
var IdentityColumns = []string{
	extract.ColPortfolio,
	extract.ColPeriod,
	extract.ColEngagement,
	extract.ColClient,
	extract.ColStatus,
}

// Unify concatenates the extractor frames by column union, coerces the
// recognized metric columns to numeric (union gaps become 0), derives
// the revenue total and the goal gap, and melts the result into long
// format.
func Unify(frames ...*frame.Frame) *frame.Frame {
	wide := frame.Concat(frames...)
	if wide.Empty() {
		return frame.New(append(append([]string(nil), IdentityColumns...), extract.ColAttribute, extract.ColValue)...)
	}

	var metrics []string
	for _, m := range extract.MetricColumns {
		if wide.HasColumn(m) {
			metrics = append(metrics, m)
		}
	}
	wide.CoerceNumeric(metrics...)

	wide.AddColumn(extract.MetricRevenueTotal, 0.0)
	wide.AddColumn(extract.MetricGoalGap, 0.0)
	for i := 0; i < wide.Len(); i++ {
		r := wide.Row(i)
		total := r.Float(extract.MetricRevenuePoc) +
			r.Float(extract.MetricPendingAllocationMonth) +
			r.Float(extract.MetricInventoryMonth) +
			r.Float(extract.MetricPotentialPocMonth) +
			r.Float(extract.MetricSuccessFee) +
			r.Float(extract.MetricRevenueProduct)
		wide.Set(i, extract.MetricRevenueTotal, total)
		wide.Set(i, extract.MetricGoalGap, r.Float(extract.MetricRevenueGoal)-total)
	}

	return wide.Melt(IdentityColumns, extract.ColAttribute, extract.ColValue)
}
