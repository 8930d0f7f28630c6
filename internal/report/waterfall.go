package report

import (
	"math"

	"github.com/sells-group/revenue-cli/internal/extract"
	"github.com/sells-group/revenue-cli/internal/frame"
)

// WaterfallEntry is one bucket of a cascade chart.
type WaterfallEntry struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Goal-gap source modes. The long table may carry a precomputed GoalGap
// attribute whose per-row values were derived before filtering; the two
// can disagree, so the choice is explicit.
const (
	GoalGapFromAttribute = "attribute"
	GoalGapRecomputed    = "recompute"
)

// waterfall bucket labels, in chart order.
const (
	labelPoc         = "PoC Revenue"
	labelSuccessFee  = "Success Fee Revenue"
	labelProduct     = "Product Revenue"
	labelPendingTeam = "Pending Team Formation"
	labelPendingSign = "Pending Signature"
	labelPotential   = "Potential Revenue"
	labelGoalGap     = "Goal Gap"
	labelTotal       = "Total"
)

// Waterfall sums the revenue bridge buckets from an already-filtered
// table. Long tables (Attribute/Value) are summed per attribute; wide
// tables per metric column. goalGapSource picks between the table's own
// GoalGap attribute and a goal-minus-total recomputation; attribute mode
// falls back to recomputation when the attribute is absent.
func Waterfall(f *frame.Frame, goalGapSource string) []WaterfallEntry {
	sums := metricSums(f)

	poc := sums[extract.MetricRevenuePoc]
	sfee := sums[extract.MetricSuccessFee]
	prod := sums[extract.MetricRevenueProduct]
	pendTeam := sums[extract.MetricPendingAllocationMonth]
	pendSign := sums[extract.MetricPendingSignature]
	potential := sums[extract.MetricPotentialPocMonth]

	total, ok := sums[extract.MetricRevenueTotal], hasMetric(f, extract.MetricRevenueTotal)
	if !ok {
		total = poc + sfee + prod + pendTeam + pendSign + potential
	}

	gap := sums[extract.MetricRevenueGoal] - total
	if goalGapSource != GoalGapRecomputed && hasMetric(f, extract.MetricGoalGap) {
		gap = sums[extract.MetricGoalGap]
	}

	return []WaterfallEntry{
		{labelPoc, round2(poc)},
		{labelSuccessFee, round2(sfee)},
		{labelProduct, round2(prod)},
		{labelPendingTeam, round2(pendTeam)},
		{labelPendingSign, round2(pendSign)},
		{labelPotential, round2(potential)},
		{labelGoalGap, round2(gap)},
		{labelTotal, round2(total)},
	}
}

// InventoryWaterfall is the goal-less variant used by the inventory
// view: the same revenue buckets, with Total as their plain sum.
func InventoryWaterfall(f *frame.Frame) []WaterfallEntry {
	sums := metricSums(f)

	entries := []WaterfallEntry{
		{labelPoc, round2(sums[extract.MetricRevenuePoc])},
		{labelSuccessFee, round2(sums[extract.MetricSuccessFee])},
		{labelProduct, round2(sums[extract.MetricRevenueProduct])},
		{labelPendingTeam, round2(sums[extract.MetricPendingAllocationMonth])},
		{labelPendingSign, round2(sums[extract.MetricPendingSignature])},
		{labelPotential, round2(sums[extract.MetricPotentialPocMonth])},
	}
	var total float64
	for _, e := range entries {
		total += e.Value
	}
	return append(entries, WaterfallEntry{labelTotal, round2(total)})
}

// metricSums totals every metric present in the table, keyed by metric
// name, handling both the long and the wide layout.
func metricSums(f *frame.Frame) map[string]float64 {
	sums := make(map[string]float64)
	if f.Empty() {
		return sums
	}
	if f.HasColumn(extract.ColAttribute) && f.HasColumn(extract.ColValue) {
		for i := 0; i < f.Len(); i++ {
			r := f.Row(i)
			sums[r.String(extract.ColAttribute)] += r.Float(extract.ColValue)
		}
		return sums
	}
	for _, m := range append(append([]string(nil), extract.MetricColumns...), extract.MetricRevenueTotal, extract.MetricGoalGap) {
		if f.HasColumn(m) {
			sums[m] = f.SumColumn(m)
		}
	}
	return sums
}

// hasMetric reports whether the table carries the metric, as a column
// or as a long-table attribute value.
func hasMetric(f *frame.Frame, metric string) bool {
	if f.Empty() {
		return false
	}
	if f.HasColumn(metric) {
		return true
	}
	if !f.HasColumn(extract.ColAttribute) {
		return false
	}
	for i := 0; i < f.Len(); i++ {
		if f.Row(i).String(extract.ColAttribute) == metric {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
