package report

import (
	"strings"

	"github.com/sells-group/revenue-cli/internal/crosswalk"
	"github.com/sells-group/revenue-cli/internal/extract"
	"github.com/sells-group/revenue-cli/internal/frame"
	"github.com/sells-group/revenue-cli/internal/pipeline"
)

// typeSpec binds a revenue-type selector to its value column and the
// datasets probed for it, in preference order.
type typeSpec struct {
	valueCol   string
	candidates []string
}

var typeSpecs = map[string]typeSpec{
	"pending formation": {
		valueCol:   extract.MetricPendingAllocationMonth,
		candidates: []string{"PendingAllocation", "UnifiedLong", "Sales"},
	},
	"pending signature": {
		valueCol:   extract.MetricPendingSignature,
		candidates: []string{"PendingSignature", "UnifiedLong", "Sales"},
	},
	"revenue": {
		valueCol:   extract.MetricRevenuePoc,
		candidates: []string{"RevenuePoc", "UnifiedLong", "Sales"},
	},
	"product revenue": {
		valueCol:   extract.MetricRevenueProduct,
		candidates: []string{"RevenueProduct", "BookProduct", "UnifiedLong"},
	},
	"success fee": {
		valueCol:   extract.MetricSuccessFee,
		candidates: []string{"SuccessFee", "UnifiedLong"},
	},
	"potential": {
		valueCol:   extract.MetricPotentialPocMonth,
		candidates: []string{"UnifiedLong", "Sales"},
	},
}

// TableByType builds the annual pivot for a revenue type. The type is
// matched case-insensitively; its candidate datasets are probed in order
// and the first that actually carries the metric — as a wide column or a
// long-table attribute — wins. Unknown types and fruitless probes yield
// the stably-headered empty pivot.
func TableByType(res *pipeline.Result, revenueType, status, portfolio string, years []int, cw *crosswalk.Crosswalk) *frame.Frame {
	spec, ok := typeSpecs[strings.ToLower(strings.TrimSpace(revenueType))]
	if !ok {
		return AnnualPivot(nil, extract.ColValue, years)
	}
	src := probe(res, spec)
	src = ApplyFilters(src, FilterAll, status, portfolio, cw)
	return AnnualPivot(src, spec.valueCol, years)
}

// MonthlyTableByType builds the single-year monthly pivot for a revenue
// type under the same probing rules as TableByType.
func MonthlyTableByType(res *pipeline.Result, revenueType, period, status, portfolio string, year int, cw *crosswalk.Crosswalk) *frame.Frame {
	spec, ok := typeSpecs[strings.ToLower(strings.TrimSpace(revenueType))]
	if !ok {
		return MonthlyPivot(nil, extract.ColValue, year)
	}
	src := probe(res, spec)
	src = ApplyFilters(src, period, status, portfolio, cw)
	return MonthlyPivot(src, spec.valueCol, year)
}

// probe returns the first candidate dataset carrying the metric. Long
// candidates are narrowed to the matching attribute with the metric
// materialized as a wide column.
func probe(res *pipeline.Result, spec typeSpec) *frame.Frame {
	if res == nil {
		return nil
	}
	for _, key := range spec.candidates {
		f := res.Table(key)
		if f.Empty() {
			continue
		}
		if f.HasColumn(extract.ColAttribute) && f.HasColumn(extract.ColValue) {
			sub := f.Filter(func(r frame.Row) bool {
				return r.String(extract.ColAttribute) == spec.valueCol
			})
			if sub.Empty() {
				continue
			}
			sub.AddColumn(spec.valueCol, 0.0)
			for i := 0; i < sub.Len(); i++ {
				sub.Set(i, spec.valueCol, sub.Row(i).Float(extract.ColValue))
			}
			return sub
		}
		if f.HasColumn(spec.valueCol) {
			return f
		}
	}
	return nil
}
