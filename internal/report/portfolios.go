package report

import (
	"sort"

	"github.com/sells-group/revenue-cli/internal/crosswalk"
	"github.com/sells-group/revenue-cli/internal/extract"
	"github.com/sells-group/revenue-cli/internal/pipeline"
)

// portfolioSources are the datasets scanned for observed portfolio
// labels, in scan order.
var portfolioSources = []string{
	"PortfolioAux",
	"RevenuePoc",
	"RevenueProduct",
	"SuccessFee",
	"Sales",
	"UnifiedLong",
}

// Portfolios lists the portfolio display labels for selection UIs: the
// official list first, then any additionally observed labels sorted
// alphabetically.
func Portfolios(res *pipeline.Result, cw *crosswalk.Crosswalk) []string {
	out := append([]string(nil), cw.Official()...)
	listed := make(map[string]bool, len(out))
	for _, p := range out {
		listed[p] = true
	}

	var extras []string
	if res != nil {
		for _, key := range portfolioSources {
			f := res.Table(key)
			if f.Empty() || !f.HasColumn(extract.ColPortfolio) {
				continue
			}
			for i := 0; i < f.Len(); i++ {
				label := cw.ToDisplay(f.Row(i).String(extract.ColPortfolio))
				if label == "" || listed[label] {
					continue
				}
				listed[label] = true
				extras = append(extras, label)
			}
		}
	}
	sort.Strings(extras)
	return append(out, extras...)
}
