package extract

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sells-group/revenue-cli/internal/config"
	"github.com/sells-group/revenue-cli/internal/frame"
	"github.com/sells-group/revenue-cli/internal/source"
)

const fxTable = "fx_rates"

// FxRates reads the monthly currency conversion rates.
func FxRates(ctx context.Context, cfg config.SourcesConfig) (*frame.Frame, error) {
	raw, err := source.ReadTable(ctx, cfg.RatesDB, fxTable, "")
	if err != nil {
		return nil, err
	}
	return TransformFxRates(raw), nil
}

// TransformFxRates orders the rates by month and forward-fills gaps so
// every month from the first quote onward carries a usable rate.
func TransformFxRates(raw *frame.Frame) *frame.Frame {
	out := frame.New(ColPeriod, "usd", "mxn")
	if raw.Empty() {
		return out
	}

	type quote struct {
		period   time.Time
		usd, mxn decimal.Decimal
		hasUSD   bool
		hasMXN   bool
	}
	var quotes []quote
	for i := 0; i < raw.Len(); i++ {
		r := raw.Row(i)
		period, ok := r.Time("ref_period")
		if !ok {
			continue
		}
		q := quote{period: frame.MonthStart(period)}
		if d, err := decimal.NewFromString(r.String("usd")); err == nil && !d.IsZero() {
			q.usd, q.hasUSD = d, true
		}
		if d, err := decimal.NewFromString(r.String("mxn")); err == nil && !d.IsZero() {
			q.mxn, q.hasMXN = d, true
		}
		quotes = append(quotes, q)
	}
	sort.Slice(quotes, func(a, b int) bool { return quotes[a].period.Before(quotes[b].period) })

	var lastUSD, lastMXN decimal.Decimal
	for _, q := range quotes {
		if q.hasUSD {
			lastUSD = q.usd
		}
		if q.hasMXN {
			lastMXN = q.mxn
		}
		out.AppendRow(q.period, lastUSD, lastMXN)
	}
	return out
}
