package extract

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sells-group/revenue-cli/internal/config"
	"github.com/sells-group/revenue-cli/internal/frame"
	"github.com/sells-group/revenue-cli/internal/source"
)

// Inventory reads the warehouse revenue table and derives the held
// ("estoque") revenue balances.
func Inventory(ctx context.Context, wh *source.Warehouse, cfg config.WarehouseConfig) (*frame.Frame, error) {
	q := fmt.Sprintf("SELECT * FROM `%s`", cfg.RevenueTable)
	raw, err := wh.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return TransformInventory(raw), nil
}

// TransformInventory aggregates held and recovered accumulations per
// engagement-month, then derives the running balance
// (held minus recovered) and its month-over-month movement.
func TransformInventory(raw *frame.Frame) *frame.Frame {
	out := frame.New(ColPortfolio, ColPeriod, ColEngagement, ColClient, ColStatus, MetricInventoryBalance, MetricInventoryMonth)
	if raw.Empty() {
		return out
	}

	type monthAgg struct {
		portfolio, client, status string
		period                    time.Time
		held, recovered           float64
	}
	byKey := make(map[string]*monthAgg)
	perCode := make(map[string][]string)
	var codes []string
	for i := 0; i < raw.Len(); i++ {
		r := raw.Row(i)
		period, ok := r.Time(ColPeriod)
		if !ok {
			continue
		}
		period = frame.MonthStart(period)
		code := engagementText(r.Get(ColEngagement))
		key := code + "\x1f" + period.Format("2006-01")
		agg, seen := byKey[key]
		if !seen {
			agg = &monthAgg{
				portfolio: r.String(ColPortfolio),
				client:    r.String(ColClient),
				status:    r.String(ColStatus),
				period:    period,
			}
			byKey[key] = agg
			if len(perCode[code]) == 0 {
				codes = append(codes, code)
			}
			perCode[code] = append(perCode[code], key)
		}
		agg.held += r.Float("held_accum")
		agg.recovered += r.Float("recovered_accum")
	}

	for _, code := range codes {
		keys := perCode[code]
		sort.Slice(keys, func(a, b int) bool {
			return byKey[keys[a]].period.Before(byKey[keys[b]].period)
		})
		prevBalance := 0.0
		for i, key := range keys {
			agg := byKey[key]
			balance := agg.held - agg.recovered
			monthly := balance - prevBalance
			if i == 0 {
				monthly = balance
			}
			prevBalance = balance
			if agg.period.Before(historyCutoff) {
				continue
			}
			out.AppendRow(agg.portfolio, agg.period, code, agg.client, agg.status, balance, monthly)
		}
	}
	return out
}

// ActiveEngagements returns the distinct engagement codes present in
// the warehouse revenue table, used as the already-in-PoC reference set.
func ActiveEngagements(ctx context.Context, wh *source.Warehouse, cfg config.WarehouseConfig) (*frame.Frame, error) {
	q := fmt.Sprintf("SELECT DISTINCT engagement_code FROM `%s`", cfg.RevenueTable)
	raw, err := wh.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	out := frame.New(ColEngagement)
	for i := 0; i < raw.Len(); i++ {
		if code := engagementText(raw.Value(i, ColEngagement)); code != "" {
			out.AppendRow(code)
		}
	}
	return out, nil
}
