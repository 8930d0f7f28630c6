package extract

import (
	"context"
	"time"

	"github.com/sells-group/revenue-cli/internal/config"
	"github.com/sells-group/revenue-cli/internal/frame"
	"github.com/sells-group/revenue-cli/internal/source"
)

// The order book carries contracted forward revenue; the ledger covers
// realized history, the book covers the current month onward.

const bookTable = "portfolio_book"

// clientAliases merges spellings of one client into the canonical name.
var clientAliases = map[string]string{
	"L4B LOGISTICA LTDA": "LOGGI",
}

func aliasClient(name string) string {
	if canonical, ok := clientAliases[name]; ok {
		return canonical
	}
	return name
}

// BookProduct reads forward product revenue from the order book.
func BookProduct(ctx context.Context, cfg config.SourcesConfig, ref time.Time) (*frame.Frame, error) {
	raw, err := source.ReadTable(ctx, cfg.BookDB, bookTable, "")
	if err != nil {
		return nil, err
	}
	return TransformBookProduct(raw, ref), nil
}

// TransformBookProduct keeps system-licensing book rows from the
// reference month forward.
func TransformBookProduct(raw *frame.Frame, ref time.Time) *frame.Frame {
	out := frame.New(ColPortfolio, ColPeriod, ColEngagement, ColClient, MetricRevenueProduct)
	appendBookRows(out, raw, "System Licensing", MetricRevenueProduct, ref, true)
	return out
}

// BookSuccessFee reads forward success-fee revenue from the order book.
func BookSuccessFee(ctx context.Context, cfg config.SourcesConfig, ref time.Time) (*frame.Frame, error) {
	raw, err := source.ReadTable(ctx, cfg.BookDB, bookTable, "")
	if err != nil {
		return nil, err
	}
	return TransformBookSuccessFee(raw, ref), nil
}

// TransformBookSuccessFee keeps success-fee book rows from the
// reference month forward.
func TransformBookSuccessFee(raw *frame.Frame, ref time.Time) *frame.Frame {
	out := frame.New(ColPortfolio, ColPeriod, ColEngagement, ColClient, MetricSuccessFee)
	appendBookRows(out, raw, "Success Fee", MetricSuccessFee, ref, false)
	return out
}

func appendBookRows(out, raw *frame.Frame, itemType, metric string, ref time.Time, dropUnparseable bool) {
	if raw.Empty() {
		return
	}
	for i := 0; i < raw.Len(); i++ {
		r := raw.Row(i)
		if r.String("item_type") != itemType {
			continue
		}
		period, ok := r.Time("ref_period")
		if !ok || period.Before(historyCutoff) {
			continue
		}
		period = frame.MonthStart(period)
		if period.Before(ref) {
			continue
		}
		value, parsed := frame.Float(r.Get("value"))
		if dropUnparseable && !parsed {
			continue
		}
		out.AppendRow(r.String("portfolio_name"), period, r.String("engagement_id"), aliasClient(r.String("client")), value)
	}
}
