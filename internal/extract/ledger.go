package extract

import (
	"context"
	"time"

	"github.com/sells-group/revenue-cli/internal/config"
	"github.com/sells-group/revenue-cli/internal/frame"
	"github.com/sells-group/revenue-cli/internal/source"
)

// The accumulated ledger stores revenue with an inverted sign
// (credits negative), so every ledger metric is negated on the way out.

const ledgerTable = "ledger_accumulated"

// engagement codes for ledger rows without a real engagement.
var pocEngagementRemap = map[string]string{
	"Publishing":        "0",
	"Fiscal Adjustment": "1",
	"NO INFO":           "2",
}

// LedgerPoC reads and normalizes recognized PoC revenue from the ledger.
func LedgerPoC(ctx context.Context, cfg config.SourcesConfig, ref time.Time) (*frame.Frame, error) {
	raw, err := source.ReadTable(ctx, cfg.LedgerDB, ledgerTable, "")
	if err != nil {
		return nil, err
	}
	return TransformLedgerPoC(raw, ref), nil
}

// TransformLedgerPoC keeps gross-operating-revenue PoC rows from 2025
// up to the reference month and maps them to the canonical shape.
func TransformLedgerPoC(raw *frame.Frame, ref time.Time) *frame.Frame {
	out := frame.New(ColPortfolio, ColPeriod, ColEngagement, ColClient, MetricRevenuePoc)
	if raw.Empty() {
		return out
	}
	for i := 0; i < raw.Len(); i++ {
		r := raw.Row(i)
		period, ok := r.Time("ref_period")
		if !ok || period.Before(historyCutoff) {
			continue
		}
		period = frame.MonthStart(period)
		if period.After(ref) {
			continue
		}
		if r.String("dre_class") != "ROB" || r.String("dre_subclass") != "PoC Revenue" {
			continue
		}
		portfolio := r.String("current_portfolio")
		if portfolio == "Publishing" {
			continue
		}
		value, _ := frame.Float(r.Get("adjusted_book_value"))
		out.AppendRow(portfolio, period, remapEngagement(r.String("engagement")), r.String("client"), -value)
	}
	return out
}

func remapEngagement(code string) string {
	if code == "" {
		return "3"
	}
	if mapped, ok := pocEngagementRemap[code]; ok {
		return mapped
	}
	return code
}

// LedgerProduct reads and normalizes product revenue from the ledger.
func LedgerProduct(ctx context.Context, cfg config.SourcesConfig) (*frame.Frame, error) {
	raw, err := source.ReadTable(ctx, cfg.LedgerDB, ledgerTable, "")
	if err != nil {
		return nil, err
	}
	return TransformLedgerProduct(raw), nil
}

// TransformLedgerProduct keeps product-class ledger rows from 2025 on.
func TransformLedgerProduct(raw *frame.Frame) *frame.Frame {
	out := frame.New(ColPortfolio, ColPeriod, ColEngagement, ColClient, MetricRevenueProduct)
	if raw.Empty() {
		return out
	}
	for i := 0; i < raw.Len(); i++ {
		r := raw.Row(i)
		period, ok := r.Time("ref_period")
		if !ok || period.Before(historyCutoff) {
			continue
		}
		if r.String("dre_subclass") != "Products" {
			continue
		}
		value, ok := frame.Float(r.Get("adjusted_book_value"))
		if !ok {
			continue
		}
		code := r.String("engagement")
		if code == "NO INFO" {
			code = "0"
		}
		out.AppendRow(r.String("current_portfolio"), frame.MonthStart(period), code, r.String("client"), -value)
	}
	return out
}

// LedgerSuccessFee reads and normalizes success-fee revenue from the ledger.
func LedgerSuccessFee(ctx context.Context, cfg config.SourcesConfig) (*frame.Frame, error) {
	raw, err := source.ReadTable(ctx, cfg.LedgerDB, ledgerTable, "")
	if err != nil {
		return nil, err
	}
	return TransformLedgerSuccessFee(raw), nil
}

// TransformLedgerSuccessFee keeps success-fee ledger rows from 2025 on,
// dropping zero-value rows.
func TransformLedgerSuccessFee(raw *frame.Frame) *frame.Frame {
	out := frame.New(ColPortfolio, ColPeriod, ColEngagement, ColClient, MetricSuccessFee)
	if raw.Empty() {
		return out
	}
	for i := 0; i < raw.Len(); i++ {
		r := raw.Row(i)
		period, ok := r.Time("ref_period")
		if !ok || period.Before(historyCutoff) {
			continue
		}
		if r.String("dre_subclass") != "SUCCESS FEE" {
			continue
		}
		value, _ := frame.Float(r.Get("adjusted_book_value"))
		if value == 0 {
			continue
		}
		out.AppendRow(r.String("current_portfolio"), frame.MonthStart(period), r.String("engagement"), r.String("client"), -value)
	}
	return out
}
