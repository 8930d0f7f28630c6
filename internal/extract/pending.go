package extract

import (
	"context"
	"time"

	"github.com/sells-group/revenue-cli/internal/config"
	"github.com/sells-group/revenue-cli/internal/frame"
	"github.com/sells-group/revenue-cli/internal/source"
)

const sizingTable = "team_sizing"

// consulting statuses that disqualify an opportunity from allocation.
var problemStatuses = map[string]bool{
	"Cancelled":   true,
	"Interrupted": true,
	"Not Found":   true,
	"Replaced":    true,
}

// PendingLedgerRefs loads the engagement codes already recognized in
// the ledger. When the dedicated reference table is missing it falls
// back to the distinct engagements of the opportunities table.
func PendingLedgerRefs(ctx context.Context, cfg config.SourcesConfig) (*frame.Frame, error) {
	raw, err := source.ReadTable(ctx, cfg.ResultsDB, "pending_ledger_refs", "")
	if err == nil {
		return raw.Rename(map[string]string{"engagement": ColEngagement}).Select(ColEngagement), nil
	}
	raw, err = source.ReadTable(ctx, cfg.ResultsDB, opportunitiesTable, "")
	if err != nil {
		return nil, err
	}
	out := frame.New(ColEngagement)
	seen := make(map[string]bool)
	for i := 0; i < raw.Len(); i++ {
		code := engagementText(raw.Value(i, "engagement"))
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out.AppendRow(code)
	}
	return out, nil
}

// PendingAllocation derives the revenue pending team formation.
func PendingAllocation(ctx context.Context, cfg config.SourcesConfig, inPoC *frame.Frame, ref time.Time) (*frame.Frame, error) {
	opps, err := source.ReadTable(ctx, cfg.ResultsDB, opportunitiesTable, "")
	if err != nil {
		return nil, err
	}
	sizing, err := source.ReadTable(ctx, cfg.ResultsDB, sizingTable, "")
	if err != nil {
		return nil, err
	}
	inLedger, err := PendingLedgerRefs(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return TransformPendingAllocation(opps, sizing, inPoC, inLedger, ref), nil
}

// TransformPendingAllocation apportions each not-yet-started
// engagement's sold value across its planned months.
//
// Engagements already counted in PoC or in the ledger are excluded.
// The remaining value is split proportionally to each month's planned
// headcount over the engagement's total, and the whole schedule is
// shifted forward so no allocated month falls before the reference
// month. Engagements with zero total planned headcount contribute no
// rows.
func TransformPendingAllocation(opps, sizing, inPoC, inLedger *frame.Frame, ref time.Time) *frame.Frame {
	out := frame.New(ColPortfolio, ColPeriod, ColEngagement, ColClient, MetricPendingAllocationMonth)
	if opps.Empty() || sizing.Empty() {
		return out
	}

	counted := make(map[string]bool)
	for _, set := range []*frame.Frame{inPoC, inLedger} {
		if set.Empty() || !set.HasColumn(ColEngagement) {
			continue
		}
		for i := 0; i < set.Len(); i++ {
			if code := engagementText(set.Value(i, ColEngagement)); code != "" {
				counted[code] = true
			}
		}
	}

	type pending struct {
		portfolio, client string
		value             float64
	}
	byCode := make(map[string]*pending)
	var order []string
	for i := 0; i < opps.Len(); i++ {
		r := opps.Row(i)
		hd, _ := frame.Float(r.Get("hd_count"))
		if hd <= 0 {
			continue
		}
		if r.String("engagement_class") == "Product" {
			continue
		}
		if problemStatuses[r.String("consulting_status")] {
			continue
		}
		if r.String("consulting_status") != "To Start" {
			continue
		}
		code := engagementText(r.Get("engagement"))
		if code == "" || counted[code] {
			continue
		}
		value, _ := frame.Float(r.Get("deal_value"))
		p, ok := byCode[code]
		if !ok {
			p = &pending{portfolio: r.String("current_portfolio"), client: r.String("client")}
			byCode[code] = p
			order = append(order, code)
		}
		p.value += value
	}

	type plannedMonth struct {
		period time.Time
		qty    float64
	}
	schedule := make(map[string][]plannedMonth)
	for i := 0; i < sizing.Len(); i++ {
		r := sizing.Row(i)
		code := engagementText(r.Get("engagement"))
		if code == "" {
			continue
		}
		period, ok := r.Time("ref_period")
		if !ok {
			period = ref
		}
		qty, _ := frame.Float(r.Get("hd_qty"))
		schedule[code] = append(schedule[code], plannedMonth{period: frame.MonthStart(period), qty: qty})
	}

	for _, code := range order {
		months := schedule[code]
		var totalHD float64
		minPeriod := time.Time{}
		for _, m := range months {
			totalHD += m.qty
			if minPeriod.IsZero() || m.period.Before(minPeriod) {
				minPeriod = m.period
			}
		}
		if totalHD == 0 {
			// No planned headcount: nothing to apportion, and a share
			// of zero would be a division by zero.
			continue
		}
		shift := 0
		if minPeriod.Before(ref) {
			shift = frame.MonthsBetween(minPeriod, ref)
		}
		p := byCode[code]
		for _, m := range months {
			month := frame.MonthStart(m.period.AddDate(0, shift, 0))
			if month.Before(ref) {
				continue
			}
			out.AppendRow(p.portfolio, month, code, p.client, p.value*(m.qty/totalHD))
		}
	}
	return out
}

// PendingSignature derives sold-but-unsigned revenue from opportunities.
func PendingSignature(ctx context.Context, cfg config.SourcesConfig) (*frame.Frame, error) {
	opps, err := source.ReadTable(ctx, cfg.ResultsDB, opportunitiesTable, "")
	if err != nil {
		return nil, err
	}
	return TransformPendingSignature(opps), nil
}

// TransformPendingSignature sums deal value per engagement at its
// vintage month for opportunities awaiting contract signature.
func TransformPendingSignature(opps *frame.Frame) *frame.Frame {
	out := frame.New(ColPortfolio, ColPeriod, ColEngagement, ColClient, MetricPendingSignature)
	if opps.Empty() {
		return out
	}
	kept := frame.New(ColPortfolio, ColPeriod, ColEngagement, ColClient, "deal_value")
	for i := 0; i < opps.Len(); i++ {
		r := opps.Row(i)
		if r.String("status") != "Signature Pending" {
			continue
		}
		vintage, ok := r.Time("vintage")
		if !ok || vintage.Before(historyCutoff) {
			continue
		}
		value, _ := frame.Float(r.Get("deal_value"))
		kept.AppendRow(r.String("current_portfolio"), frame.MonthStart(vintage), engagementText(r.Get("engagement")), r.String("client"), value)
	}
	grouped := kept.GroupSum([]string{ColPortfolio, ColPeriod, ColEngagement, ColClient}, "deal_value")
	for i := 0; i < grouped.Len(); i++ {
		r := grouped.Row(i)
		out.AppendRow(
			r.String(ColPortfolio),
			r.Get(ColPeriod),
			r.String(ColEngagement),
			r.String(ColClient),
			r.Float("deal_value"),
		)
	}
	return out
}
