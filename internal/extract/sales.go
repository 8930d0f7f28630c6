package extract

import (
	"context"
	"strconv"
	"strings"

	"github.com/sells-group/revenue-cli/internal/config"
	"github.com/sells-group/revenue-cli/internal/frame"
	"github.com/sells-group/revenue-cli/internal/source"
)

const opportunitiesTable = "opportunities"

const (
	ClassNew     = "New"
	ClassRenewal = "Renewal"
)

// closed-won statuses that count as a sale.
var soldStatuses = map[string]bool{
	"Official": true,
	"Sold":     true,
}

// Sales reads the opportunities table and derives the sales dataset.
func Sales(ctx context.Context, cfg config.SourcesConfig) (*frame.Frame, error) {
	raw, err := source.ReadTable(ctx, cfg.ResultsDB, opportunitiesTable, "")
	if err != nil {
		return nil, err
	}
	return TransformSales(raw), nil
}

// TransformSales keeps closed-won opportunities from 2025 on and
// resolves each row's New/Renewal classification.
//
// Legacy rows often miss the explicit classification field, so it is
// filled by a tiered fallback: the row's own field first, then the
// classification observed on sibling rows of the same engagement
// (Renewal wins over New when both appear), then the same rule over the
// 5-character engagement prefix group, and finally New.
func TransformSales(raw *frame.Frame) *frame.Frame {
	out := frame.New(ColPortfolio, ColPeriod, ColStatus, ColClassification, MetricSalesTotal)
	if raw.Empty() {
		return out
	}

	codes := make([]string, raw.Len())
	own := make([]string, raw.Len())
	for i := 0; i < raw.Len(); i++ {
		r := raw.Row(i)
		codes[i] = engagementText(r.Get("engagement"))
		own[i] = normalizeClass(r.String("opportunity_class"))
	}
	byEngagement := classByGroup(codes, own)
	byPrefix := classByPrefix(codes, byEngagement)

	for i := 0; i < raw.Len(); i++ {
		r := raw.Row(i)
		status := r.String("status")
		if !soldStatuses[status] {
			continue
		}
		vintage, ok := r.Time("vintage")
		if !ok || vintage.Before(historyCutoff) {
			continue
		}
		class := own[i]
		if class == "" {
			class = byEngagement[codes[i]]
		}
		if class == "" {
			class = byPrefix[prefix5(codes[i])]
		}
		if class == "" {
			class = ClassNew
		}
		value, _ := frame.Float(r.Get("deal_value"))
		out.AppendRow(r.String("current_portfolio"), frame.MonthStart(vintage), status, class, value)
	}
	return out
}

// normalizeClass collapses the free-form source field: empty stays
// empty, "New" stays New, anything else is a renewal variant.
func normalizeClass(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if v == ClassNew {
		return ClassNew
	}
	return ClassRenewal
}

// classByGroup resolves one classification per engagement code from all
// rows sharing it. Renewal wins over New when the group conflicts.
func classByGroup(codes, classes []string) map[string]string {
	resolved := make(map[string]string)
	for i, code := range codes {
		if code == "" || classes[i] == "" {
			continue
		}
		if classes[i] == ClassRenewal || resolved[code] == "" {
			resolved[code] = classes[i]
		}
	}
	return resolved
}

// classByPrefix aggregates engagement-level classifications per
// 5-character prefix group. Renewal wins; groups with only conflicting
// non-renewal tags default to New.
func classByPrefix(codes []string, byEngagement map[string]string) map[string]string {
	resolved := make(map[string]string)
	seen := make(map[string]bool)
	for _, code := range codes {
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		class := byEngagement[code]
		if class == "" {
			continue
		}
		p := prefix5(code)
		if class == ClassRenewal || resolved[p] == "" {
			resolved[p] = class
		}
	}
	for p, class := range resolved {
		if class != ClassRenewal {
			resolved[p] = ClassNew
		}
	}
	return resolved
}

func prefix5(code string) string {
	if len(code) > 5 {
		return code[:5]
	}
	return code
}

// engagementText renders the numeric-like engagement code as the
// canonical integer string, "" when unparseable.
func engagementText(v any) string {
	f, ok := frame.Float(v)
	if !ok {
		return ""
	}
	return strconv.FormatInt(int64(f), 10)
}
