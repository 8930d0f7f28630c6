package extract

import (
	"strings"

	"github.com/sells-group/revenue-cli/internal/config"
	"github.com/sells-group/revenue-cli/internal/crosswalk"
	"github.com/sells-group/revenue-cli/internal/frame"
	"github.com/sells-group/revenue-cli/internal/source"
)

// Goal files are wide: one row per portfolio, one column per month with
// a day-first date header. They melt into canonical rows here.

const goalKeyColumn = "Portfolio"

// RevenueGoal reads the monthly revenue goal file.
func RevenueGoal(cfg config.SourcesConfig) (*frame.Frame, error) {
	raw, err := source.ReadDelimited(cfg.RevenueGoalCSV, source.DelimitedOptions{KeyColumn: goalKeyColumn, CP1252: cfg.CP1252})
	if err != nil {
		return nil, err
	}
	return TransformRevenueGoal(raw), nil
}

// TransformRevenueGoal melts month columns into canonical rows.
// File values are in thousands.
func TransformRevenueGoal(raw *frame.Frame) *frame.Frame {
	out := frame.New(ColPortfolio, ColPeriod, MetricRevenueGoal)
	meltGoalColumns(raw, func(portfolio string, period any, value float64) {
		out.AppendRow(portfolio, period, value*1000.0)
	})
	return out
}

// SalesGoalTD reads the top-down sales goal file.
func SalesGoalTD(cfg config.SourcesConfig) (*frame.Frame, error) {
	raw, err := source.ReadDelimited(cfg.SalesGoalTDCSV, source.DelimitedOptions{KeyColumn: goalKeyColumn, CP1252: cfg.CP1252})
	if err != nil {
		return nil, err
	}
	return TransformSalesGoalTD(raw), nil
}

// TransformSalesGoalTD melts month columns into canonical rows.
func TransformSalesGoalTD(raw *frame.Frame) *frame.Frame {
	out := frame.New(ColPortfolio, ColPeriod, MetricSalesGoal)
	meltGoalColumns(raw, func(portfolio string, period any, value float64) {
		out.AppendRow(portfolio, period, value)
	})
	return out
}

// salesGoalExtraColumns are non-month columns of the per-class sales
// goal file, excluded from the melt.
var salesGoalExtraColumns = map[string]bool{
	goalKeyColumn:       true,
	"Cross_Portfolio":   true,
	"Sale Class":        true,
	"opportunity_class": true,
}

// SalesGoalMean reads the per-class sales goal file and averages the
// class rows per portfolio-month.
func SalesGoalMean(cfg config.SourcesConfig) (*frame.Frame, error) {
	raw, err := source.ReadDelimited(cfg.SalesGoalCSV, source.DelimitedOptions{KeyColumn: goalKeyColumn, CP1252: cfg.CP1252})
	if err != nil {
		return nil, err
	}
	return TransformSalesGoalMean(raw), nil
}

// TransformSalesGoalMean melts month columns and takes the mean across
// the classification rows of each portfolio-month. Dashes in the file
// mean zero.
func TransformSalesGoalMean(raw *frame.Frame) *frame.Frame {
	out := frame.New(ColPortfolio, ColPeriod, MetricSalesGoal)
	if raw.Empty() {
		return out
	}
	type agg struct {
		portfolio string
		period    any
		sum       float64
		n         int
	}
	byKey := make(map[string]*agg)
	var order []string
	for i := 0; i < raw.Len(); i++ {
		portfolio := strings.TrimSpace(frame.String(raw.Value(i, goalKeyColumn)))
		for _, col := range raw.Columns() {
			if salesGoalExtraColumns[col] {
				continue
			}
			period, ok := frame.Time(col)
			if !ok {
				continue
			}
			cell := frame.String(raw.Value(i, col))
			if strings.TrimSpace(cell) == "-" {
				cell = "0"
			}
			value, _ := frame.Float(cell)
			key := portfolio + "\x1f" + col
			a, seen := byKey[key]
			if !seen {
				a = &agg{portfolio: portfolio, period: frame.MonthStart(period)}
				byKey[key] = a
				order = append(order, key)
			}
			a.sum += value
			a.n++
		}
	}
	for _, key := range order {
		a := byKey[key]
		out.AppendRow(a.portfolio, a.period, a.sum/float64(a.n))
	}
	return out
}

// meltGoalColumns walks every (row, month-column) pair of a wide goal
// frame. Columns whose header does not parse as a date are skipped.
func meltGoalColumns(raw *frame.Frame, emit func(portfolio string, period any, value float64)) {
	if raw.Empty() {
		return
	}
	for i := 0; i < raw.Len(); i++ {
		portfolio := strings.TrimSpace(frame.String(raw.Value(i, goalKeyColumn)))
		for _, col := range raw.Columns() {
			if col == goalKeyColumn {
				continue
			}
			period, ok := frame.Time(col)
			if !ok {
				continue
			}
			value, _ := frame.Float(raw.Value(i, col))
			emit(portfolio, frame.MonthStart(period), value)
		}
	}
}

// GoalPercent reads the goal percentage workbook.
func GoalPercent(cfg config.SourcesConfig, cw *crosswalk.Crosswalk) (*frame.Frame, error) {
	raw, err := source.ReadSheet(cfg.GoalPercentXLSX, "Sheet1")
	if err != nil {
		return nil, err
	}
	return TransformGoalPercent(raw, cw), nil
}

// TransformGoalPercent melts the per-status goal percentage sheet,
// normalizing portfolio labels and status spelling variants.
func TransformGoalPercent(raw *frame.Frame, cw *crosswalk.Crosswalk) *frame.Frame {
	out := frame.New(ColPortfolio, ColStatus, ColPeriod, MetricGoalPercent)
	if raw.Empty() {
		return out
	}
	for i := 0; i < raw.Len(); i++ {
		r := raw.Row(i)
		portfolio := cw.NormalizeSource(r.String("Portfolio"))
		status := normalizeGoalStatus(r.String("Status"))
		for _, col := range raw.Columns() {
			if col == "Portfolio" || col == "Status" {
				continue
			}
			period, ok := frame.Time(col)
			if !ok {
				continue
			}
			value, _ := frame.Float(raw.Value(i, col))
			out.AppendRow(portfolio, status, frame.MonthStart(period), value)
		}
	}
	return out
}

// normalizeGoalStatus folds the sheet's spelling variants onto the
// canonical New/Renewal tags; unknown values pass through.
func normalizeGoalStatus(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NEW", "NOVO":
		return ClassNew
	case "RENEWAL", "RENOVAÇÃO", "RENOVACAO", "RENOVAÇAO":
		return ClassRenewal
	}
	return s
}
