package report

import (
	"sort"
	"strconv"
	"time"

	"github.com/sells-group/revenue-cli/internal/extract"
	"github.com/sells-group/revenue-cli/internal/frame"
)

// Pivot row key columns.
const (
	colPivotPortfolio  = "Portfolio"
	colPivotClient     = "Client"
	colPivotEngagement = "Engagement"
	colPivotTotal      = "Total"
)

// monthLabels returns the twelve "Jan/2025"-style column labels of a year.
func monthLabels(year int) []string {
	labels := make([]string, 12)
	for m := 1; m <= 12; m++ {
		labels[m-1] = time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC).Format("Jan/2006")
	}
	return labels
}

// MonthlyPivot cross-tabulates a value column over the months of one
// year, rows keyed by (portfolio, client, engagement). The result always
// carries exactly twelve month columns plus Total, zero-filled; empty or
// column-less input yields a zero-row table with the same header.
func MonthlyPivot(f *frame.Frame, valueCol string, year int) *frame.Frame {
	labels := monthLabels(year)
	return buildPivot(f, valueCol, labels, func(t time.Time) (string, bool) {
		if t.Year() != year {
			return "", false
		}
		return t.Format("Jan/2006"), true
	})
}

// AnnualPivot cross-tabulates a value column over a fixed list of years
// under the same shape rules as MonthlyPivot.
func AnnualPivot(f *frame.Frame, valueCol string, years []int) *frame.Frame {
	labels := make([]string, len(years))
	inYears := make(map[int]bool, len(years))
	for i, y := range years {
		labels[i] = strconv.Itoa(y)
		inYears[y] = true
	}
	return buildPivot(f, valueCol, labels, func(t time.Time) (string, bool) {
		if !inYears[t.Year()] {
			return "", false
		}
		return strconv.Itoa(t.Year()), true
	})
}

func buildPivot(f *frame.Frame, valueCol string, labels []string, bucket func(time.Time) (string, bool)) *frame.Frame {
	header := append([]string{colPivotPortfolio, colPivotClient, colPivotEngagement}, labels...)
	header = append(header, colPivotTotal)
	out := frame.New(header...)
	if f.Empty() || !f.HasColumn(valueCol) || !f.HasColumn(extract.ColPeriod) {
		return out
	}

	labelIdx := make(map[string]int, len(labels))
	for i, l := range labels {
		labelIdx[l] = i
	}

	type pivotRow struct {
		portfolio, client, engagement string
		values                        []float64
	}
	byKey := make(map[string]*pivotRow)
	var rows []*pivotRow
	for i := 0; i < f.Len(); i++ {
		r := f.Row(i)
		period, ok := r.Time(extract.ColPeriod)
		if !ok {
			continue
		}
		label, ok := bucket(period.UTC())
		if !ok {
			continue
		}
		key := r.String(extract.ColPortfolio) + "\x1f" + r.String(extract.ColClient) + "\x1f" + r.String(extract.ColEngagement)
		row, seen := byKey[key]
		if !seen {
			row = &pivotRow{
				portfolio:  r.String(extract.ColPortfolio),
				client:     r.String(extract.ColClient),
				engagement: r.String(extract.ColEngagement),
				values:     make([]float64, len(labels)),
			}
			byKey[key] = row
			rows = append(rows, row)
		}
		row.values[labelIdx[label]] += r.Float(valueCol)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.portfolio != b.portfolio {
			return a.portfolio < b.portfolio
		}
		if a.client != b.client {
			return a.client < b.client
		}
		return engagementLess(a.engagement, b.engagement)
	})

	for _, row := range rows {
		cells := make([]any, 0, len(header))
		cells = append(cells, row.portfolio, row.client, row.engagement)
		var total float64
		for _, v := range row.values {
			cells = append(cells, v)
			total += v
		}
		cells = append(cells, total)
		out.AppendRow(cells...)
	}
	return out
}

// engagementLess orders engagement codes numerically when both sides
// parse, so "999" precedes "10002". Non-numeric codes fall back to
// string order after the numeric ones.
func engagementLess(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		if fa != fb {
			return fa < fb
		}
		return a < b
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}
