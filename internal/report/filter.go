// Package report turns the unified pipeline tables into the shapes the
// reporting surface consumes: filtered slices, waterfall bucket lists,
// and period pivots.
package report

import (
	"strings"
	"time"

	"github.com/sells-group/revenue-cli/internal/crosswalk"
	"github.com/sells-group/revenue-cli/internal/extract"
	"github.com/sells-group/revenue-cli/internal/frame"
)

// FilterAll is the sentinel that disables a filter dimension.
const FilterAll = "all"

// ApplyFilters narrows a table by month, status, and portfolio. Each
// dimension is skipped when set to FilterAll. The month filter compares
// against the calendar month's bounds rather than string prefixes, the
// status filter ORs an exact trimmed match across every status-like
// column, and the portfolio filter translates the display label to the
// internal one first. Empty input passes through unchanged.
func ApplyFilters(f *frame.Frame, period, status, portfolio string, cw *crosswalk.Crosswalk) *frame.Frame {
	if f.Empty() {
		return f
	}
	out := f

	if period != FilterAll && out.HasColumn(extract.ColPeriod) {
		if start, ok := parseMonth(period); ok {
			end := start.AddDate(0, 1, 0)
			out = out.Filter(func(r frame.Row) bool {
				t, ok := r.Time(extract.ColPeriod)
				return ok && !t.Before(start) && t.Before(end)
			})
		}
	}

	if status != FilterAll {
		var cols []string
		for _, c := range out.Columns() {
			if strings.Contains(c, "status") || strings.Contains(c, "classif") {
				cols = append(cols, c)
			}
		}
		if len(cols) > 0 {
			want := strings.TrimSpace(status)
			out = out.Filter(func(r frame.Row) bool {
				for _, c := range cols {
					if r.String(c) == want {
						return true
					}
				}
				return false
			})
		}
	}

	if portfolio != FilterAll && out.HasColumn(extract.ColPortfolio) {
		internal := cw.ToInternal(portfolio)
		out = out.Filter(func(r frame.Row) bool {
			return r.String(extract.ColPortfolio) == internal
		})
	}

	return out
}

// parseMonth reads a "YYYY-MM" filter value.
func parseMonth(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// FilterYear keeps rows whose period falls in the given calendar year.
// Tables without a period column pass through unchanged.
func FilterYear(f *frame.Frame, year int) *frame.Frame {
	if f.Empty() || !f.HasColumn(extract.ColPeriod) {
		return f
	}
	return f.Filter(func(r frame.Row) bool {
		t, ok := r.Time(extract.ColPeriod)
		return ok && t.Year() == year
	})
}
