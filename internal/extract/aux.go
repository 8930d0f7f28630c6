package extract

import (
	"strings"

	"github.com/sells-group/revenue-cli/internal/config"
	"github.com/sells-group/revenue-cli/internal/frame"
	"github.com/sells-group/revenue-cli/internal/source"
)

// Collections reads the billing collections workbook.
func Collections(cfg config.SourcesConfig) (*frame.Frame, error) {
	raw, err := source.ReadSheet(cfg.CollectionsXLSX, "Collections")
	if err != nil {
		return nil, err
	}
	return TransformCollections(raw), nil
}

// TransformCollections keeps collected amounts per engagement-month.
// Rows without a company or with the placeholder engagement "0" are
// artifacts of the sheet's subtotal lines and are dropped.
func TransformCollections(raw *frame.Frame) *frame.Frame {
	out := frame.New(ColPeriod, ColEngagement, MetricCollections)
	if raw.Empty() {
		return out
	}
	for i := 0; i < raw.Len(); i++ {
		r := raw.Row(i)
		if strings.TrimSpace(r.String("company")) == "" {
			continue
		}
		code := engagementText(r.Get("engagement"))
		if code == "" || code == "0" {
			continue
		}
		period, ok := r.Time("ref_period")
		if !ok {
			continue
		}
		value, _ := frame.Float(r.Get("collected_value"))
		out.AppendRow(frame.MonthStart(period), code, value)
	}
	return out
}

// crosswalk workbook headers vary between exports; these are the
// variants seen so far, probed case-insensitively.
var (
	crosswalkOriginalHeaders = []string{"UN_Original", "un_original", "Original"}
	crosswalkDisplayHeaders  = []string{"UN", "un", "Portfolio"}
	crosswalkUSAHeaders      = []string{"UN_USA", "un_usa", "USA"}
)

// CrosswalkTable reads the portfolio crosswalk workbook.
func CrosswalkTable(cfg config.SourcesConfig) (*frame.Frame, error) {
	raw, err := source.ReadSheet(cfg.CrosswalkXLSX, "Sheet1")
	if err != nil {
		return nil, err
	}
	return TransformCrosswalkTable(raw), nil
}

// TransformCrosswalkTable normalizes the crosswalk workbook onto fixed
// column names. When no known header variant is present the result is
// empty but keeps its shape.
func TransformCrosswalkTable(raw *frame.Frame) *frame.Frame {
	out := frame.New("original", "display", "usa")
	if raw.Empty() {
		return out
	}
	original := findColumn(raw, crosswalkOriginalHeaders)
	display := findColumn(raw, crosswalkDisplayHeaders)
	usa := findColumn(raw, crosswalkUSAHeaders)
	if original == "" && display == "" && usa == "" {
		return out
	}
	for i := 0; i < raw.Len(); i++ {
		out.AppendRow(
			columnText(raw, i, original),
			columnText(raw, i, display),
			columnText(raw, i, usa),
		)
	}
	return out
}

func findColumn(f *frame.Frame, candidates []string) string {
	for _, col := range f.Columns() {
		for _, want := range candidates {
			if strings.EqualFold(strings.TrimSpace(col), want) {
				return col
			}
		}
	}
	return ""
}

func columnText(f *frame.Frame, row int, col string) string {
	if col == "" {
		return ""
	}
	return strings.TrimSpace(frame.String(f.Value(row, col)))
}

// PortfolioAux reads the auxiliary portfolio listing.
func PortfolioAux(cfg config.SourcesConfig) (*frame.Frame, error) {
	raw, err := source.ReadDelimited(cfg.PortfolioCSV, source.DelimitedOptions{KeyColumn: "Portfolio", CP1252: cfg.CP1252})
	if err != nil {
		return nil, err
	}
	return TransformPortfolioAux(raw), nil
}

// TransformPortfolioAux keeps the portfolio names, dropping blanks.
func TransformPortfolioAux(raw *frame.Frame) *frame.Frame {
	out := frame.New(ColPortfolio)
	if raw.Empty() {
		return out
	}
	for i := 0; i < raw.Len(); i++ {
		name := strings.TrimSpace(frame.String(raw.Value(i, "Portfolio")))
		if name == "" {
			continue
		}
		out.AppendRow(name)
	}
	return out
}

// RiskProjects reads the projects-at-risk listing.
func RiskProjects(cfg config.SourcesConfig) (*frame.Frame, error) {
	raw, err := source.ReadDelimited(cfg.RiskProjectsCSV, source.DelimitedOptions{KeyColumn: "Engagement", CP1252: cfg.CP1252})
	if err != nil {
		return nil, err
	}
	return TransformRiskProjects(raw), nil
}

// TransformRiskProjects keeps the engagement codes flagged at risk.
func TransformRiskProjects(raw *frame.Frame) *frame.Frame {
	out := frame.New(ColEngagement, ColStatus)
	if raw.Empty() {
		return out
	}
	for i := 0; i < raw.Len(); i++ {
		code := engagementText(raw.Value(i, "Engagement"))
		if code == "" {
			continue
		}
		out.AppendRow(code, "At Risk")
	}
	return out
}
