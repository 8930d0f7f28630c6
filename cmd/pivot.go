package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/revenue-cli/internal/frame"
	"github.com/sells-group/revenue-cli/internal/report"
)

var (
	pivotType      string
	pivotMonthly   bool
	pivotMonth     string
	pivotStatus    string
	pivotPortfolio string
)

var pivotCmd = &cobra.Command{
	Use:   "pivot",
	Short: "Print the pivot table for a revenue type",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadPipeline(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		var table *frame.Frame
		if pivotMonthly {
			table = report.MonthlyTableByType(res, pivotType, pivotMonth, pivotStatus, pivotPortfolio, cfg.Report.PivotYear, cw)
		} else {
			table = report.TableByType(res, pivotType, pivotStatus, pivotPortfolio, cfg.Report.PivotYears, cw)
		}
		return printFrame(table)
	},
}

// printFrame renders a frame as a column-list plus row-list JSON object.
func printFrame(f *frame.Frame) error {
	cols := f.Columns()
	rows := make([][]any, 0, f.Len())
	for i := 0; i < f.Len(); i++ {
		row := make([]any, len(cols))
		for j, c := range cols {
			row[j] = f.Value(i, c)
		}
		rows = append(rows, row)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Columns []string `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}{Columns: cols, Rows: rows})
}

func init() {
	pivotCmd.Flags().StringVar(&pivotType, "type", "revenue", "revenue type (revenue, product revenue, success fee, pending formation, pending signature, potential)")
	pivotCmd.Flags().BoolVar(&pivotMonthly, "monthly", false, "single-year monthly pivot instead of the annual one")
	pivotCmd.Flags().StringVar(&pivotMonth, "month", report.FilterAll, "calendar month filter for the monthly pivot (YYYY-MM)")
	pivotCmd.Flags().StringVar(&pivotStatus, "status", report.FilterAll, "status filter")
	pivotCmd.Flags().StringVar(&pivotPortfolio, "portfolio", report.FilterAll, "portfolio display label filter")
	rootCmd.AddCommand(pivotCmd)
}
