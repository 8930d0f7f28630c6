package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/revenue-cli/internal/report"
)

var (
	cascadeMonth     string
	cascadeStatus    string
	cascadePortfolio string
	cascadeInventory bool
	cascadeYear      int
)

var cascadeCmd = &cobra.Command{
	Use:   "cascade",
	Short: "Print the revenue waterfall buckets",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadPipeline(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		var entries []report.WaterfallEntry
		if cascadeInventory {
			src := report.ApplyFilters(res.UnifiedLong, report.FilterAll, cascadeStatus, cascadePortfolio, cw)
			src = report.FilterYear(src, cascadeYear)
			entries = report.InventoryWaterfall(src)
		} else {
			src := report.ApplyFilters(res.UnifiedLong, cascadeMonth, cascadeStatus, cascadePortfolio, cw)
			entries = report.Waterfall(src, cfg.Report.GoalGapSource)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	},
}

func init() {
	cascadeCmd.Flags().StringVar(&cascadeMonth, "month", report.FilterAll, "calendar month filter (YYYY-MM)")
	cascadeCmd.Flags().StringVar(&cascadeStatus, "status", report.FilterAll, "status filter")
	cascadeCmd.Flags().StringVar(&cascadePortfolio, "portfolio", report.FilterAll, "portfolio display label filter")
	cascadeCmd.Flags().BoolVar(&cascadeInventory, "inventory", false, "inventory variant (no goal gap, year filter)")
	cascadeCmd.Flags().IntVar(&cascadeYear, "year", 2025, "year filter for the inventory variant")
	rootCmd.AddCommand(cascadeCmd)
}
