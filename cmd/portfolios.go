package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/revenue-cli/internal/report"
)

var portfoliosCmd = &cobra.Command{
	Use:   "portfolios",
	Short: "List portfolio labels for selection UIs",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadPipeline(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report.Portfolios(res, cw))
	},
}

func init() {
	rootCmd.AddCommand(portfoliosCmd)
}
