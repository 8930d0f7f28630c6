package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/revenue-cli/internal/config"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example config.yaml to the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		const path = "config.yaml"
		if !configInitForce {
			if _, err := os.Stat(path); err == nil {
				return eris.New("config.yaml already exists, use --force to overwrite")
			}
		}

		example := config.Config{
			Sources: config.SourcesConfig{
				LedgerDB:        "data/ledger.db",
				BookDB:          "data/book.db",
				ResultsDB:       "data/results.db",
				RatesDB:         "data/rates.db",
				RevenueGoalCSV:  "data/revenue_goal.csv",
				SalesGoalTDCSV:  "data/sales_goal_td.csv",
				SalesGoalCSV:    "data/sales_goal.csv",
				RiskProjectsCSV: "data/risk_projects.csv",
				PortfolioCSV:    "data/portfolios.csv",
				GoalPercentXLSX: "data/goal_percent.xlsx",
				CollectionsXLSX: "data/collections.xlsx",
				CrosswalkXLSX:   "data/crosswalk.xlsx",
				CP1252:          true,
			},
			Warehouse: config.WarehouseConfig{
				ProjectID:    "my-project",
				RevenueTable: "cfo_accounting.poc_revenue",
			},
			Report: config.ReportConfig{
				GoalGapSource: "attribute",
				PivotYear:     2025,
				PivotYears:    []int{2025, 2026, 2027, 2028, 2029},
			},
			Cache: config.CacheConfig{TTLMinutes: 15},
			Log:   config.LogConfig{Level: "info", Format: "json"},
		}

		b, err := yaml.Marshal(&example)
		if err != nil {
			return eris.Wrap(err, "marshal example config")
		}
		if err := os.WriteFile(path, b, 0o644); err != nil {
			return eris.Wrap(err, "write config.yaml")
		}

		fmt.Println("wrote config.yaml")
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config.yaml")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
