package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/revenue-cli/internal/cache"
	"github.com/sells-group/revenue-cli/internal/config"
	"github.com/sells-group/revenue-cli/internal/crosswalk"
	"github.com/sells-group/revenue-cli/internal/pipeline"
)

var (
	cfg  *config.Config
	cw   *crosswalk.Crosswalk
	memo *cache.Memo
)

var rootCmd = &cobra.Command{
	Use:   "revenue-cli",
	Short: "Revenue unification pipeline",
	Long:  "Unifies ledger, order book, sales, inventory, and goal sources into one long revenue table and serves cascade and pivot reports from it.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		cw = crosswalk.New()
		memo = cache.New(time.Duration(cfg.Cache.TTLMinutes) * time.Minute)

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// loadPipeline runs the pipeline, memoized on the config fingerprint so
// repeated report commands within the TTL reuse one run.
func loadPipeline(ctx context.Context) (*pipeline.Result, error) {
	v, err := memo.Do(cache.Key(cfg.Fingerprint(), "pipeline"), func() (any, error) {
		return pipeline.Run(ctx, cfg, cw)
	})
	if err != nil {
		return nil, err
	}
	return v.(*pipeline.Result), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
