// Package config loads application configuration from file and
// environment and owns logger initialization.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Sources   SourcesConfig   `yaml:"sources" mapstructure:"sources"`
	Warehouse WarehouseConfig `yaml:"warehouse" mapstructure:"warehouse"`
	Report    ReportConfig    `yaml:"report" mapstructure:"report"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// SourcesConfig locates every file-backed source. There are no path
// defaults: an unset path means the source is unavailable, never a
// silent read from someone's filesystem.
type SourcesConfig struct {
	LedgerDB  string `yaml:"ledger_db" mapstructure:"ledger_db"`
	BookDB    string `yaml:"book_db" mapstructure:"book_db"`
	ResultsDB string `yaml:"results_db" mapstructure:"results_db"`
	RatesDB   string `yaml:"rates_db" mapstructure:"rates_db"`

	RevenueGoalCSV  string `yaml:"revenue_goal_csv" mapstructure:"revenue_goal_csv"`
	SalesGoalTDCSV  string `yaml:"sales_goal_td_csv" mapstructure:"sales_goal_td_csv"`
	SalesGoalCSV    string `yaml:"sales_goal_csv" mapstructure:"sales_goal_csv"`
	RiskProjectsCSV string `yaml:"risk_projects_csv" mapstructure:"risk_projects_csv"`
	PortfolioCSV    string `yaml:"portfolio_csv" mapstructure:"portfolio_csv"`

	GoalPercentXLSX string `yaml:"goal_percent_xlsx" mapstructure:"goal_percent_xlsx"`
	CollectionsXLSX string `yaml:"collections_xlsx" mapstructure:"collections_xlsx"`
	CrosswalkXLSX   string `yaml:"crosswalk_xlsx" mapstructure:"crosswalk_xlsx"`

	CP1252 bool `yaml:"cp1252" mapstructure:"cp1252"`
}

// WarehouseConfig configures the analytical warehouse.
type WarehouseConfig struct {
	ProjectID    string `yaml:"project_id" mapstructure:"project_id"`
	RevenueTable string `yaml:"revenue_table" mapstructure:"revenue_table"`
}

// ReportConfig configures report-layer behavior.
type ReportConfig struct {
	// GoalGapSource selects the waterfall goal-gap formula:
	// "attribute" reads the precomputed GoalGap attribute (falling back
	// to goal - total when absent), "recompute" always recomputes.
	GoalGapSource string `yaml:"goal_gap_source" mapstructure:"goal_gap_source"`
	PivotYear     int    `yaml:"pivot_year" mapstructure:"pivot_year"`
	PivotYears    []int  `yaml:"pivot_years" mapstructure:"pivot_years"`
}

// CacheConfig configures the memoization facade.
type CacheConfig struct {
	TTLMinutes int `yaml:"ttl_minutes" mapstructure:"ttl_minutes"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("REVENUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("warehouse.revenue_table", "cfo_accounting.poc_revenue")
	v.SetDefault("report.goal_gap_source", "attribute")
	v.SetDefault("report.pivot_year", 2025)
	v.SetDefault("report.pivot_years", []int{2025, 2026, 2027, 2028, 2029})
	v.SetDefault("cache.ttl_minutes", 15)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Fingerprint returns a stable hash of the configuration, used as the
// cache-key component for memoized pipeline runs.
func (c *Config) Fingerprint() string {
	b, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
