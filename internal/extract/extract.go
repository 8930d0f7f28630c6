// Package extract holds one extractor per logical dataset. Every
// extractor is split into a thin loader that reads raw rows through the
// source package and a pure Transform function that normalizes them into
// the canonical shape: identity columns plus metric columns, periods
// truncated to month start, unparseable metrics coerced to zero.
package extract

import "time"

// Canonical identity columns shared by all extractor outputs.
const (
	ColPortfolio      = "portfolio"
	ColPeriod         = "period"
	ColEngagement     = "engagement_code"
	ColClient         = "client_name"
	ColStatus         = "status"
	ColClassification = "classification"
)

// Long-table columns produced by the unifier.
const (
	ColAttribute = "Attribute"
	ColValue     = "Value"
)

// Metric columns. Names are part of the report contract: the long
// table's attribute values are exactly these strings.
const (
	MetricRevenuePoc             = "RevenuePoc"
	MetricRevenueProduct         = "RevenueProduct"
	MetricSuccessFee             = "SuccessFee"
	MetricPendingAllocationMonth = "PendingAllocationMonth"
	MetricPendingSignature       = "PendingSignature"
	MetricPotentialPocMonth      = "PotentialPocMonth"
	MetricInventoryBalance       = "InventoryBalance"
	MetricInventoryMonth         = "InventoryMonth"
	MetricRevenueGoal            = "RevenueGoal"
	MetricSalesGoal              = "SalesGoal"
	MetricSalesTotal             = "SalesTotal"
	MetricCollections            = "Collections"
	MetricGoalPercent            = "GoalPercent"
	MetricRevenueTotal           = "RevenueTotal"
	MetricGoalGap                = "GoalGap"
)

// MetricColumns is the recognized metric set; the unifier coerces these
// to numeric, nil cells included, before deriving totals.
var MetricColumns = []string{
	MetricRevenuePoc,
	MetricRevenueProduct,
	MetricSuccessFee,
	MetricPendingAllocationMonth,
	MetricPendingSignature,
	MetricPotentialPocMonth,
	MetricInventoryBalance,
	MetricInventoryMonth,
	MetricRevenueGoal,
	MetricSalesGoal,
	MetricSalesTotal,
	MetricCollections,
	MetricGoalPercent,
}

// historyCutoff is the earliest period any extractor keeps. Sources
// carry years of history irrelevant to the current reporting cycle.
var historyCutoff = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
