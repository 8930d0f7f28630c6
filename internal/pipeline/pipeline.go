// Package pipeline orchestrates the extractors into one run: load every
// dataset, unify them into the long table, and expose the results under
// the stable keys the reporting surface depends on.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/revenue-cli/internal/config"
	"github.com/sells-group/revenue-cli/internal/crosswalk"
	"github.com/sells-group/revenue-cli/internal/extract"
	"github.com/sells-group/revenue-cli/internal/frame"
	"github.com/sells-group/revenue-cli/internal/source"
	"github.com/sells-group/revenue-cli/internal/unify"
)

// Result holds one pipeline run. The field set is closed: report
// callers address datasets through Table's fixed string keys, and
// renaming a key is a breaking change for them.
type Result struct {
	RunID string

	UnifiedLong        *frame.Frame
	RevenueGoal        *frame.Frame
	Sales              *frame.Frame
	PendingAllocation  *frame.Frame
	PendingSignature   *frame.Frame
	RevenuePoc         *frame.Frame
	RevenueProduct     *frame.Frame
	SuccessFee         *frame.Frame
	BookProduct        *frame.Frame
	BookSuccessFee     *frame.Frame
	Inventory          *frame.Frame
	Collections        *frame.Frame
	PortfolioCrosswalk *frame.Frame
	PortfolioAux       *frame.Frame
	GoalPercent        *frame.Frame
	SalesGoal          *frame.Frame
	FxRates            *frame.Frame
	RiskProjects       *frame.Frame
}

// Table returns the dataset for a stable string key, nil for unknown
// keys. Safe on a nil receiver.
func (r *Result) Table(key string) *frame.Frame {
	if r == nil {
		return nil
	}
	switch key {
	case "UnifiedLong":
		return r.UnifiedLong
	case "RevenueGoal":
		return r.RevenueGoal
	case "Sales":
		return r.Sales
	case "PendingAllocation":
		return r.PendingAllocation
	case "PendingSignature":
		return r.PendingSignature
	case "RevenuePoc":
		return r.RevenuePoc
	case "RevenueProduct":
		return r.RevenueProduct
	case "SuccessFee":
		return r.SuccessFee
	case "BookProduct":
		return r.BookProduct
	case "BookSuccessFee":
		return r.BookSuccessFee
	case "Inventory":
		return r.Inventory
	case "Collections":
		return r.Collections
	case "PortfolioCrosswalk":
		return r.PortfolioCrosswalk
	case "PortfolioAux":
		return r.PortfolioAux
	case "GoalPercent":
		return r.GoalPercent
	case "SalesGoal":
		return r.SalesGoal
	case "FxRates":
		return r.FxRates
	case "RiskProjects":
		return r.RiskProjects
	}
	return nil
}

// Run executes the full pipeline. The ledger and the revenue goal file
// are required and their failures propagate; every other source degrades
// to an empty dataset with a warning, keeping the result shaped for the
// report layer.
func Run(ctx context.Context, cfg *config.Config, cw *crosswalk.Crosswalk) (*Result, error) {
	ref := frame.MonthStart(time.Now().UTC())
	res := &Result{RunID: uuid.NewString()}

	zap.L().Info("pipeline: run started",
		zap.String("run_id", res.RunID),
		zap.Time("ref_month", ref),
	)

	var err error
	if res.RevenuePoc, err = extract.LedgerPoC(ctx, cfg.Sources, ref); err != nil {
		return nil, err
	}
	ledgerProduct, err := extract.LedgerProduct(ctx, cfg.Sources)
	if err != nil {
		return nil, err
	}
	ledgerSuccessFee, err := extract.LedgerSuccessFee(ctx, cfg.Sources)
	if err != nil {
		return nil, err
	}
	if res.RevenueGoal, err = extract.RevenueGoal(cfg.Sources); err != nil {
		return nil, err
	}

	bookProduct, bookProductErr := extract.BookProduct(ctx, cfg.Sources, ref)
	res.BookProduct = optional("BookProduct", bookProduct, bookProductErr)
	bookSuccessFee, bookSuccessFeeErr := extract.BookSuccessFee(ctx, cfg.Sources, ref)
	res.BookSuccessFee = optional("BookSuccessFee", bookSuccessFee, bookSuccessFeeErr)
	res.RevenueProduct = frame.Concat(ledgerProduct, res.BookProduct)
	res.SuccessFee = frame.Concat(ledgerSuccessFee, res.BookSuccessFee)

	sales, salesErr := extract.Sales(ctx, cfg.Sources)
	res.Sales = optional("Sales", sales, salesErr)
	pendingSignature, pendingSignatureErr := extract.PendingSignature(ctx, cfg.Sources)
	res.PendingSignature = optional("PendingSignature", pendingSignature, pendingSignatureErr)

	wh := source.NewWarehouse(cfg.Warehouse.ProjectID)
	inventory, inventoryErr := extract.Inventory(ctx, wh, cfg.Warehouse)
	res.Inventory = optional("Inventory", inventory, inventoryErr)
	activeEngagements, activeEngagementsErr := extract.ActiveEngagements(ctx, wh, cfg.Warehouse)
	inPoC := optional("ActiveEngagements", activeEngagements, activeEngagementsErr)
	pendingAllocation, pendingAllocationErr := extract.PendingAllocation(ctx, cfg.Sources, inPoC, ref)
	res.PendingAllocation = optional("PendingAllocation", pendingAllocation, pendingAllocationErr)

	salesGoalTD, salesGoalTDErr := extract.SalesGoalTD(cfg.Sources)
	res.SalesGoal = optional("SalesGoal", salesGoalTD, salesGoalTDErr)
	if res.SalesGoal.Empty() {
		salesGoalMean, salesGoalMeanErr := extract.SalesGoalMean(cfg.Sources)
		res.SalesGoal = optional("SalesGoal", salesGoalMean, salesGoalMeanErr)
	}
	goalPercent, goalPercentErr := extract.GoalPercent(cfg.Sources, cw)
	res.GoalPercent = optional("GoalPercent", goalPercent, goalPercentErr)
	collections, collectionsErr := extract.Collections(cfg.Sources)
	res.Collections = optional("Collections", collections, collectionsErr)
	portfolioCrosswalk, portfolioCrosswalkErr := extract.CrosswalkTable(cfg.Sources)
	res.PortfolioCrosswalk = optional("PortfolioCrosswalk", portfolioCrosswalk, portfolioCrosswalkErr)
	portfolioAux, portfolioAuxErr := extract.PortfolioAux(cfg.Sources)
	res.PortfolioAux = optional("PortfolioAux", portfolioAux, portfolioAuxErr)
	fxRates, fxRatesErr := extract.FxRates(ctx, cfg.Sources)
	res.FxRates = optional("FxRates", fxRates, fxRatesErr)
	riskProjects, riskProjectsErr := extract.RiskProjects(cfg.Sources)
	res.RiskProjects = optional("RiskProjects", riskProjects, riskProjectsErr)

	res.UnifiedLong = unify.Unify(
		res.RevenuePoc,
		res.RevenueProduct,
		res.SuccessFee,
		res.Inventory,
		res.PendingAllocation,
		res.PendingSignature,
		res.RevenueGoal,
		res.Sales,
		res.SalesGoal,
		res.Collections,
	)

	zap.L().Info("pipeline: run finished",
		zap.String("run_id", res.RunID),
		zap.Int("long_rows", res.UnifiedLong.Len()),
	)
	return res, nil
}

// optional shields the run from a degradable source: failures are logged
// and replaced with an empty dataset.
func optional(name string, f *frame.Frame, err error) *frame.Frame {
	if err != nil {
		zap.L().Warn("pipeline: source unavailable, continuing with empty dataset",
			zap.String("dataset", name),
			zap.Error(err),
		)
		return frame.New()
	}
	return f
}
