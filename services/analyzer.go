package services

import (
	"github.com/sambezza/hullpropertyanalysis/config"
	"github.com/sambezza/hullpropertyanalysis/models"
	"github.com/sambezza/hullpropertyanalysis/utils"
)

// Analyzer runs the full pipeline for one property: comparable matching,
// metric calculation and classification, bundled into an AnalysisReport.
type Analyzer struct {
	logger     *utils.Logger
	matcher    *Matcher
	thresholds config.Thresholds
}

// NewAnalyzer creates an Analyzer with the given thresholds.
func NewAnalyzer(logger *utils.Logger, thresholds config.Thresholds) *Analyzer {
	return &Analyzer{
		logger:     logger,
		matcher:    NewMatcher(logger),
		thresholds: thresholds,
	}
}

// Thresholds returns the cut-offs the analyzer classifies against.
func (a *Analyzer) Thresholds() config.Thresholds { return a.thresholds }

// Analyze produces the report for a listing at the given price. The price
// is passed separately because the user may override the fetched one;
// a zero price yields undefined ratio metrics rather than an error.
func (a *Analyzer) Analyze(listing *models.Listing, price int64, in models.InvestmentInputs, transactions []*models.SaleTransaction) *models.AnalysisReport {
	set := a.matcher.Find(listing, transactions)
	if set.MedianPrice == nil {
		a.logger.Warn("[analyzer] No comparable sales found — decision will report insufficient data")
	}

	metrics := ComputeMetrics(price, in)
	decision := Classify(price, set.MedianPrice, metrics, a.thresholds)
	gross, net, coc := ThresholdDeltas(metrics, a.thresholds)

	return &models.AnalysisReport{
		Listing:         listing,
		Comparables:     set.Transactions,
		MedianPrice:     set.MedianPrice,
		Price:           price,
		Inputs:          in,
		Metrics:         metrics,
		Decision:        decision,
		GrossYieldDelta: gross,
		NetYieldDelta:   net,
		CashOnCashDelta: coc,
	}
}
