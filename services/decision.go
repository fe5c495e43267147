package services

import (
	"github.com/sambezza/hullpropertyanalysis/config"
	"github.com/sambezza/hullpropertyanalysis/models"
)

// Classify applies the buy-decision rule, first match wins:
//
//  1. no median — there is nothing to compare against, so no verdict;
//  2. at or below the area median with both yields at or above their
//     thresholds — good buy;
//  3. above the median with both yields below their thresholds — not
//     recommended;
//  4. anything else — proceed with caution.
//
// Stateless; callers re-run it on every input change.
func Classify(price int64, median *float64, m models.InvestmentMetrics, t config.Thresholds) models.Decision {
	if median == nil {
		return models.DecisionInsufficientData
	}
	if m.GrossYieldPercent == nil || m.NetYieldPercent == nil {
		// Zero price: neither the good-buy nor the not-recommended rule
		// can be satisfied.
		return models.DecisionCaution
	}

	gross, net := *m.GrossYieldPercent, *m.NetYieldPercent
	switch {
	case float64(price) <= *median && gross >= t.GrossYieldPercent && net >= t.NetYieldPercent:
		return models.DecisionGoodBuy
	case float64(price) > *median && gross < t.GrossYieldPercent && net < t.NetYieldPercent:
		return models.DecisionNotRecommended
	default:
		return models.DecisionCaution
	}
}

// ThresholdDeltas computes metric minus threshold for each of the three
// ratios, nil wherever the metric itself is undefined.
func ThresholdDeltas(m models.InvestmentMetrics, t config.Thresholds) (gross, net, coc *float64) {
	if m.GrossYieldPercent != nil {
		d := *m.GrossYieldPercent - t.GrossYieldPercent
		gross = &d
	}
	if m.NetYieldPercent != nil {
		d := *m.NetYieldPercent - t.NetYieldPercent
		net = &d
	}
	if m.CashOnCashPercent != nil {
		d := *m.CashOnCashPercent - t.CashOnCashPercent
		coc = &d
	}
	return gross, net, coc
}
