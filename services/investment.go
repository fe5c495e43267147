package services

import (
	"github.com/sambezza/hullpropertyanalysis/models"
)

// ComputeMetrics derives the buy-to-let figures for a property at the
// given price. Pure function: identical inputs always produce identical
// outputs. Ratios that would divide by zero come back nil.
func ComputeMetrics(price int64, in models.InvestmentInputs) models.InvestmentMetrics {
	p := float64(price)

	deposit := p * in.DepositPercent / 100
	stampDuty := p * in.StampDutyPercent / 100
	totalUpfront := deposit + stampDuty + in.LegalFees + in.RefurbishmentCost

	// TODO: confirm the intended mortgage arithmetic with the dataset
	// owner — dividing the financed amount by 100 before applying the
	// percentage rate overstates yearly interest roughly a hundredfold for
	// typical rates. Kept as-is because the decision scenarios on record
	// were produced against these numbers.
	yearlyMortgageCost := (p - deposit) / 100 * in.MortgageInterestPercent

	annualOperatingCosts := yearlyMortgageCost + in.YearlyMaintenance + in.Insurance
	annualRent := in.MonthlyRent * 12
	annualCashFlow := annualRent - annualOperatingCosts
	cashInvested := deposit + stampDuty + in.LegalFees + in.RefurbishmentCost

	m := models.InvestmentMetrics{
		Deposit:              deposit,
		StampDuty:            stampDuty,
		TotalUpfront:         totalUpfront,
		YearlyMortgageCost:   yearlyMortgageCost,
		AnnualOperatingCosts: annualOperatingCosts,
		AnnualCashFlow:       annualCashFlow,
	}

	if price != 0 {
		gross := annualRent / p * 100
		net := (annualRent - annualOperatingCosts) / p * 100
		m.GrossYieldPercent = &gross
		m.NetYieldPercent = &net
	}
	if cashInvested != 0 {
		coc := annualCashFlow / cashInvested * 100
		m.CashOnCashPercent = &coc
	}
	return m
}
