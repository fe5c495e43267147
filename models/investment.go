package models

import "encoding/json"

// InvestmentInputs are the user-supplied variables for the buy-to-let
// calculation. Percentages are expressed 0–100; money values are pounds.
type InvestmentInputs struct {
	DepositPercent          float64 `json:"deposit_percent"`
	MortgageInterestPercent float64 `json:"mortgage_interest_percent"`
	StampDutyPercent        float64 `json:"stamp_duty_percent"`
	LegalFees               float64 `json:"legal_fees"`
	RefurbishmentCost       float64 `json:"refurbishment_cost"`
	MonthlyRent             float64 `json:"monthly_rent"`
	YearlyMaintenance       float64 `json:"yearly_maintenance"`
	Insurance               float64 `json:"insurance"`
}

// InvestmentMetrics are the derived figures for one property at one price.
// The three ratio metrics are pointers: nil means the ratio is undefined
// (zero price or zero cash invested) and must be shown as N/A, never as
// Inf or NaN.
type InvestmentMetrics struct {
	Deposit              float64  `json:"deposit"`
	StampDuty            float64  `json:"stamp_duty"`
	TotalUpfront         float64  `json:"total_upfront"`
	YearlyMortgageCost   float64  `json:"yearly_mortgage_cost"`
	AnnualOperatingCosts float64  `json:"annual_operating_costs"`
	AnnualCashFlow       float64  `json:"annual_cash_flow"`
	GrossYieldPercent    *float64 `json:"gross_yield_percent"`
	NetYieldPercent      *float64 `json:"net_yield_percent"`
	CashOnCashPercent    *float64 `json:"cash_on_cash_percent"`
}

// Decision is the three-way buy classification, plus the case where no
// comparable data exists to classify against.
type Decision int

const (
	DecisionInsufficientData Decision = iota
	DecisionGoodBuy
	DecisionNotRecommended
	DecisionCaution
)

func (d Decision) String() string {
	switch d {
	case DecisionGoodBuy:
		return "Good Buy"
	case DecisionNotRecommended:
		return "Not Recommended"
	case DecisionCaution:
		return "Proceed with Caution"
	default:
		return "Insufficient Comparable Data"
	}
}

// MarshalJSON renders the decision as its display string.
func (d Decision) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts the display strings MarshalJSON produces.
func (d *Decision) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "Good Buy":
		*d = DecisionGoodBuy
	case "Not Recommended":
		*d = DecisionNotRecommended
	case "Proceed with Caution":
		*d = DecisionCaution
	default:
		*d = DecisionInsufficientData
	}
	return nil
}

// AnalysisReport is the full output of one pipeline run, as rendered by
// the terminal report and the JSON API. Recomputed fresh on every input
// change; never persisted.
type AnalysisReport struct {
	Listing     *Listing           `json:"listing,omitempty"`
	Comparables []*SaleTransaction `json:"comparables"`
	MedianPrice *float64           `json:"median_price"`
	Price       int64              `json:"price"`
	Inputs      InvestmentInputs   `json:"inputs"`
	Metrics     InvestmentMetrics  `json:"metrics"`
	Decision    Decision           `json:"decision"`

	// Deltas against the decision thresholds, nil when the metric itself
	// is undefined. The cash-on-cash delta is display-only.
	GrossYieldDelta *float64 `json:"gross_yield_delta"`
	NetYieldDelta   *float64 `json:"net_yield_delta"`
	CashOnCashDelta *float64 `json:"cash_on_cash_delta"`
}
