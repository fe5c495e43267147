package services

import (
	"fmt"
	"strings"

	"github.com/sambezza/hullpropertyanalysis/models"
)

// PrintReport renders an analysis report to the terminal.
func PrintReport(r *models.AnalysisReport) {
	sep := strings.Repeat("═", 58)
	thin := strings.Repeat("─", 58)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🏠 BUY-TO-LET ANALYSIS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Property details
	if r.Listing != nil {
		fmt.Printf("\033[1;33m  Property\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  Street        : %s\n", orNA(r.Listing.Street))
		fmt.Printf("  Postcode      : %s\n", orNA(r.Listing.Postcode))
		fmt.Printf("  Property type : %s\n", r.Listing.Type)
		fmt.Printf("  Asking price  : %s\n", wholePounds(float64(r.Price)))
		fmt.Println()
	}

	// Comparables
	fmt.Printf("\033[1;33m  Comparable Sold Properties (same street & type)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.Comparables) == 0 {
		fmt.Printf("  \033[33mNo comparable properties found in the price-paid data.\033[0m\n")
	} else {
		fmt.Printf("  %-10s %-12s %-8s %-24s %-10s\n", "PRICE", "DEED DATE", "PAON", "STREET", "POSTCODE")
		for _, tx := range r.Comparables {
			fmt.Printf("  %-10s %-12s %-8s %-24s %-10s\n",
				wholePounds(float64(tx.PricePaid)),
				tx.DeedDate.Format("2006-01-02"),
				truncate(tx.PAON, 8),
				truncate(tx.Street, 24),
				tx.Postcode)
		}
		if r.MedianPrice != nil {
			fmt.Printf("\n  Median sold price in area : \033[1m%s\033[0m\n", wholePounds(*r.MedianPrice))
		}
	}
	fmt.Println()

	// Decision banner
	var color string
	switch r.Decision {
	case models.DecisionGoodBuy:
		color = "\033[1;42;97m" // green
	case models.DecisionNotRecommended:
		color = "\033[1;41;97m" // red
	case models.DecisionCaution:
		color = "\033[1;43;30m" // orange
	default:
		color = "\033[1;100;97m" // grey
	}
	fmt.Printf("  %s  %s  \033[0m\n\n", color, strings.ToUpper(r.Decision.String()))

	// Upfront costs
	fmt.Printf("\033[1;33m  Upfront Costs\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Deposit       : %s\n", wholePounds(r.Metrics.Deposit))
	fmt.Printf("  Stamp duty    : %s\n", wholePounds(r.Metrics.StampDuty))
	fmt.Printf("  Legal fees    : %s\n", wholePounds(r.Inputs.LegalFees))
	fmt.Printf("  Refurbishment : %s\n", wholePounds(r.Inputs.RefurbishmentCost))
	fmt.Printf("  Total upfront : \033[1m%s\033[0m\n", wholePounds(r.Metrics.TotalUpfront))
	fmt.Println()

	// Returns
	fmt.Printf("\033[1;33m  Returns\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Yearly mortgage interest : %s\n", wholePounds(r.Metrics.YearlyMortgageCost))
	fmt.Printf("  Gross yield              : %s %s\n", percent(r.Metrics.GrossYieldPercent), deltaTag(r.GrossYieldDelta))
	fmt.Printf("  Net yield                : %s %s\n", percent(r.Metrics.NetYieldPercent), deltaTag(r.NetYieldDelta))
	fmt.Printf("  Cash-on-cash return      : %s %s\n", percent(r.Metrics.CashOnCashPercent), deltaTag(r.CashOnCashDelta))

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

// wholePounds formats money to the nearest pound with thousands commas.
func wholePounds(f float64) string {
	n := int64(f + 0.5)
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-£" + s
	}
	return "£" + s
}

func percent(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", *p)
}

func deltaTag(d *float64) string {
	if d == nil {
		return ""
	}
	if *d >= 0 {
		return fmt.Sprintf("\033[32m(%+.2f%%)\033[0m", *d)
	}
	return fmt.Sprintf("\033[31m(%+.2f%%)\033[0m", *d)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
