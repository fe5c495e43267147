package services

import (
	"testing"

	"github.com/sambezza/hullpropertyanalysis/config"
	"github.com/sambezza/hullpropertyanalysis/models"
)

func TestAnalyzeEndToEnd(t *testing.T) {
	a := NewAnalyzer(newTestLogger(), config.DefaultThresholds())

	report := a.Analyze(terracedListing("Albert Avenue"), 100000, defaultInputs(), sampleTransactions())

	if len(report.Comparables) != 3 {
		t.Errorf("Comparables = %d; want 3", len(report.Comparables))
	}
	if report.MedianPrice == nil || *report.MedianPrice != 110000 {
		t.Fatalf("MedianPrice = %v; want 110000", report.MedianPrice)
	}
	// Price below median, gross yield 7.2 over 6, but net yield 2.105
	// under 5 — mixed signals.
	if report.Decision != models.DecisionCaution {
		t.Errorf("Decision = %v; want Proceed with Caution", report.Decision)
	}
	if report.GrossYieldDelta == nil || report.NetYieldDelta == nil || report.CashOnCashDelta == nil {
		t.Error("expected all three threshold deltas to be defined")
	}
}

func TestAnalyzeNoComparables(t *testing.T) {
	a := NewAnalyzer(newTestLogger(), config.DefaultThresholds())

	report := a.Analyze(terracedListing("Nonexistent Lane"), 100000, defaultInputs(), sampleTransactions())

	if report.MedianPrice != nil {
		t.Errorf("MedianPrice = %.0f; want nil", *report.MedianPrice)
	}
	if report.Decision != models.DecisionInsufficientData {
		t.Errorf("Decision = %v; want Insufficient Comparable Data", report.Decision)
	}
	// Metrics are still computed; only the verdict is withheld.
	if report.Metrics.GrossYieldPercent == nil {
		t.Error("GrossYieldPercent = nil; want defined")
	}
}
