package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sambezza/hullpropertyanalysis/config"
	"github.com/sambezza/hullpropertyanalysis/models"
	"github.com/sambezza/hullpropertyanalysis/services"
	"github.com/sambezza/hullpropertyanalysis/utils"
)

type stubRepo struct {
	transactions []*models.SaleTransaction
	err          error
}

func (s *stubRepo) All() ([]*models.SaleTransaction, error) { return s.transactions, s.err }
func (s *stubRepo) Close() error                            { return nil }

type stubFetcher struct {
	listing *models.Listing
	err     error
}

func (s *stubFetcher) Fetch(_ context.Context, _ string) (*models.Listing, error) {
	return s.listing, s.err
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func newTestServer(repo *stubRepo, fetcher *stubFetcher) *Server {
	logger := utils.NewLogger()
	analyzer := services.NewAnalyzer(logger, config.DefaultThresholds())
	defaults := models.InvestmentInputs{
		DepositPercent:          25,
		MortgageInterestPercent: 5.5,
		StampDutyPercent:        config.StampDutyPercent,
		LegalFees:               2000,
		RefurbishmentCost:       5000,
		MonthlyRent:             600,
		YearlyMaintenance:       800,
		Insurance:               170,
	}
	return New(logger, fetcher, analyzer, repo, defaults)
}

func terracedSales() []*models.SaleTransaction {
	return []*models.SaleTransaction{
		{PricePaid: 120000, DeedDate: date("2023-06-01"), Street: "ALBERT AVENUE", TypeCode: "T"},
		{PricePaid: 95000, DeedDate: date("2021-02-15"), Street: "ALBERT AVENUE", TypeCode: "T"},
		{PricePaid: 130000, DeedDate: date("2022-09-01"), Street: "ALBERT AVENUE", TypeCode: "T"},
	}
}

func TestAnalyzeInlineFields(t *testing.T) {
	srv := newTestServer(&stubRepo{transactions: terracedSales()}, &stubFetcher{})

	body, _ := json.Marshal(map[string]any{
		"price":         100000,
		"street":        "Albert Avenue",
		"property_type": "Terraced House",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200 (body: %s)", rec.Code, rec.Body)
	}

	var report models.AnalysisReport
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if len(report.Comparables) != 3 {
		t.Errorf("comparables = %d; want 3", len(report.Comparables))
	}
	if report.MedianPrice == nil || *report.MedianPrice != 120000 {
		t.Errorf("median = %v; want 120000", report.MedianPrice)
	}
	if report.Metrics.GrossYieldPercent == nil {
		t.Error("gross yield missing from response")
	}
}

func TestAnalyzeFetchesURL(t *testing.T) {
	price := int64(100000)
	fetcher := &stubFetcher{listing: &models.Listing{
		URL:    "https://www.rightmove.co.uk/properties/1",
		Price:  &price,
		Street: "Albert Avenue",
		Type:   models.PropertyTypeFromLabel("Terraced House"),
	}}
	srv := newTestServer(&stubRepo{transactions: terracedSales()}, fetcher)

	body, _ := json.Marshal(map[string]any{"url": "https://www.rightmove.co.uk/properties/1"})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200 (body: %s)", rec.Code, rec.Body)
	}

	var report models.AnalysisReport
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.Price != 100000 {
		t.Errorf("price = %d; want the fetched 100000", report.Price)
	}
}

func TestAnalyzeFetchFailure(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("connection refused")}
	srv := newTestServer(&stubRepo{transactions: terracedSales()}, fetcher)

	body, _ := json.Marshal(map[string]any{"url": "https://www.rightmove.co.uk/properties/1"})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d; want 502", rec.Code)
	}
}

func TestAnalyzeBadBody(t *testing.T) {
	srv := newTestServer(&stubRepo{}, &stubFetcher{})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader([]byte("{nope")))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", rec.Code)
	}
}

func TestComparablesEndpoint(t *testing.T) {
	srv := newTestServer(&stubRepo{transactions: terracedSales()}, &stubFetcher{})

	req := httptest.NewRequest(http.MethodGet, "/api/comparables?street=Albert+Avenue&type=T", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}

	var set services.ComparableSet
	if err := json.NewDecoder(rec.Body).Decode(&set); err != nil {
		t.Fatal(err)
	}
	if len(set.Transactions) != 3 {
		t.Errorf("transactions = %d; want 3", len(set.Transactions))
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&stubRepo{}, &stubFetcher{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d; want 200", rec.Code)
	}
}
