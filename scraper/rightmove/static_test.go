package rightmove

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sambezza/hullpropertyanalysis/config"
	"github.com/sambezza/hullpropertyanalysis/utils"
)

const listingHTML = `<!DOCTYPE html>
<html><body>
<div class="_1gfnqJ3Vtd1z40MlC0MzXu">Guide Price £200,000</div>
<div class="_2uQQ3SV0eMHL1P6t5ZDo2q">Albert Avenue, Hull, HU3 6PD</div>
<article><dl>
  <div><dt>PROPERTY TYPE</dt><dd><span><p>Terraced</p></span></dd></div>
  <div><dt>BEDROOMS</dt><dd><span><p>2</p></span></dd></div>
</dl></article>
</body></html>`

func testConfig() *config.Config {
	return &config.Config{FetchMode: "static", MaxRetries: 1}
}

func TestStaticFetcherExtractsListing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listingHTML))
	}))
	defer ts.Close()

	f := NewStaticFetcher(testConfig(), utils.NewLogger())
	listing, err := f.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatal(err)
	}

	if listing.Price == nil || *listing.Price != 200000 {
		t.Errorf("Price = %v; want 200000", listing.Price)
	}
	if listing.RawPrice != "£200,000" {
		t.Errorf("RawPrice = %q; want %q", listing.RawPrice, "£200,000")
	}
	if listing.Street != "Albert Avenue" {
		t.Errorf("Street = %q; want %q", listing.Street, "Albert Avenue")
	}
	if listing.Postcode != "HU3 6PD" {
		t.Errorf("Postcode = %q; want %q", listing.Postcode, "HU3 6PD")
	}
	if listing.Type.Code != "T" {
		t.Errorf("Type.Code = %q; want T", listing.Type.Code)
	}
}

func TestStaticFetcherMissingFields(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>nothing here</p></body></html>"))
	}))
	defer ts.Close()

	f := NewStaticFetcher(testConfig(), utils.NewLogger())
	listing, err := f.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatal(err)
	}

	// A page without the expected markup is a listing with absent fields,
	// not an error.
	if listing.Price != nil {
		t.Errorf("Price = %d; want nil", *listing.Price)
	}
	if listing.Street != "" || listing.Postcode != "" {
		t.Errorf("address = %q/%q; want empty", listing.Street, listing.Postcode)
	}
	if listing.Type.Known() {
		t.Errorf("Type = %v; want unknown", listing.Type)
	}
}

func TestStaticFetcherServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer ts.Close()

	f := NewStaticFetcher(testConfig(), utils.NewLogger())
	if _, err := f.Fetch(context.Background(), ts.URL); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestBuildListingSingleAddressPart(t *testing.T) {
	listing := buildListing("u", "£95,000", "Albert Avenue", "flat")

	if listing.Street != "Albert Avenue" {
		t.Errorf("Street = %q; want the whole address", listing.Street)
	}
	if listing.Postcode != "" {
		t.Errorf("Postcode = %q; want empty", listing.Postcode)
	}
	if listing.Type.Code != "F" {
		t.Errorf("Type.Code = %q; want F", listing.Type.Code)
	}
}
