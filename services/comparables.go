package services

import (
	"sort"
	"strings"

	"github.com/sambezza/hullpropertyanalysis/models"
	"github.com/sambezza/hullpropertyanalysis/utils"
)

// ComparableSet is the result of matching a listing against the price-paid
// dataset: the matching transactions in deed-date order and their median
// sale price. MedianPrice is nil when nothing matched.
type ComparableSet struct {
	Transactions []*models.SaleTransaction `json:"transactions"`
	MedianPrice  *float64                  `json:"median_price"`
}

// Matcher filters historical sale transactions down to those comparable
// with a subject listing: same street (case-insensitive substring match)
// and the same Land Registry property-type code.
type Matcher struct {
	logger *utils.Logger
}

// NewMatcher creates a Matcher with the given logger.
func NewMatcher(logger *utils.Logger) *Matcher {
	return &Matcher{logger: logger}
}

// Find returns the comparables for the listing. A listing with no street
// or an unmapped property type can never match; the empty set is a valid
// result, not an error.
func (m *Matcher) Find(listing *models.Listing, transactions []*models.SaleTransaction) *ComparableSet {
	set := &ComparableSet{}

	if listing == nil || listing.Street == "" {
		m.logger.Warn("[comparables] No street on listing — nothing to match against")
		return set
	}
	if !listing.Type.Known() {
		m.logger.Warn("[comparables] Property type %q has no Land Registry code — nothing to match against", listing.Type)
		return set
	}

	street := strings.ToLower(listing.Street)
	for _, tx := range transactions {
		if tx.Street == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(tx.Street), street) {
			continue
		}
		if tx.TypeCode != listing.Type.Code {
			continue
		}
		set.Transactions = append(set.Transactions, tx)
	}

	sort.SliceStable(set.Transactions, func(i, j int) bool {
		return set.Transactions[i].DeedDate.Before(set.Transactions[j].DeedDate)
	})
	set.MedianPrice = medianPrice(set.Transactions)

	m.logger.Info("[comparables] %q type %s: %d of %d transactions matched",
		listing.Street, listing.Type.Code, len(set.Transactions), len(transactions))
	return set
}

// medianPrice is the statistical median of the sale prices: the middle
// value, or the mean of the two middle values for an even-sized set.
func medianPrice(transactions []*models.SaleTransaction) *float64 {
	if len(transactions) == 0 {
		return nil
	}

	prices := make([]int64, len(transactions))
	for i, tx := range transactions {
		prices[i] = tx.PricePaid
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i] < prices[j] })

	var median float64
	mid := len(prices) / 2
	if len(prices)%2 == 1 {
		median = float64(prices[mid])
	} else {
		median = float64(prices[mid-1]+prices[mid]) / 2
	}
	return &median
}
