package storage

import (
	"errors"

	"github.com/sambezza/hullpropertyanalysis/models"
)

// ErrDatasetMissing means the price-paid dataset could not be loaded at
// all. This is the one fatal condition in the pipeline: there is nothing
// to match comparables against.
var ErrDatasetMissing = errors.New("sales dataset missing")

// SalesRepository provides read-only access to the historical sale
// transactions. Implementations load the dataset wholesale before the
// first query.
type SalesRepository interface {
	All() ([]*models.SaleTransaction, error)
	Close() error
}
