package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sambezza/hullpropertyanalysis/models"
	"github.com/sambezza/hullpropertyanalysis/utils"
)

// CSVRepository reads an HM Land Registry price-paid extract from disk.
// The whole file is loaded on construction; All() serves from memory.
type CSVRepository struct {
	transactions []*models.SaleTransaction
}

// Columns the repository needs. paon, town and postcode are display-only
// and tolerated when absent.
var requiredColumns = []string{"price_paid", "deed_date", "street", "property_type"}

// NewCSVRepository loads the price-paid CSV at path. A missing file is
// reported as ErrDatasetMissing. Rows that fail to parse are skipped with
// a warning; a file whose header lacks a required column is rejected.
func NewCSVRepository(path string, logger *utils.Logger) (*CSVRepository, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("csv: %q: %w", path, ErrDatasetMissing)
		}
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("csv: read header of %q: %w", path, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("csv: %q has no %q column", path, name)
		}
	}

	repo := &CSVRepository{}
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		tx, err := parseRow(row, cols)
		if err != nil {
			skipped++
			continue
		}
		repo.transactions = append(repo.transactions, tx)
	}

	if skipped > 0 {
		logger.Warn("[csv] Skipped %d malformed rows in %s", skipped, path)
	}
	logger.Info("[csv] Loaded %d sale transactions from %s", len(repo.transactions), path)
	return repo, nil
}

func parseRow(row []string, cols map[string]int) (*models.SaleTransaction, error) {
	price, err := strconv.ParseInt(strings.TrimSpace(field(row, cols, "price_paid")), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("price_paid: %w", err)
	}

	deedDate, err := parseDeedDate(field(row, cols, "deed_date"))
	if err != nil {
		return nil, fmt.Errorf("deed_date: %w", err)
	}

	return &models.SaleTransaction{
		PricePaid: price,
		DeedDate:  deedDate,
		PAON:      strings.TrimSpace(field(row, cols, "paon")),
		Street:    strings.TrimSpace(field(row, cols, "street")),
		Town:      strings.TrimSpace(field(row, cols, "town")),
		Postcode:  strings.TrimSpace(field(row, cols, "postcode")),
		TypeCode:  strings.ToUpper(strings.TrimSpace(field(row, cols, "property_type"))),
	}, nil
}

// parseDeedDate accepts the date formats seen across price-paid extracts:
// "2006-01-02", "2006-01-02 00:00" and the RFC3339-ish full timestamp.
func parseDeedDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) > 10 {
		raw = raw[:10]
	}
	return time.Parse("2006-01-02", raw)
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// All returns every loaded transaction.
func (r *CSVRepository) All() ([]*models.SaleTransaction, error) {
	return r.transactions, nil
}

// Close is a no-op; the file is released after loading.
func (r *CSVRepository) Close() error { return nil }
