package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sambezza/hullpropertyanalysis/utils"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ppd_data.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCSVRepositoryLoads(t *testing.T) {
	path := writeTempCSV(t, `price_paid,deed_date,paon,street,town,postcode,property_type
120000,2023-06-01,12,ALBERT AVENUE,HULL,HU3 6PD,T
95000,2021-02-15,48,ALBERT AVENUE,HULL,HU3 6PD,t
`)

	repo, err := NewCSVRepository(path, utils.NewLogger())
	if err != nil {
		t.Fatal(err)
	}

	txs, err := repo.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 2 {
		t.Fatalf("loaded %d transactions; want 2", len(txs))
	}
	if txs[0].PricePaid != 120000 || txs[0].Street != "ALBERT AVENUE" {
		t.Errorf("first row parsed as %+v", txs[0])
	}
	if txs[0].DeedDate.Format("2006-01-02") != "2023-06-01" {
		t.Errorf("DeedDate = %v; want 2023-06-01", txs[0].DeedDate)
	}
	if txs[1].TypeCode != "T" {
		t.Errorf("TypeCode = %q; want upper-cased T", txs[1].TypeCode)
	}
}

func TestCSVRepositoryHeaderOrderIndependent(t *testing.T) {
	path := writeTempCSV(t, `street,property_type,deed_date,price_paid
VICTORIA ROAD,S,2022-01-31,140000
`)

	repo, err := NewCSVRepository(path, utils.NewLogger())
	if err != nil {
		t.Fatal(err)
	}

	txs, _ := repo.All()
	if len(txs) != 1 {
		t.Fatalf("loaded %d transactions; want 1", len(txs))
	}
	if txs[0].PricePaid != 140000 || txs[0].TypeCode != "S" {
		t.Errorf("row parsed as %+v", txs[0])
	}
}

func TestCSVRepositorySkipsMalformedRows(t *testing.T) {
	path := writeTempCSV(t, `price_paid,deed_date,street,property_type
not-a-number,2023-06-01,ALBERT AVENUE,T
120000,never,ALBERT AVENUE,T
120000,2023-06-01,ALBERT AVENUE,T
`)

	repo, err := NewCSVRepository(path, utils.NewLogger())
	if err != nil {
		t.Fatal(err)
	}

	txs, _ := repo.All()
	if len(txs) != 1 {
		t.Errorf("loaded %d transactions; want 1 (malformed rows skipped)", len(txs))
	}
}

func TestCSVRepositoryTimestampedDeedDate(t *testing.T) {
	path := writeTempCSV(t, `price_paid,deed_date,street,property_type
120000,2023-06-01 00:00,ALBERT AVENUE,T
`)

	repo, err := NewCSVRepository(path, utils.NewLogger())
	if err != nil {
		t.Fatal(err)
	}

	txs, _ := repo.All()
	if len(txs) != 1 {
		t.Fatalf("loaded %d transactions; want 1", len(txs))
	}
	if txs[0].DeedDate.Format("2006-01-02") != "2023-06-01" {
		t.Errorf("DeedDate = %v; want 2023-06-01", txs[0].DeedDate)
	}
}

func TestCSVRepositoryMissingFile(t *testing.T) {
	_, err := NewCSVRepository(filepath.Join(t.TempDir(), "absent.csv"), utils.NewLogger())
	if !errors.Is(err, ErrDatasetMissing) {
		t.Errorf("err = %v; want ErrDatasetMissing", err)
	}
}

func TestCSVRepositoryMissingColumn(t *testing.T) {
	path := writeTempCSV(t, `price_paid,deed_date,street
120000,2023-06-01,ALBERT AVENUE
`)

	_, err := NewCSVRepository(path, utils.NewLogger())
	if err == nil {
		t.Fatal("expected error for missing property_type column")
	}
	if errors.Is(err, ErrDatasetMissing) {
		t.Error("malformed header should not read as a missing dataset")
	}
}
