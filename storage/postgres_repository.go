package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/sambezza/hullpropertyanalysis/models"
)

// PostgresRepository serves sale transactions from PostgreSQL. The table
// is seeded from a price-paid CSV via Import (the -import flag).
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use repository.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	repo := &PostgresRepository{db: db}
	if err := repo.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return repo, nil
}

func (r *PostgresRepository) migrate() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS sales (
			id            SERIAL PRIMARY KEY,
			price_paid    BIGINT      NOT NULL,
			deed_date     DATE        NOT NULL,
			paon          TEXT        NOT NULL DEFAULT '',
			street        TEXT        NOT NULL DEFAULT '',
			town          TEXT        NOT NULL DEFAULT '',
			postcode      TEXT        NOT NULL DEFAULT '',
			property_type VARCHAR(1)  NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_sales_street ON sales(LOWER(street));
		CREATE INDEX IF NOT EXISTS idx_sales_type   ON sales(property_type);
	`)
	return err
}

// Clear deletes all existing sales from the table.
func (r *PostgresRepository) Clear() error {
	_, err := r.db.Exec("DELETE FROM sales")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Import batch-inserts the transactions, clearing old data first. Used to
// seed the table from a CSV extract.
func (r *PostgresRepository) Import(transactions []*models.SaleTransaction) error {
	if len(transactions) == 0 {
		return nil
	}

	if err := r.Clear(); err != nil {
		return err
	}

	const batchSize = 500
	for i := 0; i < len(transactions); i += batchSize {
		end := i + batchSize
		if end > len(transactions) {
			end = len(transactions)
		}
		if err := r.insertBatch(transactions[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRepository) insertBatch(batch []*models.SaleTransaction) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*7)

	for idx, tx := range batch {
		base := idx * 7
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		valueArgs = append(valueArgs,
			tx.PricePaid, tx.DeedDate, tx.PAON, tx.Street, tx.Town, tx.Postcode, tx.TypeCode)
	}

	query := fmt.Sprintf(`
		INSERT INTO sales (price_paid, deed_date, paon, street, town, postcode, property_type)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := r.db.Exec(query, valueArgs...)
	return err
}

// All retrieves every stored transaction ordered by deed date.
func (r *PostgresRepository) All() ([]*models.SaleTransaction, error) {
	rows, err := r.db.Query(`
		SELECT price_paid, deed_date, paon, street, town, postcode, property_type
		FROM sales
		ORDER BY deed_date
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var transactions []*models.SaleTransaction
	for rows.Next() {
		tx := &models.SaleTransaction{}
		if err := rows.Scan(
			&tx.PricePaid, &tx.DeedDate, &tx.PAON, &tx.Street,
			&tx.Town, &tx.Postcode, &tx.TypeCode,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}
