package repos

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"beautystock/internal/domain"
)

// SQLiteStore keeps the catalog and the sales log in a SQLite database.
type SQLiteStore struct{ db *sqlx.DB }

func NewSQLiteStore(db *sqlx.DB) *SQLiteStore { return &SQLiteStore{db: db} }

func (s *SQLiteStore) LoadCatalog() ([]domain.Product, error) {
	var saved int
	if err := s.db.Get(&saved, `SELECT COUNT(*) FROM catalog_state`); err != nil {
		return nil, err
	}
	if saved == 0 {
		return nil, ErrCatalogMissing
	}

	var out []domain.Product
	err := s.db.Select(&out, `
		SELECT code, name, category, stock, price
		FROM products
		ORDER BY position
	`)
	return out, err
}

// SaveCatalog replaces every product row inside one transaction.
func (s *SQLiteStore) SaveCatalog(products []domain.Product) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM products`); err != nil {
		return err
	}
	for i, p := range products {
		if _, err := tx.Exec(`
			INSERT INTO products(code, name, category, stock, price, position)
			VALUES (?, ?, ?, ?, ?, ?)
		`, p.Code, p.Name, string(p.Category), p.Stock, p.Price, i); err != nil {
			return fmt.Errorf("save %s: %w", p.Code, err)
		}
	}
	if _, err := tx.Exec(`
		INSERT INTO catalog_state(id, saved_at) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET saved_at = excluded.saved_at
	`, time.Now().Format(domain.TimestampLayout)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) AppendTransactions(txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range txns {
		var at sql.NullString
		if t.Timestamped() {
			at = sql.NullString{String: t.At.Format(domain.TimestampLayout), Valid: true}
		}
		if _, err := tx.Exec(`
			INSERT INTO transactions(code, quantity, created_at) VALUES (?, ?, ?)
		`, t.Code, t.Quantity, at); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type transactionRow struct {
	Code      string         `db:"code"`
	Quantity  int            `db:"quantity"`
	CreatedAt sql.NullString `db:"created_at"`
}

// ReadTransactions returns the log in insertion order. Rows with an
// unparseable timestamp are skipped.
func (s *SQLiteStore) ReadTransactions() ([]domain.Transaction, error) {
	var rows []transactionRow
	if err := s.db.Select(&rows, `
		SELECT code, quantity, created_at
		FROM transactions
		ORDER BY id
	`); err != nil {
		return nil, err
	}

	out := make([]domain.Transaction, 0, len(rows))
	for _, r := range rows {
		t := domain.Transaction{Code: r.Code, Quantity: r.Quantity}
		if r.CreatedAt.Valid {
			at, err := time.ParseInLocation(domain.TimestampLayout, r.CreatedAt.String, time.Local)
			if err != nil {
				continue
			}
			t.At = at
		}
		out = append(out, t)
	}
	return out, nil
}
