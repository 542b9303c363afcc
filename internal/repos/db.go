package repos

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenDB opens the SQLite database at dsn and makes sure the schema exists.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	// one writer; also keeps ":memory:" on a single connection
	db.SetMaxOpenConns(1)

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Products, rewritten in full on every save
CREATE TABLE IF NOT EXISTS products(
  code TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  stock INTEGER NOT NULL CHECK (stock >= 0),
  price INTEGER NOT NULL CHECK (price >= 0),
  position INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_products_position ON products(position);

-- Append-only sales log; created_at is NULL for legacy rows
CREATE TABLE IF NOT EXISTS transactions(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  code TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  created_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at);

-- Present once a catalog has been saved; an empty catalog is not a first run
CREATE TABLE IF NOT EXISTS catalog_state(
  id INTEGER PRIMARY KEY CHECK (id = 1),
  saved_at TEXT NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}
