// Package store provides a SQLite-backed price book that can replace the
// bundled unit-price catalog.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/sienna/internal/catalog"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrEmpty is returned when the price book holds no import yet.
var ErrEmpty = errors.New("price book is empty")

// PriceBook stores one imported catalog. Prices are kept as decimal text.
type PriceBook struct {
	db *sql.DB
}

// ImportInfo describes the last import.
type ImportInfo struct {
	Source     string
	Entries    int
	ImportedAt time.Time
}

// Open opens or creates the price book database at the given path.
func Open(dbPath string) (*PriceBook, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating price book dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening price book db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &PriceBook{db: db}, nil
}

// Close closes the price book database.
func (p *PriceBook) Close() error {
	return p.db.Close()
}

// Import replaces the stored book with entries. Duplicate keys keep the
// last entry at the first entry's position, matching catalog.New.
func (p *PriceBook) Import(entries []catalog.Entry, source string, now time.Time) error {
	tx, err := p.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM price_book"); err != nil {
		return err
	}

	for i, e := range entries {
		unavailable := 0
		if e.PriceUnavailable {
			unavailable = 1
		}
		_, err = tx.Exec(`INSERT INTO price_book
			(catalog_key, position, description, unit, unit_price, price_unavailable)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(catalog_key) DO UPDATE SET
			 description = excluded.description,
			 unit = excluded.unit,
			 unit_price = excluded.unit_price,
			 price_unavailable = excluded.price_unavailable`,
			e.Key, i, e.Description, e.Unit, e.UnitPrice.String(), unavailable,
		)
		if err != nil {
			return fmt.Errorf("storing %s: %w", e.Key, err)
		}
	}

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM price_book").Scan(&count); err != nil {
		return err
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO price_book_import (id, source, entry_count, imported_at)
		VALUES (1, ?, ?, ?)`, source, count, now.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Entries reads the stored book back in import order.
func (p *PriceBook) Entries() ([]catalog.Entry, error) {
	rows, err := p.db.Query(`SELECT catalog_key, description, unit, unit_price, price_unavailable
		FROM price_book ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []catalog.Entry
	for rows.Next() {
		var e catalog.Entry
		var price string
		var unavailable int
		if err := rows.Scan(&e.Key, &e.Description, &e.Unit, &price, &unavailable); err != nil {
			return nil, err
		}
		e.PriceUnavailable = unavailable != 0
		e.UnitPrice, err = decimal.NewFromString(price)
		if err != nil {
			e.UnitPrice, e.PriceUnavailable = decimal.Zero, true
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Catalog builds a catalog from the stored book. It returns ErrEmpty when
// nothing has been imported.
func (p *PriceBook) Catalog() (*catalog.Catalog, error) {
	entries, err := p.Entries()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrEmpty
	}
	return catalog.New(entries), nil
}

// LastImport returns metadata about the stored book.
func (p *PriceBook) LastImport() (ImportInfo, error) {
	var info ImportInfo
	var at string
	err := p.db.QueryRow("SELECT source, entry_count, imported_at FROM price_book_import WHERE id = 1").
		Scan(&info.Source, &info.Entries, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return info, ErrEmpty
	}
	if err != nil {
		return info, err
	}
	info.ImportedAt, _ = time.Parse(time.RFC3339, at)
	return info, nil
}
