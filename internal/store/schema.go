package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS price_book (
    catalog_key          TEXT PRIMARY KEY,
    position             INTEGER NOT NULL,
    description          TEXT NOT NULL,
    unit                 TEXT NOT NULL,
    unit_price           TEXT NOT NULL,
    price_unavailable    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS price_book_import (
    id                   INTEGER PRIMARY KEY CHECK (id = 1),
    source               TEXT NOT NULL,
    entry_count          INTEGER NOT NULL,
    imported_at          TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_price_book_position ON price_book(position);
`
