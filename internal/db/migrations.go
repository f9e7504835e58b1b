package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of idempotent DDL statements.
// Child tables reference listings without ON DELETE CASCADE; removing a
// listing's images and messages is done by the listing service.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT    NOT NULL,
		email         TEXT    NOT NULL UNIQUE COLLATE NOCASE,
		phone         TEXT    NOT NULL DEFAULT '',
		password_hash TEXT    NOT NULL,
		role          TEXT    NOT NULL CHECK (role IN ('ADMIN', 'REALTOR', 'BUYER')),
		created_at    DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS listings (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		address       TEXT    NOT NULL,
		city          TEXT    NOT NULL,
		price         REAL    NOT NULL CHECK (price >= 0),
		land_size     REAL    NOT NULL CHECK (land_size >= 0),
		bedrooms      INTEGER NOT NULL CHECK (bedrooms >= 0),
		bathrooms     REAL    NOT NULL CHECK (bathrooms >= 0),
		property_type TEXT    NOT NULL CHECK (property_type IN ('RESIDENTIAL', 'CONDO')),
		realtor_id    INTEGER NOT NULL REFERENCES users(id),
		created_at    DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_city ON listings(city)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_price ON listings(price)`,
	`CREATE TABLE IF NOT EXISTS images (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		url        TEXT    NOT NULL CHECK (url <> ''),
		listing_id INTEGER NOT NULL REFERENCES listings(id),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_images_listing ON images(listing_id)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		text       TEXT    NOT NULL CHECK (text <> ''),
		listing_id INTEGER NOT NULL REFERENCES listings(id),
		realtor_id INTEGER NOT NULL REFERENCES users(id),
		buyer_id   INTEGER NOT NULL REFERENCES users(id),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_listing ON messages(listing_id)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
