// Package sqlite implements the repository ports over SQLite using sqlx
// and the pure-Go modernc driver.
package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Connect opens the database, limits the pool to a single connection
// (SQLite is single-writer) and enables foreign keys.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite connect: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite pragma: %w", err)
	}
	return db, nil
}

// Migrate creates the schema when it does not exist yet.
func Migrate(db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			salt TEXT NOT NULL,
			role_code INTEGER NOT NULL,
			email TEXT NOT NULL,
			next_password_change TIMESTAMP NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS drugs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			in_stock INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ordered_by INTEGER NOT NULL,
			delivered INTEGER NOT NULL,
			ordered_at TIMESTAMP NOT NULL,
			delivered_at TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS order_details (
			order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			drug_id INTEGER NOT NULL,
			quantity INTEGER NOT NULL,
			PRIMARY KEY (order_id, drug_id)
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("sqlite migrate: %w", err)
		}
	}
	return nil
}

// resetSequence rewinds the AUTOINCREMENT counter for a table. SQLite
// only creates the sqlite_sequence row after the first insert, so a
// missing row is not an error.
func resetSequence(db *sqlx.DB, table string) error {
	_, err := db.Exec(`DELETE FROM sqlite_sequence WHERE name = ?;`, table)
	return err
}
