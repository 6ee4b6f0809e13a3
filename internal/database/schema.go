package database

import (
	"context"
	"database/sql"
)

// TimeLayout is the canonical format for every time column. Values
// are always UTC and compare correctly as strings, which keeps the
// sweep and active-view predicates identical across dialects.
const TimeLayout = "2006-01-02 15:04:05"

// DateLayout is the canonical format for date-only columns.
const DateLayout = "2006-01-02"

// mysqlSchema defines the six core relations plus the clerks table.
// The seat index lives inside the tickets DDL because MySQL has no
// CREATE INDEX IF NOT EXISTS.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS stations (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(120) NOT NULL UNIQUE,
		created_at VARCHAR(19) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS coaches (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		code VARCHAR(16) NOT NULL UNIQUE,
		created_at VARCHAR(19) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS trains (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(120) NOT NULL UNIQUE,
		station1_id BIGINT UNSIGNED NOT NULL,
		station2_id BIGINT UNSIGNED NOT NULL,
		created_at VARCHAR(19) NOT NULL,
		FOREIGN KEY (station1_id) REFERENCES stations(id),
		FOREIGN KEY (station2_id) REFERENCES stations(id)
	)`,
	`CREATE TABLE IF NOT EXISTS route_stops (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		train_id BIGINT UNSIGNED NOT NULL,
		station_id BIGINT UNSIGNED NOT NULL,
		position INT UNSIGNED NOT NULL,
		UNIQUE KEY uq_route_stop (train_id, station_id),
		UNIQUE KEY uq_route_position (train_id, position),
		FOREIGN KEY (train_id) REFERENCES trains(id),
		FOREIGN KEY (station_id) REFERENCES stations(id)
	)`,
	`CREATE TABLE IF NOT EXISTS passengers (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		first_name VARCHAR(120) NOT NULL,
		last_name VARCHAR(120) NULL,
		date_of_birth VARCHAR(10) NOT NULL,
		email VARCHAR(254) NULL,
		phone CHAR(10) NOT NULL,
		created_at VARCHAR(19) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		train_id BIGINT UNSIGNED NOT NULL,
		passenger_id BIGINT UNSIGNED NOT NULL,
		from_station_id BIGINT UNSIGNED NOT NULL,
		to_station_id BIGINT UNSIGNED NOT NULL,
		departs_at VARCHAR(19) NOT NULL,
		arrives_at VARCHAR(19) NULL,
		coach_id BIGINT UNSIGNED NOT NULL,
		seat_number INT UNSIGNED NOT NULL,
		fare_cents INT UNSIGNED NOT NULL,
		created_at VARCHAR(19) NOT NULL,
		KEY idx_ticket_seat (train_id, coach_id, seat_number),
		FOREIGN KEY (train_id) REFERENCES trains(id),
		FOREIGN KEY (passenger_id) REFERENCES passengers(id),
		FOREIGN KEY (from_station_id) REFERENCES stations(id),
		FOREIGN KEY (to_station_id) REFERENCES stations(id),
		FOREIGN KEY (coach_id) REFERENCES coaches(id)
	)`,
	`CREATE TABLE IF NOT EXISTS clerks (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(254) NOT NULL UNIQUE,
		password_hash VARCHAR(100) NOT NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at VARCHAR(19) NOT NULL
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS stations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS coaches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		code TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS trains (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		station1_id INTEGER NOT NULL REFERENCES stations(id),
		station2_id INTEGER NOT NULL REFERENCES stations(id),
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS route_stops (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		train_id INTEGER NOT NULL REFERENCES trains(id),
		station_id INTEGER NOT NULL REFERENCES stations(id),
		position INTEGER NOT NULL,
		UNIQUE (train_id, station_id),
		UNIQUE (train_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS passengers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL,
		last_name TEXT NULL,
		date_of_birth TEXT NOT NULL,
		email TEXT NULL,
		phone TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		train_id INTEGER NOT NULL REFERENCES trains(id),
		passenger_id INTEGER NOT NULL REFERENCES passengers(id),
		from_station_id INTEGER NOT NULL REFERENCES stations(id),
		to_station_id INTEGER NOT NULL REFERENCES stations(id),
		departs_at TEXT NOT NULL,
		arrives_at TEXT NULL,
		coach_id INTEGER NOT NULL REFERENCES coaches(id),
		seat_number INTEGER NOT NULL,
		fare_cents INTEGER NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ticket_seat ON tickets (train_id, coach_id, seat_number)`,
	`CREATE TABLE IF NOT EXISTS clerks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	)`,
}

// EnsureSchema applies the DDL for the given dialect. Every statement
// is idempotent, so calling it on an already-initialized database is
// a no-op. The active-passenger and active-ticket views are pure
// queries in the engine, never materialized here.
func EnsureSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	stmts := sqliteSchema
	if dialect == MySQL {
		stmts = mysqlSchema
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
