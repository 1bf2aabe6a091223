package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS students (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		level TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS classes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day TEXT NOT NULL DEFAULT '',
		time TEXT NOT NULL DEFAULT '',
		level TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id INTEGER NOT NULL,
		amount REAL NOT NULL DEFAULT 0,
		num_classes INTEGER NOT NULL DEFAULT 1,
		payment_date TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (student_id) REFERENCES students(id)
	)`,
	`CREATE TABLE IF NOT EXISTS consumed_classes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id INTEGER NOT NULL,
		class_id INTEGER NOT NULL,
		date TEXT NOT NULL DEFAULT '',
		time TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (student_id) REFERENCES students(id),
		FOREIGN KEY (class_id) REFERENCES classes(id)
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS students (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		level TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS classes (
		id BIGSERIAL PRIMARY KEY,
		day TEXT NOT NULL DEFAULT '',
		time TEXT NOT NULL DEFAULT '',
		level TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id BIGSERIAL PRIMARY KEY,
		student_id BIGINT NOT NULL REFERENCES students(id),
		amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		num_classes INTEGER NOT NULL DEFAULT 1,
		payment_date TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS consumed_classes (
		id BIGSERIAL PRIMARY KEY,
		student_id BIGINT NOT NULL REFERENCES students(id),
		class_id BIGINT NOT NULL REFERENCES classes(id),
		date TEXT NOT NULL DEFAULT '',
		time TEXT NOT NULL DEFAULT ''
	)`,
}

// EnsureSchema creates the application tables when they are absent and
// upgrades a users table left with plaintext passwords. It is safe to run on
// every start.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	statements := sqliteSchema
	if db.DriverName() == "postgres" {
		statements = postgresSchema
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return upgradeLegacyUsers(ctx, db, bcrypt.DefaultCost)
}
