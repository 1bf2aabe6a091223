package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

const legacyPasswordColumn = "password"

// upgradeLegacyUsers converts a users table that still stores plaintext
// passwords into the bcrypt password_hash layout. Tables already in the current
// layout are left untouched.
func upgradeLegacyUsers(ctx context.Context, db *sqlx.DB, cost int) error {
	columns, err := tableColumns(ctx, db, "users")
	if err != nil {
		return err
	}
	if !columns[legacyPasswordColumn] {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upgrade users: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if !columns["password_hash"] {
		if _, err := tx.ExecContext(ctx, `ALTER TABLE users ADD COLUMN password_hash TEXT NOT NULL DEFAULT ''`); err != nil {
			return fmt.Errorf("upgrade users: add password_hash: %w", err)
		}
	}

	type legacyUser struct {
		ID       int64          `db:"id"`
		Password sql.NullString `db:"password"`
	}
	var users []legacyUser
	if err := tx.SelectContext(ctx, &users, `SELECT id, password FROM users WHERE password IS NOT NULL`); err != nil {
		return fmt.Errorf("upgrade users: read passwords: %w", err)
	}

	update := tx.Rebind(`UPDATE users SET password_hash = ? WHERE id = ?`)
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password.String), cost)
		if err != nil {
			return fmt.Errorf("upgrade users: hash password for user %d: %w", u.ID, err)
		}
		if _, err := tx.ExecContext(ctx, update, string(hash), u.ID); err != nil {
			return fmt.Errorf("upgrade users: store hash for user %d: %w", u.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `ALTER TABLE users DROP COLUMN password`); err != nil {
		return fmt.Errorf("upgrade users: drop password: %w", err)
	}

	return tx.Commit()
}

// tableColumns reports the column names of table using an empty result set,
// which works the same way on every supported driver.
func tableColumns(ctx context.Context, db *sqlx.DB, table string) (map[string]bool, error) {
	rows, err := db.QueryxContext(ctx, fmt.Sprintf(`SELECT * FROM %s WHERE 1 = 0`, table))
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", table, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", table, err)
	}
	columns := make(map[string]bool, len(names))
	for _, name := range names {
		columns[name] = true
	}
	return columns, nil
}
