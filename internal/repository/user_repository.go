package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutoring-admin-api/internal/models"
)

// UserRepository provides database access for admin accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername returns a user by exact username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := r.db.Rebind(`SELECT id, username, password_hash FROM users WHERE username = ? LIMIT 1`)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &user, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := r.db.Rebind(`INSERT INTO users (username, password_hash) VALUES (?, ?) RETURNING id`)
	if err := r.db.QueryRowxContext(ctx, query, user.Username, user.PasswordHash).Scan(&user.ID); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
