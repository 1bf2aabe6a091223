package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutoring-admin-api/internal/models"
)

const classColumns = `id, COALESCE(day, '') AS day, COALESCE(time, '') AS time, COALESCE(level, '') AS level`

// ClassRepository handles persistence for class slots.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository instantiates a ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns all class slots.
func (r *ClassRepository) List(ctx context.Context) ([]models.ClassSlot, error) {
	query := `SELECT ` + classColumns + ` FROM classes ORDER BY id`
	classes := make([]models.ClassSlot, 0)
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// FindByID returns a class slot or sql.ErrNoRows.
func (r *ClassRepository) FindByID(ctx context.Context, id int64) (*models.ClassSlot, error) {
	query := r.db.Rebind(`SELECT ` + classColumns + ` FROM classes WHERE id = ?`)
	var class models.ClassSlot
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// Create inserts a class slot.
func (r *ClassRepository) Create(ctx context.Context, class *models.ClassSlot) error {
	query := r.db.Rebind(`INSERT INTO classes (day, time, level) VALUES (?, ?, ?) RETURNING id`)
	if err := r.db.QueryRowxContext(ctx, query, class.Day, class.Time, class.Level).Scan(&class.ID); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// Update modifies a class slot.
func (r *ClassRepository) Update(ctx context.Context, class *models.ClassSlot) (int64, error) {
	query := r.db.Rebind(`UPDATE classes SET day = ?, time = ?, level = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, class.Day, class.Time, class.Level, class.ID)
	if err != nil {
		return 0, fmt.Errorf("update class: %w", err)
	}
	return rowsAffected(res, "update class")
}

// Delete removes a class slot.
func (r *ClassRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query := r.db.Rebind(`DELETE FROM classes WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete class: %w", err)
	}
	return rowsAffected(res, "delete class")
}
