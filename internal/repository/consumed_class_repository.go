package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutoring-admin-api/internal/models"
)

const consumedClassColumns = `id, COALESCE(student_id, 0) AS student_id, COALESCE(class_id, 0) AS class_id, COALESCE(date, '') AS date, COALESCE(time, '') AS time`

// ConsumedClassRepository stores attended classes.
type ConsumedClassRepository struct {
	db *sqlx.DB
}

// NewConsumedClassRepository constructs the repository.
func NewConsumedClassRepository(db *sqlx.DB) *ConsumedClassRepository {
	return &ConsumedClassRepository{db: db}
}

// List returns consumed classes, optionally restricted to one student.
func (r *ConsumedClassRepository) List(ctx context.Context, filter models.ConsumedClassFilter) ([]models.ConsumedClass, error) {
	query := `SELECT ` + consumedClassColumns + ` FROM consumed_classes`
	var args []interface{}
	if filter.StudentID != nil {
		query += ` WHERE student_id = ?`
		args = append(args, *filter.StudentID)
	}
	query += ` ORDER BY id`

	records := make([]models.ConsumedClass, 0)
	if err := r.db.SelectContext(ctx, &records, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list consumed classes: %w", err)
	}
	return records, nil
}

// FindByID returns a consumed class or sql.ErrNoRows.
func (r *ConsumedClassRepository) FindByID(ctx context.Context, id int64) (*models.ConsumedClass, error) {
	query := r.db.Rebind(`SELECT ` + consumedClassColumns + ` FROM consumed_classes WHERE id = ?`)
	var record models.ConsumedClass
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts one consumed class. Each call is its own statement; callers
// batching several inserts get no transactional grouping.
func (r *ConsumedClassRepository) Create(ctx context.Context, record *models.ConsumedClass) error {
	query := r.db.Rebind(`INSERT INTO consumed_classes (student_id, class_id, date, time) VALUES (?, ?, ?, ?) RETURNING id`)
	if err := r.db.QueryRowxContext(ctx, query, record.StudentID, record.ClassID, record.Date, record.Time).Scan(&record.ID); err != nil {
		return fmt.Errorf("create consumed class: %w", err)
	}
	return nil
}

// Delete removes a consumed class.
func (r *ConsumedClassRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query := r.db.Rebind(`DELETE FROM consumed_classes WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete consumed class: %w", err)
	}
	return rowsAffected(res, "delete consumed class")
}
