package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutoring-admin-api/internal/models"
)

// Rows written before the text columns became NOT NULL may still hold NULLs.
const studentColumns = `id, COALESCE(name, '') AS name, COALESCE(phone, '') AS phone, COALESCE(email, '') AS email, COALESCE(level, '') AS level`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns every student in insertion order.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY id`
	students := make([]models.Student, 0)
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by ID. It returns sql.ErrNoRows when absent.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	query := r.db.Rebind(`SELECT ` + studentColumns + ` FROM students WHERE id = ?`)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a new student and assigns its generated ID.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := r.db.Rebind(`INSERT INTO students (name, phone, email, level) VALUES (?, ?, ?, ?) RETURNING id`)
	if err := r.db.QueryRowxContext(ctx, query, student.Name, student.Phone, student.Email, student.Level).Scan(&student.ID); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields and reports how many rows changed.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) (int64, error) {
	query := r.db.Rebind(`UPDATE students SET name = ?, phone = ?, email = ?, level = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, student.Name, student.Phone, student.Email, student.Level, student.ID)
	if err != nil {
		return 0, fmt.Errorf("update student: %w", err)
	}
	return rowsAffected(res, "update student")
}

// Delete removes a student and reports how many rows were deleted.
func (r *StudentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query := r.db.Rebind(`DELETE FROM students WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete student: %w", err)
	}
	return rowsAffected(res, "delete student")
}
