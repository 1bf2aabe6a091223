package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutoring-admin-api/internal/models"
)

const paymentColumns = `id, COALESCE(student_id, 0) AS student_id, COALESCE(amount, 0) AS amount, COALESCE(num_classes, 1) AS num_classes, COALESCE(payment_date, '') AS payment_date`

// PaymentRepository persists student payments.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs the repository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// List returns payments, optionally restricted to one student.
func (r *PaymentRepository) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments`
	var args []interface{}
	if filter.StudentID != nil {
		query += ` WHERE student_id = ?`
		args = append(args, *filter.StudentID)
	}
	query += ` ORDER BY id`

	payments := make([]models.Payment, 0)
	if err := r.db.SelectContext(ctx, &payments, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// FindByID returns a payment or sql.ErrNoRows.
func (r *PaymentRepository) FindByID(ctx context.Context, id int64) (*models.Payment, error) {
	query := r.db.Rebind(`SELECT ` + paymentColumns + ` FROM payments WHERE id = ?`)
	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, query, id); err != nil {
		return nil, err
	}
	return &payment, nil
}

// Create stores a payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	query := r.db.Rebind(`INSERT INTO payments (student_id, amount, num_classes, payment_date) VALUES (?, ?, ?, ?) RETURNING id`)
	if err := r.db.QueryRowxContext(ctx, query, payment.StudentID, payment.Amount, payment.NumClasses, payment.PaymentDate).Scan(&payment.ID); err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// Update overwrites a payment.
func (r *PaymentRepository) Update(ctx context.Context, payment *models.Payment) (int64, error) {
	query := r.db.Rebind(`UPDATE payments SET student_id = ?, amount = ?, num_classes = ?, payment_date = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, payment.StudentID, payment.Amount, payment.NumClasses, payment.PaymentDate, payment.ID)
	if err != nil {
		return 0, fmt.Errorf("update payment: %w", err)
	}
	return rowsAffected(res, "update payment")
}

// Delete removes a payment.
func (r *PaymentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query := r.db.Rebind(`DELETE FROM payments WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete payment: %w", err)
	}
	return rowsAffected(res, "delete payment")
}
