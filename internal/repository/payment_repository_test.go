package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutoring-admin-api/internal/models"
)

var paymentRowColumns = []string{"id", "student_id", "amount", "num_classes", "payment_date"}

func TestPaymentRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + paymentColumns + " FROM payments ORDER BY id")).
		WithoutArgs().
		WillReturnRows(sqlmock.NewRows(paymentRowColumns).AddRow(1, 1, 100.5, 4, "2024-01-01").AddRow(2, 2, 50, 2, "2024-01-02"))

	payments, err := repo.List(context.Background(), models.PaymentFilter{})
	require.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.Equal(t, 100.5, payments[0].Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	studentID := int64(2)
	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE student_id = ? ORDER BY id")).
		WithArgs(studentID).
		WillReturnRows(sqlmock.NewRows(paymentRowColumns).AddRow(2, 2, 50, 2, "2024-01-02"))

	payments, err := repo.List(context.Background(), models.PaymentFilter{StudentID: &studentID})
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, studentID, payments[0].StudentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments (student_id, amount, num_classes, payment_date) VALUES (?, ?, ?, ?) RETURNING id")).
		WithArgs(int64(1), 80.0, 1, "2024-02-01").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	payment := &models.Payment{StudentID: 1, Amount: 80, NumClasses: 1, PaymentDate: "2024-02-01"}
	require.NoError(t, repo.Create(context.Background(), payment))
	assert.Equal(t, int64(11), payment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments SET student_id = ?, amount = ?, num_classes = ?, payment_date = ? WHERE id = ?")).
		WithArgs(int64(1), 80.0, 3, "2024-02-01", int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.Update(context.Background(), &models.Payment{ID: 11, StudentID: 1, Amount: 80, NumClasses: 3, PaymentDate: "2024-02-01"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
