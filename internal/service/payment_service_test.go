package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutoring-admin-api/internal/dto"
	"github.com/noah-isme/tutoring-admin-api/internal/models"
	appErrors "github.com/noah-isme/tutoring-admin-api/pkg/errors"
)

type mockPaymentRepo struct {
	created    []models.Payment
	updated    []models.Payment
	lastFilter models.PaymentFilter
	createErr  error
	exists     bool
}

func (m *mockPaymentRepo) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error) {
	m.lastFilter = filter
	return []models.Payment{}, nil
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, id int64) (*models.Payment, error) {
	return nil, sql.ErrNoRows
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	if m.createErr != nil {
		return m.createErr
	}
	payment.ID = int64(len(m.created) + 1)
	m.created = append(m.created, *payment)
	return nil
}

func (m *mockPaymentRepo) Update(ctx context.Context, payment *models.Payment) (int64, error) {
	if !m.exists {
		return 0, nil
	}
	m.updated = append(m.updated, *payment)
	return 1, nil
}

func (m *mockPaymentRepo) Delete(ctx context.Context, id int64) (int64, error) {
	return 0, nil
}

func intPtr(v int) *int { return &v }

func TestPaymentServiceCreateDefaultsNumClasses(t *testing.T) {
	cases := map[string]*int{
		"omitted": nil,
		"zero":    intPtr(0),
	}
	for name, numClasses := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &mockPaymentRepo{}
			svc := NewPaymentService(repo, nil, nil)

			payment, err := svc.Create(context.Background(), dto.PaymentRequest{StudentID: 1, Amount: 50, NumClasses: numClasses, PaymentDate: "2024-01-01"})
			require.NoError(t, err)
			assert.Equal(t, models.DefaultNumClasses, payment.NumClasses)
			assert.Equal(t, models.DefaultNumClasses, repo.created[0].NumClasses)
		})
	}
}

func TestPaymentServiceCreateKeepsExplicitNumClasses(t *testing.T) {
	repo := &mockPaymentRepo{}
	stats := &countingInvalidator{}
	svc := NewPaymentService(repo, stats, nil)

	payment, err := svc.Create(context.Background(), dto.PaymentRequest{StudentID: 1, Amount: 200, NumClasses: intPtr(8)})
	require.NoError(t, err)
	assert.Equal(t, 8, payment.NumClasses)
	assert.Equal(t, 1, stats.calls)
}

func TestPaymentServiceCreateUnknownStudent(t *testing.T) {
	repo := &mockPaymentRepo{createErr: &pq.Error{Code: "23503", Message: "insert or update on table \"payments\" violates foreign key constraint"}}
	svc := NewPaymentService(repo, nil, nil)

	_, err := svc.Create(context.Background(), dto.PaymentRequest{StudentID: 999})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.Status(err))
}

func TestPaymentServiceUpdateDefaultsNumClasses(t *testing.T) {
	repo := &mockPaymentRepo{exists: true}
	svc := NewPaymentService(repo, nil, nil)

	payment, err := svc.Update(context.Background(), 3, dto.PaymentRequest{StudentID: 1, Amount: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), payment.ID)
	assert.Equal(t, 1, repo.updated[0].NumClasses)
}

func TestPaymentServiceUpdateMissing(t *testing.T) {
	svc := NewPaymentService(&mockPaymentRepo{}, nil, nil)

	_, err := svc.Update(context.Background(), 3, dto.PaymentRequest{StudentID: 1})
	assert.Equal(t, http.StatusNotFound, appErrors.Status(err))
}

func TestPaymentServiceListPassesFilter(t *testing.T) {
	repo := &mockPaymentRepo{}
	svc := NewPaymentService(repo, nil, nil)
	studentID := int64(4)

	_, err := svc.List(context.Background(), models.PaymentFilter{StudentID: &studentID})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.StudentID)
	assert.Equal(t, studentID, *repo.lastFilter.StudentID)
}
