package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/tutoring-admin-api/internal/dto"
	"github.com/noah-isme/tutoring-admin-api/internal/models"
	appErrors "github.com/noah-isme/tutoring-admin-api/pkg/errors"
)

type paymentRepository interface {
	List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error)
	FindByID(ctx context.Context, id int64) (*models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
	Update(ctx context.Context, payment *models.Payment) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// PaymentService records classes purchased by students.
type PaymentService struct {
	repo   paymentRepository
	stats  statisticsInvalidator
	logger *zap.Logger
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(repo paymentRepository, stats statisticsInvalidator, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{repo: repo, stats: stats, logger: logger}
}

// List returns payments, optionally for a single student.
func (s *PaymentService) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error) {
	payments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, readError(err, "failed to list payments")
	}
	return payments, nil
}

// Get returns a payment.
func (s *PaymentService) Get(ctx context.Context, id int64) (*models.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Payment not found.")
		}
		return nil, readError(err, "failed to load payment")
	}
	return payment, nil
}

// Create stores a payment; num_classes defaults to one.
func (s *PaymentService) Create(ctx context.Context, req dto.PaymentRequest) (*models.Payment, error) {
	payment := paymentFromRequest(req)
	if err := s.repo.Create(ctx, payment); err != nil {
		s.logger.Warn("payment rejected", zap.Int64("student_id", req.StudentID), zap.Error(err))
		return nil, writeError(err, "failed to register payment")
	}
	s.invalidate(ctx)
	return payment, nil
}

// Update overwrites a payment and returns the values written.
func (s *PaymentService) Update(ctx context.Context, id int64, req dto.PaymentRequest) (*models.Payment, error) {
	payment := paymentFromRequest(req)
	payment.ID = id
	changed, err := s.repo.Update(ctx, payment)
	if err != nil {
		return nil, writeError(err, "failed to update payment")
	}
	if changed == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Payment not found for update.")
	}
	s.invalidate(ctx)
	return payment, nil
}

// Delete removes a payment.
func (s *PaymentService) Delete(ctx context.Context, id int64) (int64, error) {
	changed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, deleteError(err, "failed to delete payment")
	}
	if changed == 0 {
		return 0, appErrors.Clone(appErrors.ErrNotFound, "Payment not found for deletion.")
	}
	s.invalidate(ctx)
	return changed, nil
}

func (s *PaymentService) invalidate(ctx context.Context) {
	if s.stats != nil {
		s.stats.Invalidate(ctx)
	}
}

func paymentFromRequest(req dto.PaymentRequest) *models.Payment {
	return &models.Payment{
		StudentID:   req.StudentID,
		Amount:      req.Amount,
		NumClasses:  req.EffectiveNumClasses(),
		PaymentDate: req.PaymentDate,
	}
}
