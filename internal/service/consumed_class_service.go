package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/noah-isme/tutoring-admin-api/internal/dto"
	"github.com/noah-isme/tutoring-admin-api/internal/models"
	appErrors "github.com/noah-isme/tutoring-admin-api/pkg/errors"
)

type consumedClassRepository interface {
	List(ctx context.Context, filter models.ConsumedClassFilter) ([]models.ConsumedClass, error)
	FindByID(ctx context.Context, id int64) (*models.ConsumedClass, error)
	Create(ctx context.Context, record *models.ConsumedClass) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// ConsumedClassService manages attended class records. Records are only ever
// appended or deleted.
type ConsumedClassService struct {
	repo  consumedClassRepository
	stats statisticsInvalidator
}

// NewConsumedClassService constructs the service.
func NewConsumedClassService(repo consumedClassRepository, stats statisticsInvalidator) *ConsumedClassService {
	return &ConsumedClassService{repo: repo, stats: stats}
}

// List returns consumed classes, optionally for one student.
func (s *ConsumedClassService) List(ctx context.Context, filter models.ConsumedClassFilter) ([]models.ConsumedClass, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, readError(err, "failed to list consumed classes")
	}
	return records, nil
}

// Get returns one consumed class.
func (s *ConsumedClassService) Get(ctx context.Context, id int64) (*models.ConsumedClass, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Consumed class not found.")
		}
		return nil, readError(err, "failed to load consumed class")
	}
	return record, nil
}

// Create records an attended class.
func (s *ConsumedClassService) Create(ctx context.Context, req dto.ConsumedClassRequest) (*models.ConsumedClass, error) {
	record := &models.ConsumedClass{StudentID: req.StudentID, ClassID: req.ClassID, Date: req.Date, Time: req.Time}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, writeError(err, "failed to register consumed class")
	}
	s.invalidate(ctx)
	return record, nil
}

// Delete removes a consumed class.
func (s *ConsumedClassService) Delete(ctx context.Context, id int64) (int64, error) {
	changed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, deleteError(err, "failed to delete consumed class")
	}
	if changed == 0 {
		return 0, appErrors.Clone(appErrors.ErrNotFound, "Consumed class not found for deletion.")
	}
	s.invalidate(ctx)
	return changed, nil
}

func (s *ConsumedClassService) invalidate(ctx context.Context) {
	if s.stats != nil {
		s.stats.Invalidate(ctx)
	}
}
