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

type classRepository interface {
	List(ctx context.Context) ([]models.ClassSlot, error)
	FindByID(ctx context.Context, id int64) (*models.ClassSlot, error)
	Create(ctx context.Context, class *models.ClassSlot) error
	Update(ctx context.Context, class *models.ClassSlot) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// ClassService manages the class slot timetable.
type ClassService struct {
	repo   classRepository
	logger *zap.Logger
}

// NewClassService creates a ClassService.
func NewClassService(repo classRepository, logger *zap.Logger) *ClassService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, logger: logger}
}

// List returns all class slots.
func (s *ClassService) List(ctx context.Context) ([]models.ClassSlot, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, readError(err, "failed to list classes")
	}
	return classes, nil
}

// Get returns a class slot.
func (s *ClassService) Get(ctx context.Context, id int64) (*models.ClassSlot, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Class not found.")
		}
		return nil, readError(err, "failed to load class")
	}
	return class, nil
}

// Create adds a class slot.
func (s *ClassService) Create(ctx context.Context, req dto.ClassSlotRequest) (*models.ClassSlot, error) {
	class := &models.ClassSlot{Day: req.Day, Time: req.Time, Level: req.Level}
	if err := s.repo.Create(ctx, class); err != nil {
		s.logger.Warn("class rejected", zap.String("day", req.Day), zap.String("time", req.Time), zap.Error(err))
		return nil, writeError(err, "failed to create class")
	}
	return class, nil
}

// Update overwrites a class slot.
func (s *ClassService) Update(ctx context.Context, id int64, req dto.ClassSlotRequest) error {
	changed, err := s.repo.Update(ctx, &models.ClassSlot{ID: id, Day: req.Day, Time: req.Time, Level: req.Level})
	if err != nil {
		s.logger.Warn("class update rejected", zap.Int64("class_id", id), zap.Error(err))
		return writeError(err, "failed to update class")
	}
	if changed == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "Class not found for update.")
	}
	return nil
}

// Delete removes a class slot that no consumed class references.
func (s *ClassService) Delete(ctx context.Context, id int64) (int64, error) {
	changed, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Warn("class delete rejected", zap.Int64("class_id", id), zap.Error(err))
		return 0, deleteError(err, "class still has consumed classes")
	}
	if changed == 0 {
		return 0, appErrors.Clone(appErrors.ErrNotFound, "Class not found for deletion.")
	}
	return changed, nil
}
