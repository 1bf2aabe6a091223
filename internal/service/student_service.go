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

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// statisticsInvalidator drops cached aggregates after writes that change them.
type statisticsInvalidator interface {
	Invalidate(ctx context.Context)
}

// StudentService handles student use-cases.
type StudentService struct {
	repo   studentRepository
	stats  statisticsInvalidator
	logger *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, stats statisticsInvalidator, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, stats: stats, logger: logger}
}

// List returns every student.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, readError(err, "failed to list students")
	}
	return students, nil
}

// Get returns a single student.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Student not found.")
		}
		return nil, readError(err, "failed to load student")
	}
	return student, nil
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req dto.StudentRequest) (*models.Student, error) {
	student := &models.Student{Name: req.Name, Phone: req.Phone, Email: req.Email, Level: req.Level}
	if err := s.repo.Create(ctx, student); err != nil {
		s.logger.Warn("student rejected", zap.String("name", req.Name), zap.Error(err))
		return nil, writeError(err, "failed to create student")
	}
	s.invalidate(ctx)
	return student, nil
}

// Update overwrites a student's fields.
func (s *StudentService) Update(ctx context.Context, id int64, req dto.StudentRequest) error {
	student := &models.Student{ID: id, Name: req.Name, Phone: req.Phone, Email: req.Email, Level: req.Level}
	changed, err := s.repo.Update(ctx, student)
	if err != nil {
		s.logger.Warn("student update rejected", zap.Int64("student_id", id), zap.Error(err))
		return writeError(err, "failed to update student")
	}
	if changed == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "Student not found for update.")
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes a student. Students still referenced by payments or consumed
// classes are kept and a conflict is returned.
func (s *StudentService) Delete(ctx context.Context, id int64) (int64, error) {
	changed, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Warn("student delete rejected", zap.Int64("student_id", id), zap.Error(err))
		return 0, deleteError(err, "student still has payments or consumed classes")
	}
	if changed == 0 {
		return 0, appErrors.Clone(appErrors.ErrNotFound, "Student not found for deletion.")
	}
	s.invalidate(ctx)
	return changed, nil
}

func (s *StudentService) invalidate(ctx context.Context) {
	if s.stats != nil {
		s.stats.Invalidate(ctx)
	}
}
