package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tutoring-admin-api/internal/dto"
	"github.com/noah-isme/tutoring-admin-api/internal/models"
	appErrors "github.com/noah-isme/tutoring-admin-api/pkg/errors"
)

type attendanceWriter interface {
	Create(ctx context.Context, record *models.ConsumedClass) error
}

// AttendanceService records one class occurrence for a list of students.
type AttendanceService struct {
	records   attendanceWriter
	stats     statisticsInvalidator
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the service.
func NewAttendanceService(records attendanceWriter, stats statisticsInvalidator, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{records: records, stats: stats, metrics: metrics, validator: validate, logger: logger}
}

// Register inserts one consumed class per student. Inserts are independent:
// a rejected student does not stop or undo the others. Every insert has
// returned before the result is built, and failures keep input order.
func (s *AttendanceService) Register(ctx context.Context, req dto.AttendanceRequest) (*dto.AttendanceResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "class_id, class_date and a non-empty student_ids list are required")
	}

	result := &dto.AttendanceResult{}
	for _, studentID := range req.StudentIDs {
		record := &models.ConsumedClass{
			StudentID: studentID,
			ClassID:   req.ClassID,
			Date:      req.ClassDate,
			Time:      req.ClassTime,
		}
		if err := s.records.Create(ctx, record); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.AttendanceFailure{StudentID: studentID, Error: err.Error()})
			s.logger.Warn("attendance insert failed", zap.Int64("student_id", studentID), zap.Int64("class_id", req.ClassID), zap.Error(err))
			continue
		}
		result.Inserted++
	}

	s.metrics.RecordAttendance(result.Inserted, result.Failed)
	if result.Inserted > 0 && s.stats != nil {
		s.stats.Invalidate(ctx)
	}
	return result, nil
}

// Summary renders the human readable outcome of a batch.
func (s *AttendanceService) Summary(result *dto.AttendanceResult) string {
	if result.Partial() {
		return fmt.Sprintf("%d attendances recorded successfully, %d with errors.", result.Inserted, result.Failed)
	}
	return fmt.Sprintf("%d attendances recorded successfully!", result.Inserted)
}
