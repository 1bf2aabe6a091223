package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/noah-isme/tutoring-admin-api/internal/models"
	"github.com/noah-isme/tutoring-admin-api/pkg/export"
)

type statisticsSource interface {
	Students(ctx context.Context) ([]models.StudentStatistics, bool, error)
}

// ExportService renders the student statistics as downloadable files.
type ExportService struct {
	stats    statisticsSource
	renderer *export.Renderer
	now      func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(stats statisticsSource, renderer *export.Renderer) *ExportService {
	if renderer == nil {
		renderer = export.NewRenderer()
	}
	return &ExportService{stats: stats, renderer: renderer, now: time.Now}
}

// ExportFile is a rendered document ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

var statisticsHeaders = []string{
	"student_id",
	"student_name",
	"total_paid_amount",
	"total_paid_classes",
	"total_payments",
	"total_consumed_classes",
	"balance_classes",
}

// Statistics renders the /statistics dataset in the requested format.
func (s *ExportService) Statistics(ctx context.Context, format export.Format) (*ExportFile, error) {
	rows, _, err := s.stats.Students(ctx)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{Headers: statisticsHeaders, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		data.Rows = append(data.Rows, map[string]string{
			"student_id":             strconv.FormatInt(row.StudentID, 10),
			"student_name":           row.StudentName,
			"total_paid_amount":      strconv.FormatFloat(row.TotalPaidAmount, 'f', 2, 64),
			"total_paid_classes":     strconv.FormatInt(row.TotalPaidClasses, 10),
			"total_payments":         strconv.FormatInt(row.TotalPayments, 10),
			"total_consumed_classes": strconv.FormatInt(row.TotalConsumedClasses, 10),
			"balance_classes":        strconv.FormatInt(row.BalanceClasses, 10),
		})
	}

	generated := s.now().UTC()
	body, err := s.renderer.Render(format, data, "Student statistics "+generated.Format("2006-01-02"))
	if err != nil {
		return nil, readError(err, "failed to render statistics export")
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("statistics-%s.%s", generated.Format("20060102"), format),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}
