package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutoring-admin-api/internal/models"
	"github.com/noah-isme/tutoring-admin-api/internal/service"
	appErrors "github.com/noah-isme/tutoring-admin-api/pkg/errors"
	"github.com/noah-isme/tutoring-admin-api/pkg/export"
	"github.com/noah-isme/tutoring-admin-api/pkg/response"
)

const msgStatistics = "Statistics retrieved successfully!"

type statisticsService interface {
	Students(ctx context.Context) ([]models.StudentStatistics, bool, error)
	ConsumedHistory(ctx context.Context, studentID int64) ([]models.ConsumedHistoryEntry, error)
}

type statisticsExporter interface {
	Statistics(ctx context.Context, format export.Format) (*service.ExportFile, error)
}

// StatisticsHandler exposes balance reports.
type StatisticsHandler struct {
	stats    statisticsService
	exporter statisticsExporter
}

// NewStatisticsHandler constructs StatisticsHandler.
func NewStatisticsHandler(stats statisticsService, exporter statisticsExporter) *StatisticsHandler {
	return &StatisticsHandler{stats: stats, exporter: exporter}
}

// Students godoc
// @Summary Per-student payment and consumption balance
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.ErrorBody
// @Router /statistics [get]
func (h *StatisticsHandler) Students(c *gin.Context) {
	rows, hit, err := h.stats.Students(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if hit {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	response.OK(c, msgStatistics, rows)
}

// ConsumedHistory godoc
// @Summary Consumed classes of a student, most recent first
// @Tags Statistics
// @Produce json
// @Param student_id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.ErrorBody
// @Router /statistics/consumed-history/{student_id} [get]
func (h *StatisticsHandler) ConsumedHistory(c *gin.Context) {
	studentID, err := parseID(c, "student_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.stats.ConsumedHistory(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, msgSuccess, rows)
}

// Export godoc
// @Summary Download the statistics table
// @Tags Statistics
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Router /statistics/export [get]
func (h *StatisticsHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be csv or pdf"))
		return
	}
	file, err := h.exporter.Statistics(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
