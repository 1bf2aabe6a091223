package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutoring-admin-api/internal/models"
	"github.com/noah-isme/tutoring-admin-api/internal/service"
	"github.com/noah-isme/tutoring-admin-api/pkg/export"
)

type fakeStatisticsSrv struct {
	rows      []models.StudentStatistics
	hit       bool
	studentID int64
}

func (f *fakeStatisticsSrv) Students(context.Context) ([]models.StudentStatistics, bool, error) {
	return f.rows, f.hit, nil
}

func (f *fakeStatisticsSrv) ConsumedHistory(_ context.Context, studentID int64) ([]models.ConsumedHistoryEntry, error) {
	f.studentID = studentID
	return []models.ConsumedHistoryEntry{{Date: "2024-01-02"}, {Date: "2024-01-01"}}, nil
}

type fakeExporter struct {
	format export.Format
}

func (f *fakeExporter) Statistics(_ context.Context, format export.Format) (*service.ExportFile, error) {
	f.format = format
	return &service.ExportFile{Filename: "statistics-20240101." + string(format), ContentType: format.ContentType(), Body: []byte("student_id\n")}, nil
}

func TestStatisticsHandlerStudents(t *testing.T) {
	handler := NewStatisticsHandler(&fakeStatisticsSrv{
		rows: []models.StudentStatistics{{StudentID: 1, StudentName: "Ana", BalanceClasses: 3}},
		hit:  true,
	}, &fakeExporter{})

	c, rec := newTestContext(http.MethodGet, "/statistics", nil)
	handler.Students(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	body := decodeBody(t, rec)
	assert.Equal(t, msgStatistics, body["message"])
	rows := body["data"].([]interface{})
	assert.Equal(t, float64(3), rows[0].(map[string]interface{})["balance_classes"])
}

func TestStatisticsHandlerConsumedHistory(t *testing.T) {
	srv := &fakeStatisticsSrv{}
	handler := NewStatisticsHandler(srv, &fakeExporter{})

	c, rec := newTestContext(http.MethodGet, "/statistics/consumed-history/9", nil, gin.Param{Key: "student_id", Value: "9"})
	handler.ConsumedHistory(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), srv.studentID)
	rows := decodeBody(t, rec)["data"].([]interface{})
	assert.Equal(t, "2024-01-02", rows[0].(map[string]interface{})["date"])

	c, rec = newTestContext(http.MethodGet, "/statistics/consumed-history/x", nil, gin.Param{Key: "student_id", Value: "x"})
	handler.ConsumedHistory(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatisticsHandlerExport(t *testing.T) {
	exporter := &fakeExporter{}
	handler := NewStatisticsHandler(&fakeStatisticsSrv{}, exporter)

	c, rec := newTestContext(http.MethodGet, "/statistics/export?format=pdf", nil)
	handler.Export(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.FormatPDF, exporter.format)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "statistics-20240101.pdf")

	c, rec = newTestContext(http.MethodGet, "/statistics/export?format=xlsx", nil)
	handler.Export(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type fakePinger struct {
	err error
}

func (f fakePinger) PingContext(context.Context) error { return f.err }

func TestMetricsHandlerReady(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/ready", nil)
	NewMetricsHandler(nil, fakePinger{}).Ready(c)
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newTestContext(http.MethodGet, "/ready", nil)
	NewMetricsHandler(nil, fakePinger{err: assert.AnError}).Ready(c)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	c, rec = newTestContext(http.MethodGet, "/metrics", nil)
	NewMetricsHandler(service.NewMetricsService(), nil).Prometheus(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "goroutines_total")
}
