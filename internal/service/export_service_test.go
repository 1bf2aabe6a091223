package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutoring-admin-api/pkg/export"
)

func TestExportServiceStatisticsCSV(t *testing.T) {
	stats := NewStatisticsService(&mockStatisticsRepo{rows: sampleStatistics()}, nil, nil, nil)
	svc := NewExportService(stats, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC) }

	file, err := svc.Statistics(context.Background(), export.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "statistics-20240506.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	lines := bytes.Split(bytes.TrimSpace(file.Body), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "student_id,student_name,total_paid_amount,total_paid_classes,total_payments,total_consumed_classes,balance_classes", string(lines[0]))
	assert.Equal(t, "2,Ana,150.00,5,2,3,2", string(lines[1]))
	assert.Equal(t, "1,Bruno,0.00,0,0,0,0", string(lines[2]))
}

func TestExportServiceStatisticsPDF(t *testing.T) {
	stats := NewStatisticsService(&mockStatisticsRepo{rows: sampleStatistics()}, nil, nil, nil)
	svc := NewExportService(stats, nil)

	file, err := svc.Statistics(context.Background(), export.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Body, []byte("%PDF")))
}
