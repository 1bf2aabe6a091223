package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutoring-admin-api/internal/models"
)

// Payments and consumed classes are aggregated separately before joining so
// that neither side multiplies the other's rows.
const studentStatisticsQuery = `SELECT
	s.id AS student_id,
	COALESCE(s.name, '') AS student_name,
	COALESCE(p.total_paid_amount, 0) AS total_paid_amount,
	COALESCE(p.total_paid_classes, 0) AS total_paid_classes,
	COALESCE(p.total_payments, 0) AS total_payments,
	COALESCE(c.total_consumed_classes, 0) AS total_consumed_classes,
	COALESCE(p.total_paid_classes, 0) - COALESCE(c.total_consumed_classes, 0) AS balance_classes
FROM students s
LEFT JOIN (
	SELECT student_id, SUM(amount) AS total_paid_amount, SUM(COALESCE(num_classes, 1)) AS total_paid_classes, COUNT(*) AS total_payments
	FROM payments
	GROUP BY student_id
) p ON p.student_id = s.id
LEFT JOIN (
	SELECT student_id, COUNT(*) AS total_consumed_classes
	FROM consumed_classes
	GROUP BY student_id
) c ON c.student_id = s.id
ORDER BY student_name ASC, s.id ASC`

const consumedHistoryQuery = `SELECT cc.id, cc.class_id,
	COALESCE(cc.date, '') AS date, COALESCE(cc.time, '') AS time,
	COALESCE(c.day, '') AS day, COALESCE(c.time, '') AS class_time, COALESCE(c.level, '') AS class_level
FROM consumed_classes cc
JOIN classes c ON c.id = cc.class_id
WHERE cc.student_id = ?
ORDER BY cc.date DESC, cc.time DESC, cc.id DESC`

// StatisticsRepository runs the read-only aggregation queries.
type StatisticsRepository struct {
	db *sqlx.DB
}

// NewStatisticsRepository constructs the repository.
func NewStatisticsRepository(db *sqlx.DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

// StudentSummaries returns one row per student ordered by name.
func (r *StatisticsRepository) StudentSummaries(ctx context.Context) ([]models.StudentStatistics, error) {
	rows := make([]models.StudentStatistics, 0)
	if err := r.db.SelectContext(ctx, &rows, studentStatisticsQuery); err != nil {
		return nil, fmt.Errorf("student statistics: %w", err)
	}
	return rows, nil
}

// ConsumedHistory lists a student's consumed classes, most recent first.
func (r *StatisticsRepository) ConsumedHistory(ctx context.Context, studentID int64) ([]models.ConsumedHistoryEntry, error) {
	rows := make([]models.ConsumedHistoryEntry, 0)
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(consumedHistoryQuery), studentID); err != nil {
		return nil, fmt.Errorf("consumed history: %w", err)
	}
	return rows, nil
}
