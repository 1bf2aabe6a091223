package service

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutoring-admin-api/internal/models"
)

const statisticsCacheKey = "statistics:students"

// StatisticsRepository describes the aggregation queries.
type StatisticsRepository interface {
	StudentSummaries(ctx context.Context) ([]models.StudentStatistics, error)
	ConsumedHistory(ctx context.Context, studentID int64) ([]models.ConsumedHistoryEntry, error)
}

// StatisticsService serves per-student balances with an optional read-through cache.
type StatisticsService struct {
	repo    StatisticsRepository
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger

	// generation advances on every Invalidate so a query that raced with a
	// write does not repopulate the cache with rows from before that write.
	generation atomic.Uint64
}

// NewStatisticsService constructs a statistics service. cache and metrics may be nil.
func NewStatisticsService(repo StatisticsRepository, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *StatisticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatisticsService{repo: repo, cache: cache, metrics: metrics, logger: logger}
}

// Students returns the balance summary for every student ordered by name.
// The boolean reports whether the rows came from cache.
func (s *StatisticsService) Students(ctx context.Context) ([]models.StudentStatistics, bool, error) {
	var cached []models.StudentStatistics
	if hit, err := s.cache.Get(ctx, statisticsCacheKey, &cached); err == nil && hit {
		return cached, true, nil
	}

	generation := s.generation.Load()
	start := time.Now()
	rows, err := s.repo.StudentSummaries(ctx)
	if err != nil {
		return nil, false, readError(err, "failed to compute statistics")
	}
	s.metrics.ObserveDBQuery("statistics_students", time.Since(start))

	if s.cache.Enabled() && s.generation.Load() == generation {
		_ = s.cache.Set(ctx, statisticsCacheKey, rows, 0)
		if s.generation.Load() != generation {
			_ = s.cache.Invalidate(ctx, statisticsCacheKey)
		}
	}
	return rows, false, nil
}

// ConsumedHistory lists a student's consumed classes, most recent first.
func (s *StatisticsService) ConsumedHistory(ctx context.Context, studentID int64) ([]models.ConsumedHistoryEntry, error) {
	start := time.Now()
	rows, err := s.repo.ConsumedHistory(ctx, studentID)
	if err != nil {
		return nil, readError(err, "failed to load consumed history")
	}
	s.metrics.ObserveDBQuery("statistics_consumed_history", time.Since(start))
	return rows, nil
}

// Invalidate drops the cached summary. Failures are logged by the cache layer
// and otherwise ignored; the entry expires with its TTL.
func (s *StatisticsService) Invalidate(ctx context.Context) {
	if s == nil {
		return
	}
	s.generation.Add(1)
	_ = s.cache.Invalidate(ctx, statisticsCacheKey)
}
