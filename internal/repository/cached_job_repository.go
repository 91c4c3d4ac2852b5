package repository

import (
	"context"
	"time"

	"jobboard/internal/domain/job"
	applog "jobboard/internal/pkg/logger"

	"go.uber.org/zap"
)

// JSONCache is the subset of the Redis cache used for read-through lookups.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// CachedJobRepository serves job lookups from the cache first. Postings are
// immutable to this service so entries are only evicted by TTL. Cache errors
// fall back to the wrapped repository.
type CachedJobRepository struct {
	next   JobRepository
	cache  JSONCache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedJobRepository(next JobRepository, cache JSONCache, ttl time.Duration, logger *zap.Logger) *CachedJobRepository {
	return &CachedJobRepository{next: next, cache: cache, ttl: ttl, logger: applog.OrNop(logger)}
}

func jobCacheKey(jobID string) string {
	return "jobs:byid:" + jobID
}

func (r *CachedJobRepository) FindByID(ctx context.Context, jobID string) (job.Job, error) {
	if r.cache == nil {
		return r.next.FindByID(ctx, jobID)
	}

	key := jobCacheKey(jobID)
	var cached job.Job
	hit, err := r.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		r.logger.Debug("job cache read failed", zap.String("job_id", jobID), zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	j, err := r.next.FindByID(ctx, jobID)
	if err != nil {
		return job.Job{}, err
	}

	if err := r.cache.SetJSON(ctx, key, j, r.ttl); err != nil {
		r.logger.Debug("job cache write failed", zap.String("job_id", jobID), zap.Error(err))
	}
	return j, nil
}

var _ JobRepository = (*CachedJobRepository)(nil)
