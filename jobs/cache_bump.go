package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/shopstack-erp/shopstack/internal/reports"
)

// CacheBumpJob invalidates cached reports after a mutation touched a
// tenant's products, transactions, or accounting entries. Invalidation is a
// version bump, never an in-place update, so concurrent readers see either
// the old complete report or a fresh recomputation.
type CacheBumpJob struct {
	Cache  *reports.Cache
	Logger *slog.Logger
}

// NewCacheBumpJob wires the cache invalidation handler.
func NewCacheBumpJob(cache *reports.Cache, logger *slog.Logger) *CacheBumpJob {
	return &CacheBumpJob{Cache: cache, Logger: logger}
}

// Handle processes cache bump tasks.
func (j *CacheBumpJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Cache == nil {
		return errors.New("cache bump: handler not configured")
	}
	var payload CacheBumpPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if err := j.Cache.Bump(ctx); err != nil {
		return err
	}
	logger := j.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("report cache bumped", slog.String("source", payload.Source))
	return nil
}
