package service

import (
	"context"
	"time"

	"github.com/sangkips/sales-api/internal/domain/repository"
	"go.uber.org/zap"
)

// DefaultCleanupInterval is used when Run is given a non-positive interval
const DefaultCleanupInterval = time.Hour

// IdempotencyCleaner periodically purges expired idempotency keys
type IdempotencyCleaner struct {
	repo   repository.IdempotencyRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewIdempotencyCleaner creates a new cleaner
func NewIdempotencyCleaner(repo repository.IdempotencyRepository, logger *zap.Logger) *IdempotencyCleaner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdempotencyCleaner{repo: repo, logger: logger, now: time.Now}
}

// PurgeExpired removes every key that expired before now
func (c *IdempotencyCleaner) PurgeExpired(ctx context.Context) (int64, error) {
	removed, err := c.repo.DeleteExpired(ctx, c.now())
	if err != nil {
		c.logger.Error("failed to purge idempotency keys", zap.Error(err))
		return 0, err
	}
	if removed > 0 {
		idempotencyKeysPurged.Add(float64(removed))
		c.logger.Debug("purged idempotency keys", zap.Int64("removed", removed))
	}
	return removed, nil
}

// Run purges expired keys every interval until ctx is cancelled
func (c *IdempotencyCleaner) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		c.logger.Warn("invalid idempotency cleanup interval, using default",
			zap.Duration("interval", interval),
			zap.Duration("default", DefaultCleanupInterval),
		)
		interval = DefaultCleanupInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = c.PurgeExpired(ctx)
		}
	}
}
