package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dtroode/portfolio/internal/logger"
	"github.com/dtroode/portfolio/internal/model"
)

const runTimeout = time.Minute

// TokenCleanup periodically purges expired and revoked refresh tokens.
type TokenCleanup struct {
	store  model.RefreshTokenStore
	cron   *cron.Cron
	logger *logger.Logger
	now    func() time.Time
}

// NewTokenCleanup schedules the purge. schedule is a six-field cron spec (with seconds).
func NewTokenCleanup(store model.RefreshTokenStore, schedule string, logger *logger.Logger) (*TokenCleanup, error) {
	j := &TokenCleanup{
		store:  store,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger,
		now:    time.Now,
	}

	_, err := j.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		_, _ = j.RunOnce(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule token cleanup %q: %w", schedule, err)
	}

	return j, nil
}

func (j *TokenCleanup) Start() {
	j.logger.Info("Token cleanup: scheduler started")
	j.cron.Start()
}

// Stop prevents further runs and returns a context done when the running one finishes.
func (j *TokenCleanup) Stop() context.Context {
	return j.cron.Stop()
}

func (j *TokenCleanup) RunOnce(ctx context.Context) (int64, error) {
	removed, err := j.store.DeleteExpired(ctx, j.now())
	if err != nil {
		j.logger.Error("Token cleanup: failed to delete expired tokens",
			"error", err.Error())
		return 0, err
	}

	j.logger.Info("Token cleanup: finished",
		"removed", removed)

	return removed, nil
}
